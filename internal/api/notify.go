package api

// Notifier receives user-facing notices from the request layer. The terminal
// frontend prints them; tests record them.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Navigator is told when the user has to be sent back to the login flow,
// e.g. a protected call without a stored token.
type Navigator interface {
	ToLogin()
}

// LoadingSink observes the process-wide loading flag. It is set to true for
// the duration of every request and released on every exit path.
type LoadingSink interface {
	SetLoading(active bool)
}

type noopNotifier struct{}

func (noopNotifier) Success(string) {}
func (noopNotifier) Error(string)   {}

type noopNavigator struct{}

func (noopNavigator) ToLogin() {}

type noopLoading struct{}

func (noopLoading) SetLoading(bool) {}
