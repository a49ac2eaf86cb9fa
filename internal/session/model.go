package session

// Session is the client-held authentication state for the current user.
// Absent fields are empty strings. The JSON keys are fixed; they are the
// storage contract shared with earlier client versions.
type Session struct {
	Token     string `json:"token"`
	UserID    string `json:"userId"`
	UserEmail string `json:"userEmail"`
}

// LoggedIn reports whether a token is held. Without one, no authenticated
// request may be attempted.
func (s Session) LoggedIn() bool {
	return s.Token != ""
}
