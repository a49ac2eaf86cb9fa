package api

// Application status codes used by the backend envelope. Only the codes the
// client branches on are mirrored here; everything else is surfaced through
// the server-provided message.
const (
	CodeSuccess int64 = 1000

	CodeInvalidParams   int64 = 2001
	CodeUserExist       int64 = 2002
	CodeUserNotExist    int64 = 2003
	CodeInvalidPassword int64 = 2004
	CodeNotLogin        int64 = 2005
	CodeInvalidToken    int64 = 2011
	CodeTokenExpired    int64 = 2017

	CodeMeetingNotExist     int64 = 2503
	CodeResumeNotExist      int64 = 2504
	CodeInterviewEnded      int64 = 2505
	CodeInterviewRoundLimit int64 = 2506

	CodeServerBusy int64 = 4001
)

// IsAuthCode reports whether an application code means the stored token is
// no longer usable and the user has to log in again.
func IsAuthCode(code int64) bool {
	switch code {
	case CodeNotLogin, CodeInvalidToken, CodeTokenExpired:
		return true
	}
	return false
}
