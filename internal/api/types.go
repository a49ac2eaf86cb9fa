package api

import "encoding/json"

// Response is the uniform envelope every backend endpoint answers with.
// Code == CodeSuccess signals success regardless of HTTP status.
type Response struct {
	Code int64           `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Meeting is one interview engagement between a candidate and the user.
// The backend owns the record; the client only holds transient copies.
type Meeting struct {
	ID               uint   `json:"id"`
	UserID           uint   `json:"user_id"`
	Candidate        string `json:"candidate"`
	Position         string `json:"position"`
	JobDescription   string `json:"job_description"`
	Time             int64  `json:"time"` // interview time, unix millis
	Status           string `json:"status"`
	Remark           string `json:"remark"`
	Resume           string `json:"resume"`
	InterviewRecord  string `json:"interview_record"`
	InterviewSummary string `json:"interview_summary"`
}

// HasResume reports whether a resume is on file for this meeting.
func (m *Meeting) HasResume() bool {
	return m != nil && m.Resume != ""
}

// LoginData is the payload of a successful login.
type LoginData struct {
	Token  string `json:"token"`
	UserID int64  `json:"user_id"`
}

// CreateMeetingRequest is the body of POST /meeting.
type CreateMeetingRequest struct {
	Candidate      string `json:"candidate"`
	Position       string `json:"position"`
	JobDescription string `json:"job_description"`
	Time           int64  `json:"time"`
	Status         string `json:"status"`
	Remark         string `json:"remark"`
}

// UpdateMeetingRequest is the body of PUT /meeting.
type UpdateMeetingRequest struct {
	ID             uint   `json:"id"`
	Candidate      string `json:"candidate"`
	Position       string `json:"position"`
	JobDescription string `json:"job_description"`
	Status         string `json:"status"`
	Remark         string `json:"remark"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type uploadResumeRequest struct {
	MeetingID uint   `json:"meeting_id"`
	Resume    string `json:"resume"`
}

type aiInterviewRequest struct {
	MeetingID uint   `json:"meeting_id"`
	Answer    string `json:"answer"`
}

type aiInterviewReply struct {
	Reply string `json:"reply"`
}
