// Package interview tracks the state of one AI-driven interview
// conversation: resume gating, the transcript, and turn-taking.
package interview

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"mianshictl/internal/api"
)

// Speaker identifies who produced a transcript message.
type Speaker string

const (
	SpeakerUser Speaker = "user"
	SpeakerAI   Speaker = "ai"
)

// Message is one entry of the interview transcript.
type Message struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// State of the controller. A closed or ended interview returns to Idle.
type State string

const (
	StateIdle           State = "idle"
	StateAwaitingResume State = "awaiting_resume"
	StateActive         State = "active"
)

// Greeting is the opening line the interviewer posts once a resume is on
// file and the conversation becomes active.
const Greeting = "Hello, I am your AI interviewer. Please begin when you are ready."

// InvalidStateError is returned when an operation is invoked outside its
// legal controller state.
type InvalidStateError struct {
	Op    string
	State State
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s in state %q", e.Op, e.State)
}

// MeetingAPI is the slice of the request layer the controller needs.
type MeetingAPI interface {
	GetMeeting(ctx context.Context, id uint) (*api.Meeting, error)
	UploadResume(ctx context.Context, meetingID uint, resume string) error
	SubmitAnswer(ctx context.Context, meetingID uint, answer string) (string, error)
}

// Controller manages a single active interview conversation on top of the
// request layer. At most one meeting is active per controller instance, and
// the transcript is append-only for the lifetime of a session.
//
// Controller is not safe for concurrent use: callers submit one operation at
// a time and wait for it to settle, mirroring a single user at a terminal.
type Controller struct {
	api MeetingAPI

	state     State
	meetingID uint
	sessionID string
	meeting   *api.Meeting
	messages  []Message
}

// NewController creates a controller in the Idle state.
func NewController(meetingAPI MeetingAPI) *Controller {
	return &Controller{
		api:   meetingAPI,
		state: StateIdle,
	}
}

// State returns the current controller state.
func (c *Controller) State() State {
	return c.state
}

// MeetingID returns the active meeting id; ok is false when Idle.
func (c *Controller) MeetingID() (uint, bool) {
	if c.state == StateIdle {
		return 0, false
	}
	return c.meetingID, true
}

// SessionID returns the id assigned when the interview was opened. Empty
// when Idle.
func (c *Controller) SessionID() string {
	return c.sessionID
}

// Meeting returns the meeting record fetched when the interview was opened.
func (c *Controller) Meeting() *api.Meeting {
	return c.meeting
}

// Messages returns a copy of the transcript so far.
func (c *Controller) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Controller) append(speaker Speaker, text string) {
	c.messages = append(c.messages, Message{Speaker: speaker, Text: text})
}

// OpenInterview fetches the meeting and starts a session for it. A meeting
// without a resume lands in AwaitingResume; otherwise the conversation
// becomes active immediately and the greeting is posted. On fetch failure
// the controller stays Idle and the error is returned as-is; no retry.
func (c *Controller) OpenInterview(ctx context.Context, meetingID uint) error {
	if c.state != StateIdle {
		return &InvalidStateError{Op: "open an interview", State: c.state}
	}

	meeting, err := c.api.GetMeeting(ctx, meetingID)
	if err != nil {
		return err
	}

	c.meetingID = meetingID
	c.meeting = meeting
	c.sessionID = uuid.NewString()

	if !meeting.HasResume() {
		c.state = StateAwaitingResume
		return nil
	}

	c.state = StateActive
	c.append(SpeakerAI, Greeting)
	return nil
}

// SubmitResume uploads resume text for the active meeting and, on success,
// activates the conversation. Empty or whitespace-only text is rejected
// locally without a network call.
func (c *Controller) SubmitResume(ctx context.Context, text string) error {
	if c.state != StateAwaitingResume {
		return &InvalidStateError{Op: "submit a resume", State: c.state}
	}
	if strings.TrimSpace(text) == "" {
		return &api.ValidationError{Msg: "resume text is empty"}
	}

	if err := c.api.UploadResume(ctx, c.meetingID, text); err != nil {
		return err
	}

	c.state = StateActive
	c.append(SpeakerAI, Greeting)
	return nil
}

// SubmitAnswer sends one answer to the interviewer and returns its reply.
// The user message is appended before the call completes; it stays in the
// transcript even when the call fails.
func (c *Controller) SubmitAnswer(ctx context.Context, text string) (string, error) {
	if c.state != StateActive {
		return "", &InvalidStateError{Op: "submit an answer", State: c.state}
	}
	if strings.TrimSpace(text) == "" {
		return "", &api.ValidationError{Msg: "answer is empty"}
	}

	c.append(SpeakerUser, text)

	reply, err := c.api.SubmitAnswer(ctx, c.meetingID, text)
	if err != nil {
		return "", err
	}

	c.append(SpeakerAI, reply)
	return reply, nil
}

// CloseInterview clears the transcript and returns to Idle. Valid from any
// state and idempotent. In-flight requests are not cancelled.
func (c *Controller) CloseInterview() {
	c.state = StateIdle
	c.meetingID = 0
	c.sessionID = ""
	c.meeting = nil
	c.messages = nil
}
