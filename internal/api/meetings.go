package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	endpointMeeting       = "/meeting"
	endpointMeetingList   = "/meeting/list"
	endpointUploadResume  = "/meeting/upload_resume"
	endpointAIInterview   = "/meeting/ai_interview"
	endpointMeetingRemark = "/meeting/remark"
)

// CreateMeeting creates a meeting record. The backend answers with an empty
// envelope, so no record is returned; list or get it afterwards.
func (c *Client) CreateMeeting(ctx context.Context, req CreateMeetingRequest) error {
	_, err := c.Request(ctx, http.MethodPost, endpointMeeting, req)
	if err != nil {
		return err
	}
	c.notifier.Success("meeting created")
	return nil
}

// UpdateMeeting updates an existing meeting record.
func (c *Client) UpdateMeeting(ctx context.Context, req UpdateMeetingRequest) error {
	_, err := c.Request(ctx, http.MethodPut, endpointMeeting, req)
	if err != nil {
		return err
	}
	c.notifier.Success("meeting updated")
	return nil
}

// GetMeeting fetches one meeting by id, including the resume when one is on
// file.
func (c *Client) GetMeeting(ctx context.Context, id uint) (*Meeting, error) {
	data, err := c.Request(ctx, http.MethodGet, fmt.Sprintf("%s?id=%d", endpointMeeting, id), nil)
	if err != nil {
		return nil, err
	}
	var meeting Meeting
	if err := json.Unmarshal(data, &meeting); err != nil {
		return nil, fmt.Errorf("decode meeting: %w", err)
	}
	return &meeting, nil
}

// DeleteMeeting removes a meeting record.
func (c *Client) DeleteMeeting(ctx context.Context, id uint) error {
	_, err := c.Request(ctx, http.MethodDelete, fmt.Sprintf("%s?id=%d", endpointMeeting, id), nil)
	if err != nil {
		return err
	}
	c.notifier.Success("meeting deleted")
	return nil
}

// ListMeetings fetches all meetings for the logged-in user, newest first as
// ordered by the backend.
func (c *Client) ListMeetings(ctx context.Context) ([]Meeting, error) {
	data, err := c.Request(ctx, http.MethodGet, endpointMeetingList, nil)
	if err != nil {
		return nil, err
	}
	var meetings []Meeting
	if err := json.Unmarshal(data, &meetings); err != nil {
		return nil, fmt.Errorf("decode meeting list: %w", err)
	}
	return meetings, nil
}

// UploadResume attaches resume text to a meeting, unblocking the interview.
func (c *Client) UploadResume(ctx context.Context, meetingID uint, resume string) error {
	_, err := c.Request(ctx, http.MethodPost, endpointUploadResume, uploadResumeRequest{
		MeetingID: meetingID,
		Resume:    resume,
	})
	if err != nil {
		return err
	}
	c.notifier.Success("resume uploaded")
	return nil
}

// SubmitAnswer sends one candidate answer to the AI interviewer and returns
// its reply.
func (c *Client) SubmitAnswer(ctx context.Context, meetingID uint, answer string) (string, error) {
	data, err := c.Request(ctx, http.MethodPost, endpointAIInterview, aiInterviewRequest{
		MeetingID: meetingID,
		Answer:    answer,
	})
	if err != nil {
		return "", err
	}
	var parsed aiInterviewReply
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("decode interview reply: %w", err)
	}
	return parsed.Reply, nil
}

// GetRemark fetches the AI evaluation for a completed meeting. The backend
// returns the remark either as a bare string or wrapped in an object,
// depending on version; both are accepted.
func (c *Client) GetRemark(ctx context.Context, meetingID uint) (string, error) {
	data, err := c.Request(ctx, http.MethodGet, fmt.Sprintf("%s?meeting_id=%d", endpointMeetingRemark, meetingID), nil)
	if err != nil {
		return "", err
	}
	var remark string
	if err := json.Unmarshal(data, &remark); err == nil {
		return remark, nil
	}
	var wrapped struct {
		Remark string `json:"remark"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return "", fmt.Errorf("decode remark: %w", err)
	}
	return wrapped.Remark, nil
}
