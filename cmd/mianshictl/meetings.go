package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"mianshictl/internal/api"
)

func runMeeting(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: mianshictl meeting create|list|get|update|delete [flags]")
	}

	switch args[0] {
	case "create":
		return runMeetingCreate(ctx, args[1:])
	case "list":
		return runMeetingList(ctx, args[1:])
	case "get":
		return runMeetingGet(ctx, args[1:])
	case "update":
		return runMeetingUpdate(ctx, args[1:])
	case "delete":
		return runMeetingDelete(ctx, args[1:])
	case "remark":
		return runMeetingRemark(ctx, args[1:])
	default:
		return fmt.Errorf("unknown meeting subcommand %q", args[0])
	}
}

func runMeetingCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("meeting create", flag.ExitOnError)
	candidate := fs.String("candidate", "", "Candidate name")
	position := fs.String("position", "", "Position title")
	jobDescription := fs.String("jd", "", "Job description")
	file := fs.String("f", "", "Read the meeting from a JSON file instead of flags")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var req api.CreateMeetingRequest
	if *file != "" {
		doc, err := os.ReadFile(*file)
		if err != nil {
			return fmt.Errorf("read meeting file: %w", err)
		}
		// Reject malformed documents before anything touches the network.
		if err := api.ValidateMeetingDocument(doc); err != nil {
			return err
		}
		if err := json.Unmarshal(doc, &req); err != nil {
			return fmt.Errorf("parse meeting file: %w", err)
		}
	} else {
		if *candidate == "" || *position == "" {
			return fmt.Errorf("-candidate and -position are required (or use -f)")
		}
		req = api.CreateMeetingRequest{
			Candidate:      *candidate,
			Position:       *position,
			JobDescription: *jobDescription,
		}
	}

	if req.Time == 0 {
		req.Time = time.Now().UnixMilli()
	}
	if req.Status == "" {
		req.Status = "in_progress"
	}

	env, err := prepareRuntimeEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	return env.Client.CreateMeeting(ctx, req)
}

func runMeetingList(ctx context.Context, args []string) error {
	env, err := prepareRuntimeEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	meetings, err := env.Client.ListMeetings(ctx)
	if err != nil {
		return err
	}
	if len(meetings) == 0 {
		fmt.Println("no meetings")
		return nil
	}
	for _, m := range meetings {
		printMeetingLine(&m)
	}
	return nil
}

func runMeetingGet(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("meeting get", flag.ExitOnError)
	id := fs.Uint("id", 0, "Meeting id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return fmt.Errorf("-id is required")
	}

	env, err := prepareRuntimeEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	meeting, err := env.Client.GetMeeting(ctx, *id)
	if err != nil {
		return err
	}

	printMeetingLine(meeting)
	if meeting.JobDescription != "" {
		fmt.Printf("  job description: %s\n", meeting.JobDescription)
	}
	if meeting.Remark != "" {
		fmt.Printf("  remark: %s\n", meeting.Remark)
	}
	if meeting.HasResume() {
		fmt.Println("  resume: on file")
	} else {
		fmt.Println("  resume: missing")
	}
	return nil
}

func runMeetingUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("meeting update", flag.ExitOnError)
	id := fs.Uint("id", 0, "Meeting id")
	candidate := fs.String("candidate", "", "Candidate name")
	position := fs.String("position", "", "Position title")
	jobDescription := fs.String("jd", "", "Job description")
	status := fs.String("status", "", "Meeting status")
	remark := fs.String("remark", "", "Remark")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return fmt.Errorf("-id is required")
	}

	env, err := prepareRuntimeEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	return env.Client.UpdateMeeting(ctx, api.UpdateMeetingRequest{
		ID:             *id,
		Candidate:      *candidate,
		Position:       *position,
		JobDescription: *jobDescription,
		Status:         *status,
		Remark:         *remark,
	})
}

func runMeetingDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("meeting delete", flag.ExitOnError)
	id := fs.Uint("id", 0, "Meeting id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return fmt.Errorf("-id is required")
	}

	env, err := prepareRuntimeEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	return env.Client.DeleteMeeting(ctx, *id)
}

func runMeetingRemark(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("meeting remark", flag.ExitOnError)
	id := fs.Uint("id", 0, "Meeting id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return fmt.Errorf("-id is required")
	}

	env, err := prepareRuntimeEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	remark, err := env.Client.GetRemark(ctx, *id)
	if err != nil {
		return err
	}
	if remark == "" {
		fmt.Println("no remark yet")
		return nil
	}
	fmt.Println(remark)
	return nil
}

func printMeetingLine(m *api.Meeting) {
	when := time.UnixMilli(m.Time).Format("2006-01-02 15:04")
	fmt.Printf("#%d  %s — %s  [%s]  %s\n", m.ID, m.Candidate, m.Position, m.Status, when)
}
