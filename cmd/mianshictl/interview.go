package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"mianshictl/internal/api"
	"mianshictl/internal/config"
	"mianshictl/internal/interview"
	"mianshictl/internal/transcript"
)

func runInterview(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("interview", flag.ExitOnError)
	id := fs.Uint("id", 0, "Meeting id to interview for")
	resumeFile := fs.String("resume-file", "", "Path to resume text, used when the meeting has none on file")
	noArchive := fs.Bool("no-archive", false, "Skip archiving the transcript on exit")
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

	// Pick up log-level edits while the session is open.
	watcher, err := env.Manager.Watch(func(cfg *config.Config) {
		if cfg.LogLevel == "" {
			return
		}
		if lvl, parseErr := logrus.ParseLevel(cfg.LogLevel); parseErr == nil {
			env.Logger.SetLevel(lvl)
		}
	})
	if err != nil {
		env.Logger.WithError(err).Debug("config watcher unavailable")
	} else {
		defer watcher.Stop()
	}

	ctrl := interview.NewController(env.Client)
	if err := ctrl.OpenInterview(ctx, *id); err != nil {
		return fmt.Errorf("open interview: %w", err)
	}

	if ctrl.State() == interview.StateAwaitingResume {
		if err := collectResume(ctx, ctrl, *resumeFile); err != nil {
			return err
		}
	}

	meeting := ctrl.Meeting()
	log.Printf("interview started: %s — %s (meeting #%d)", meeting.Candidate, meeting.Position, meeting.ID)
	fmt.Println("type your answers; :quit ends the interview")
	for _, msg := range ctrl.Messages() {
		printMessage(msg)
	}

	runInterviewLoop(ctx, env, ctrl)

	if !*noArchive {
		archiveTranscript(ctx, env, ctrl)
	}
	ctrl.CloseInterview()
	return nil
}

func runInterviewLoop(ctx context.Context, env *runtimeEnv, ctrl *interview.Controller) {
	s := bufio.NewScanner(os.Stdin)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("you> ")
		if !s.Scan() {
			break
		}
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		if line == ":quit" || line == ":q" {
			break
		}

		reply, err := ctrl.SubmitAnswer(ctx, line)
		if err != nil {
			if api.IsCode(err, api.CodeInterviewRoundLimit) || api.IsCode(err, api.CodeInterviewEnded) {
				fmt.Println("the interview has ended")
				break
			}
			if errors.Is(err, api.ErrUnauthenticated) {
				break
			}
			var apiErr *api.APIError
			if errors.As(err, &apiErr) && api.IsAuthCode(apiErr.Code) {
				fmt.Println("session expired, run 'mianshictl login' and reopen the interview")
				break
			}
			log.Printf("error: %v", err)
			continue
		}

		printMessage(interview.Message{Speaker: interview.SpeakerAI, Text: reply})
	}
}

// collectResume gathers resume text from a file or from stdin (terminated by
// a single "." line) and uploads it.
func collectResume(ctx context.Context, ctrl *interview.Controller, resumeFile string) error {
	var text string
	if resumeFile != "" {
		data, err := os.ReadFile(resumeFile)
		if err != nil {
			return fmt.Errorf("read resume file: %w", err)
		}
		text = string(data)
	} else {
		fmt.Println("no resume on file for this meeting")
		fmt.Println("paste the resume text, then a single '.' line to finish:")
		var lines []string
		s := bufio.NewScanner(os.Stdin)
		s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for s.Scan() {
			line := s.Text()
			if line == "." {
				break
			}
			lines = append(lines, line)
		}
		text = strings.Join(lines, "\n")
	}

	if err := ctrl.SubmitResume(ctx, text); err != nil {
		return fmt.Errorf("submit resume: %w", err)
	}
	return nil
}

func archiveTranscript(ctx context.Context, env *runtimeEnv, ctrl *interview.Controller) {
	messages := ctrl.Messages()
	if len(messages) == 0 {
		return
	}

	store, err := env.Transcripts(ctx)
	if err != nil {
		env.Logger.WithError(err).Warn("transcript archive unavailable, skipping")
		return
	}

	t := transcript.FromMessages(ctrl.SessionID(), ctrl.Meeting(), messages)
	if err := store.Archive(ctx, t); err != nil {
		env.Logger.WithError(err).Warn("failed to archive transcript")
		return
	}
	log.Printf("transcript archived (%s, %d turns)", t.ID, t.Turns)
}

func printMessage(msg interview.Message) {
	if msg.Speaker == interview.SpeakerAI {
		fmt.Printf("interviewer> %s\n", msg.Text)
	} else {
		fmt.Printf("you> %s\n", msg.Text)
	}
}
