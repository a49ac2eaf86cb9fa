package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"
)

func runTranscripts(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: mianshictl transcripts search|list [flags]")
	}

	switch args[0] {
	case "search":
		return runTranscriptsSearch(ctx, args[1:])
	case "list":
		return runTranscriptsList(ctx, args[1:])
	default:
		return fmt.Errorf("unknown transcripts subcommand %q", args[0])
	}
}

func runTranscriptsSearch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("transcripts search", flag.ExitOnError)
	limit := fs.Int("n", 10, "Maximum number of results")
	if err := fs.Parse(args); err != nil {
		return err
	}
	query := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("usage: mianshictl transcripts search <query>")
	}

	env, err := prepareRuntimeEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	store, err := env.Transcripts(ctx)
	if err != nil {
		return err
	}

	results, err := store.Search(ctx, query, *limit)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("no matching transcripts")
		return nil
	}

	for _, r := range results {
		t := r.Transcript
		when := time.Unix(t.StartedAt, 0).Format("2006-01-02 15:04")
		fmt.Printf("%.2f  %s  %s — %s  (meeting #%d, %d turns, %s)\n",
			r.Score, t.ID, t.Candidate, t.Position, t.MeetingID, t.Turns, when)
	}
	return nil
}

func runTranscriptsList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("transcripts list", flag.ExitOnError)
	limit := fs.Int("n", 20, "Maximum number of transcripts")
	if err := fs.Parse(args); err != nil {
		return err
	}

	env, err := prepareRuntimeEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	store, err := env.Transcripts(ctx)
	if err != nil {
		return err
	}

	transcripts, err := store.List(ctx, *limit)
	if err != nil {
		return err
	}
	if len(transcripts) == 0 {
		fmt.Println("no archived transcripts")
		return nil
	}

	for _, t := range transcripts {
		when := time.Unix(t.StartedAt, 0).Format("2006-01-02 15:04")
		fmt.Printf("%s  %s — %s  (meeting #%d, %d turns, %s)\n",
			t.ID, t.Candidate, t.Position, t.MeetingID, t.Turns, when)
	}
	return nil
}
