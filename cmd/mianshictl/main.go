package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx := context.Background()

	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	var err error
	switch args[0] {
	case "register":
		err = runRegister(ctx, args[1:])
	case "login":
		err = runLogin(ctx, args[1:])
	case "logout":
		err = runLogout(ctx, args[1:])
	case "whoami":
		err = runWhoami(ctx, args[1:])
	case "meeting":
		err = runMeeting(ctx, args[1:])
	case "interview":
		err = runInterview(ctx, args[1:])
	case "transcripts":
		err = runTranscripts(ctx, args[1:])
	case "help", "-h", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("command failed: %v", err)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `mianshictl - terminal client for the mianshi AI interview service

Usage:
  mianshictl register   -email <email> -password <password>
  mianshictl login      -email <email> -password <password>
  mianshictl logout
  mianshictl whoami
  mianshictl meeting    create|list|get|update|delete|remark [flags]
  mianshictl interview  -id <meeting-id> [-resume-file <path>]
  mianshictl transcripts search|list [flags]

Configuration lives in the user config dir (config.json); a .env file in
the working directory is loaded at startup. Set LOG_LEVEL=debug to trace
requests.
`)
}
