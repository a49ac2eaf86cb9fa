package main

import (
	"context"
	"flag"
	"fmt"
)

func runRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "Account email")
	password := fs.String("password", "", "Account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("both -email and -password are required")
	}

	env, err := prepareRuntimeEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	return env.Client.Register(ctx, *email, *password)
}

func runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "Account email")
	password := fs.String("password", "", "Account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("both -email and -password are required")
	}

	env, err := prepareRuntimeEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	sess, err := env.Client.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (user %s)\n", sess.UserEmail, sess.UserID)
	return nil
}

func runLogout(ctx context.Context, args []string) error {
	env, err := prepareRuntimeEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.Client.Logout(); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func runWhoami(ctx context.Context, args []string) error {
	env, err := prepareRuntimeEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	sess := env.Sessions.Current()
	if !sess.LoggedIn() {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("%s (user %s)\n", sess.UserEmail, sess.UserID)
	return nil
}
