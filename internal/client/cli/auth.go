package cli

import (
	"context"
	"fmt"
	"os"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline

// Login prompts for credentials and authenticates. Rejections, whether the
// local email-domain check or the server's, are printed verbatim. On success
// the session store holds the identity the server returned and the prompt
// picks it up.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password: ")
	if err != nil {
		return err
	}

	sess, err := a.auth.Login(ctx, email, password)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	a.refreshSession(ctx)
	printlnFn(fmt.Sprintf("Welcome, %s!", sess.Name))
	return nil
}

// Signup prompts for the account fields and creates a new account. A
// successful signup flows straight into the verification screen, mirroring
// the signup -> OTP -> login sequence of the web client.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password: ")
	if err != nil {
		return err
	}

	confirm, err := getPassword(os.Stdout, "Confirm password: ")
	if err != nil {
		return err
	}

	if _, err := a.auth.Signup(ctx, name, email, password, confirm); err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("Signup successful!")
	return a.Verify(ctx)
}

// Logout clears the stored session and the cached listing collection.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		printlnFn(err.Error())
		return err
	}
	a.refreshSession(ctx)
	a.items = nil
	printlnFn("Logged out.")
	return nil
}
