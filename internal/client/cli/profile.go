package cli

import (
	"context"
	"os"
)

// ChangePassword prompts for a new password twice and submits the change for
// the logged-in account. A mismatch is rejected locally; server rejections
// are printed verbatim.
func (a *App) ChangePassword(ctx context.Context) error {
	password, err := getPassword(os.Stdout, "New password: ")
	if err != nil {
		return err
	}

	confirm, err := getPassword(os.Stdout, "Confirm password: ")
	if err != nil {
		return err
	}

	if err := a.auth.ChangePassword(ctx, password, confirm); err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("Password changed successfully!")
	return nil
}
