package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/ufmarketplace/ufmarket/internal/client/models"
)

// scriptInputs replaces the interactive input seams with a single scripted
// queue. Prompts are answered in order regardless of which helper asks.
func scriptInputs(t *testing.T, lines ...string) {
	t.Helper()

	origST, origML, origPW := getSimpleText, getMultiline, getPassword
	t.Cleanup(func() {
		getSimpleText = origST
		getMultiline = origML
		getPassword = origPW
	})

	i := 0
	next := func() string {
		if i >= len(lines) {
			t.Fatalf("input script exhausted after %d lines", len(lines))
		}
		v := lines[i]
		i++
		return v
	}

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getPassword = func(_ io.Writer, _ string) (string, error) { return next(), nil }
}

// captureOutput collects everything the handlers print.
func captureOutput(t *testing.T) *[]string {
	t.Helper()

	orig := printlnFn
	t.Cleanup(func() { printlnFn = orig })

	var out []string
	printlnFn = func(args ...any) (int, error) {
		out = append(out, strings.TrimRight(fmt.Sprintln(args...), "\n"))
		return 0, nil
	}
	return &out
}

func printed(out *[]string, substr string) bool {
	for _, line := range *out {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

type fakeSessionStore struct {
	sess models.Session
	ok   bool

	clears int
}

func (f *fakeSessionStore) Current(context.Context) (models.Session, bool, error) {
	return f.sess, f.ok, nil
}

func (f *fakeSessionStore) Save(_ context.Context, s models.Session) error {
	f.sess, f.ok = s, true
	return nil
}

func (f *fakeSessionStore) Clear(context.Context) error {
	f.sess, f.ok = models.Session{}, false
	f.clears++
	return nil
}

func (f *fakeSessionStore) Credentials(context.Context) (string, string, error) {
	return f.sess.Token, f.sess.UserID, nil
}

type fakeAuthSvc struct {
	store *fakeSessionStore

	loginEmail, loginPass string
	loginSess             models.Session
	loginErr              error

	signupName, signupEmail string
	signupErr               error

	changeNew, changeConfirm string
	changeErr                error

	sendCalls int
	sendErr   error

	verifyCode string
	verifyErrs []error

	logoutCalls int
}

func (f *fakeAuthSvc) Login(_ context.Context, email, password string) (models.Session, error) {
	f.loginEmail, f.loginPass = email, password
	if f.loginErr != nil {
		return models.Session{}, f.loginErr
	}
	if f.store != nil {
		_ = f.store.Save(context.Background(), f.loginSess)
	}
	return f.loginSess, nil
}

func (f *fakeAuthSvc) Signup(_ context.Context, name, email, _, _ string) (models.Session, error) {
	f.signupName, f.signupEmail = name, email
	if f.signupErr != nil {
		return models.Session{}, f.signupErr
	}
	sess := models.Session{Token: "tok", Email: email, Name: name, UserID: "1"}
	if f.store != nil {
		_ = f.store.Save(context.Background(), sess)
	}
	return sess, nil
}

func (f *fakeAuthSvc) ChangePassword(_ context.Context, newPassword, confirmPassword string) error {
	f.changeNew, f.changeConfirm = newPassword, confirmPassword
	return f.changeErr
}

func (f *fakeAuthSvc) SendVerificationCode(context.Context) error {
	f.sendCalls++
	return f.sendErr
}

func (f *fakeAuthSvc) VerifyVerificationCode(_ context.Context, code string) error {
	f.verifyCode = code
	if len(f.verifyErrs) > 0 {
		err := f.verifyErrs[0]
		f.verifyErrs = f.verifyErrs[1:]
		return err
	}
	return nil
}

func (f *fakeAuthSvc) Logout(context.Context) error {
	f.logoutCalls++
	if f.store != nil {
		_ = f.store.Clear(context.Background())
	}
	return nil
}

type fakeListingSvc struct {
	mine   []models.DisplayListing
	browse []models.DisplayListing

	saved    []models.ListingDraft
	saveOut  []models.DisplayListing
	saveErrs []error

	deletedID string
	deleteOut []models.DisplayListing
	deleteErr error
}

func (f *fakeListingSvc) Mine(context.Context) ([]models.DisplayListing, error) {
	return f.mine, nil
}

func (f *fakeListingSvc) Browse(context.Context) ([]models.DisplayListing, error) {
	return f.browse, nil
}

func (f *fakeListingSvc) Save(_ context.Context, draft models.ListingDraft) ([]models.DisplayListing, error) {
	f.saved = append(f.saved, draft)
	if len(f.saveErrs) > 0 {
		err := f.saveErrs[0]
		f.saveErrs = f.saveErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return f.saveOut, nil
}

func (f *fakeListingSvc) Delete(_ context.Context, listingID string) ([]models.DisplayListing, error) {
	f.deletedID = listingID
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return f.deleteOut, nil
}
