package cli

import (
	"context"
	"testing"
	"time"

	"github.com/ufmarketplace/ufmarket/internal/client/models"
	"github.com/ufmarketplace/ufmarket/internal/client/services"
)

// stubClock makes nowFn return the given instants in order, repeating the
// last one once the script runs out.
func stubClock(t *testing.T, times ...time.Time) {
	t.Helper()
	orig := nowFn
	t.Cleanup(func() { nowFn = orig })

	i := 0
	nowFn = func() time.Time {
		if i < len(times)-1 {
			v := times[i]
			i++
			return v
		}
		return times[len(times)-1]
	}
}

func stubSleep(t *testing.T) *[]time.Duration {
	t.Helper()
	orig := sleepFn
	t.Cleanup(func() { sleepFn = orig })

	var slept []time.Duration
	sleepFn = func(d time.Duration) { slept = append(slept, d) }
	return &slept
}

func verifyApp(store *fakeSessionStore, f *fakeAuthSvc) *App {
	return &App{auth: f, store: store}
}

func pendingStore(email string) *fakeSessionStore {
	return &fakeSessionStore{sess: models.Session{Token: "tok", Email: email, UserID: "1"}, ok: true}
}

func TestVerify_NoEmail(t *testing.T) {
	out := captureOutput(t)

	st := &fakeSessionStore{}
	f := &fakeAuthSvc{store: st}

	if err := verifyApp(st, f).Verify(context.Background()); err != nil {
		t.Fatalf("Verify err: %v", err)
	}
	if f.sendCalls != 0 {
		t.Fatalf("code sent with no email")
	}
	if !printed(out, "Sign up first") {
		t.Fatalf("no hint printed: %v", *out)
	}
}

func TestVerify_SuccessfulSubmitLogsOutAfterRedirectDelay(t *testing.T) {
	out := captureOutput(t)
	scriptInputs(t, "123456", "submit")
	slept := stubSleep(t)

	st := pendingStore("bob@ufl.edu")
	f := &fakeAuthSvc{store: st}

	if err := verifyApp(st, f).Verify(context.Background()); err != nil {
		t.Fatalf("Verify err: %v", err)
	}
	if f.sendCalls != 1 {
		t.Fatalf("initial send calls: %d", f.sendCalls)
	}
	if f.verifyCode != "123456" {
		t.Fatalf("submitted code: %q", f.verifyCode)
	}
	if len(*slept) != 1 || (*slept)[0] != 2*time.Second {
		t.Fatalf("redirect delay not honored: %v", *slept)
	}
	if f.logoutCalls != 1 {
		t.Fatalf("session kept after redirect: %d", f.logoutCalls)
	}
	if !printed(out, "Verification successful! Redirecting to login page...") {
		t.Fatalf("no success notice: %v", *out)
	}
}

func TestVerify_IncompleteCodeRejectedLocally(t *testing.T) {
	out := captureOutput(t)
	scriptInputs(t, "123", "submit", "back")

	st := pendingStore("bob@ufl.edu")
	f := &fakeAuthSvc{store: st}

	if err := verifyApp(st, f).Verify(context.Background()); err != nil {
		t.Fatalf("Verify err: %v", err)
	}
	if f.verifyCode != "" {
		t.Fatalf("network call with incomplete code: %q", f.verifyCode)
	}
	if !printed(out, "Please enter a 6-digit code") {
		t.Fatalf("no local rejection: %v", *out)
	}
}

func TestVerify_RejectedCodeKeptForCorrection(t *testing.T) {
	out := captureOutput(t)
	// A wrong code, then only the last slot corrected before resubmitting.
	scriptInputs(t, "111111", "submit", "2", "submit")
	stubSleep(t)

	st := pendingStore("bob@ufl.edu")
	f := &fakeAuthSvc{store: st, verifyErrs: []error{services.ValidationError("Invalid verification code")}}

	if err := verifyApp(st, f).Verify(context.Background()); err != nil {
		t.Fatalf("Verify err: %v", err)
	}
	if f.verifyCode != "111112" {
		t.Fatalf("corrected code: %q", f.verifyCode)
	}
	if !printed(out, "Invalid verification code") {
		t.Fatalf("no rejection printed: %v", *out)
	}
	if f.logoutCalls != 1 {
		t.Fatalf("second submit did not complete: %d", f.logoutCalls)
	}
}

func TestVerify_ResendBlockedDuringCooldown(t *testing.T) {
	out := captureOutput(t)
	scriptInputs(t, "resend", "back")
	start := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	stubClock(t, start, start)

	st := pendingStore("bob@ufl.edu")
	f := &fakeAuthSvc{store: st}

	if err := verifyApp(st, f).Verify(context.Background()); err != nil {
		t.Fatalf("Verify err: %v", err)
	}
	if f.sendCalls != 1 {
		t.Fatalf("resend went through during cooldown: %d", f.sendCalls)
	}
	if !printed(out, "Resend available in 60s") {
		t.Fatalf("no cooldown hint: %v", *out)
	}
}

func TestVerify_ResendAfterCooldownExpires(t *testing.T) {
	out := captureOutput(t)
	scriptInputs(t, "resend", "back")
	start := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	// The cooldown has fully elapsed by the time the user types "resend".
	stubClock(t, start, start.Add(61*time.Second))

	st := pendingStore("bob@ufl.edu")
	f := &fakeAuthSvc{store: st}

	if err := verifyApp(st, f).Verify(context.Background()); err != nil {
		t.Fatalf("Verify err: %v", err)
	}
	if f.sendCalls != 2 {
		t.Fatalf("resend calls: %d", f.sendCalls)
	}
	if !printed(out, "New OTP sent to your email!") {
		t.Fatalf("no resend notice: %v", *out)
	}
}
