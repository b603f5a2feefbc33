package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ufmarketplace/ufmarket/internal/client/otp"
)

// nowFn and sleepFn are test seams around the wall clock.
var nowFn = time.Now
var sleepFn = time.Sleep

// Verify runs the email verification screen. The code was (or is now) sent
// to the signed-up address; the user types digits into six slots and can
// resend once the 60-second cooldown has run out.
//
// The countdown machine expects one Tick per elapsed second. A terminal is
// idle between prompts, so the driver folds the wall time elapsed since the
// last interaction into the matching number of ticks before handling each
// line.
//
// Screen commands: digits fill the entry slots, "del" clears the focused
// slot, "resend", "submit", and "back". After a successful verification the
// screen holds for the redirect delay and drops the session so the user logs
// in with the verified account, like the web client's redirect to the login
// page.
func (a *App) Verify(ctx context.Context) error {
	sess, _, err := a.store.Current(ctx)
	if err != nil {
		return err
	}
	if sess.Email == "" {
		printlnFn("No pending verification. Sign up first.")
		return nil
	}

	m := otp.NewMachine(sess.Email, a.auth)
	m.Mount(ctx)
	a.reportOTP(m)

	last := nowFn()

	for {
		renderOTP(m)

		line, err := getSimpleText(a.reader, "Enter digits, 'del', 'resend', 'submit' or 'back'", os.Stdout)
		if err != nil {
			return err
		}

		last = catchUp(m, last)

		switch line {
		case "":
			continue

		case "back":
			return nil

		case "del":
			m.EnterDigit(m.Focus(), "")

		case "resend":
			if !m.CanResend() {
				printlnFn(fmt.Sprintf("Resend available in %ds", m.Remaining()))
				continue
			}
			m.Resend(ctx)
			last = nowFn()
			a.reportOTP(m)

		case "submit":
			m.Submit(ctx)
			a.reportOTP(m)
			if m.State() == otp.StateVerified {
				sleepFn(m.RedirectDelay())
				if err := a.auth.Logout(ctx); err != nil {
					return err
				}
				a.refreshSession(ctx)
				printlnFn("Please log in.")
				return nil
			}

		default:
			enterDigits(m, line)
		}
	}
}

// catchUp feeds the machine one Tick per full second elapsed since last and
// returns the advanced anchor.
func catchUp(m *otp.Machine, last time.Time) time.Time {
	secs := int(nowFn().Sub(last) / time.Second)
	for i := 0; i < secs; i++ {
		m.Tick()
	}
	return last.Add(time.Duration(secs) * time.Second)
}

// enterDigits feeds each character of line into the focused slot. Anything
// but a digit is rejected as a whole.
func enterDigits(m *otp.Machine, line string) {
	for _, r := range line {
		if !m.EnterDigit(m.Focus(), string(r)) {
			printlnFn("Digits only.")
			return
		}
	}
}

func (a *App) reportOTP(m *otp.Machine) {
	if msg := m.Err(); msg != "" {
		printlnFn(msg)
		return
	}
	if msg := m.Notice(); msg != "" {
		printlnFn(msg)
	}
}

// renderOTP prints the entry slots and the cooldown, e.g.
//
//	Code: [1][2][3][_][_][_]  (resend in 42s)
func renderOTP(m *otp.Machine) {
	var b strings.Builder
	b.WriteString("Code: ")
	for _, d := range m.Digits() {
		if d == "" {
			d = "_"
		}
		b.WriteString("[" + d + "]")
	}
	if m.Remaining() > 0 {
		fmt.Fprintf(&b, "  (resend in %ds)", m.Remaining())
	} else if m.CanResend() {
		b.WriteString("  (resend available)")
	}
	printlnFn(b.String())
}
