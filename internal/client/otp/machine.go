// Package otp models the email verification screen as an explicit state
// machine: a 6-digit entry buffer plus a 60-second resend cooldown.
//
// The machine is purely event-driven and not safe for concurrent use; the
// driver must serialize ticks, digit entry, and call completions onto one
// goroutine, which matches how the original UI event loop behaved.
package otp

import (
	"context"
	"strings"
	"time"
)

// State identifies where the verification flow currently is.
type State int

const (
	// StateIdle: no cooldown running, resend is available.
	StateIdle State = iota
	// StateCooldown: a code was sent; resend unlocks when Remaining hits 0.
	StateCooldown
	// StateVerifying: a verify call is in flight.
	StateVerifying
	// StateVerified: the code was accepted; the driver should navigate away
	// after RedirectDelay.
	StateVerified
	// StateFailed: the last verify call was rejected; digits are retained
	// for correction. Editing a digit leaves this state.
	StateFailed
)

const (
	// Digits is the fixed number of code slots.
	Digits = 6
	// CooldownSeconds is the resend cooldown armed after every send.
	CooldownSeconds = 60
	// redirectDelay is how long the success message stays up before the
	// driver navigates away.
	redirectDelay = 2 * time.Second
)

const incompleteCodeMessage = "Please enter a 6-digit code"

type verifyPhase int

const (
	verifyNone verifyPhase = iota
	verifyInFlight
	verifyAccepted
	verifyRejected
)

// Gateway is the slice of the auth service the machine needs.
type Gateway interface {
	SendVerificationCode(ctx context.Context) error
	VerifyVerificationCode(ctx context.Context, code string) error
}

// Machine drives the OTP verification flow for one email address.
//
// The resend cooldown and the verify call are independent concerns: a
// rejected code does not stop the countdown. State() folds the two into the
// single externally visible state, with the verify phase taking precedence.
type Machine struct {
	gateway Gateway
	email   string

	remaining int
	phase     verifyPhase
	digits    [Digits]string
	focus     int

	// sentInitial latches the one-shot send on mount so a re-mount or
	// re-render can never trigger a second initial send.
	sentInitial bool

	errMsg string
	notice string
}

func NewMachine(email string, gateway Gateway) *Machine {
	return &Machine{gateway: gateway, email: email}
}

// State returns the current state.
func (m *Machine) State() State {
	switch m.phase {
	case verifyInFlight:
		return StateVerifying
	case verifyAccepted:
		return StateVerified
	case verifyRejected:
		return StateFailed
	}
	if m.remaining > 0 {
		return StateCooldown
	}
	return StateIdle
}

// Remaining returns the cooldown seconds left.
func (m *Machine) Remaining() int { return m.remaining }

// Email returns the address the code was sent to.
func (m *Machine) Email() string { return m.email }

// Focus returns the index of the slot that should receive the next digit.
func (m *Machine) Focus() int { return m.focus }

// Digits returns a copy of the entry buffer.
func (m *Machine) Digits() [Digits]string { return m.digits }

// Err returns the message of the last failure, "" if none.
func (m *Machine) Err() string { return m.errMsg }

// Notice returns the last informational message, "" if none.
func (m *Machine) Notice() string { return m.notice }

// RedirectDelay is how long the driver should wait after StateVerified
// before navigating away.
func (m *Machine) RedirectDelay() time.Duration { return redirectDelay }

// Mount fires the initial send-code call exactly once per machine, provided
// an email is present. On success the cooldown arms at CooldownSeconds; on
// failure the machine stays Idle so the user can resend immediately.
func (m *Machine) Mount(ctx context.Context) {
	if m.email == "" || m.sentInitial {
		return
	}
	m.sentInitial = true
	m.send(ctx, "Verification code sent to your email!")
}

// Tick advances the cooldown by one second. The driver re-arms its timer
// after every tick; once Remaining reaches 0 the cooldown is over and the
// timer must not be re-armed.
func (m *Machine) Tick() {
	if m.remaining > 0 {
		m.remaining--
	}
}

// CanResend reports whether the resend action is currently available.
func (m *Machine) CanResend() bool {
	return m.State() == StateIdle && m.sentInitial
}

// Resend re-sends the code. Only honored while Idle; a failed send surfaces
// the error and does not start the cooldown.
func (m *Machine) Resend(ctx context.Context) {
	if m.State() != StateIdle {
		return
	}
	m.errMsg = ""
	m.send(ctx, "New OTP sent to your email!")
}

func (m *Machine) send(ctx context.Context, notice string) {
	if err := m.gateway.SendVerificationCode(ctx); err != nil {
		m.remaining = 0
		m.errMsg = err.Error()
		return
	}
	m.remaining = CooldownSeconds
	m.notice = notice
}

// EnterDigit stores value into slot i. A single digit or the empty string
// (deletion) is accepted; anything else is rejected with no state change.
// Entering a digit into a slot before the last advances the focus. Editing
// clears a previous verification failure.
func (m *Machine) EnterDigit(i int, value string) bool {
	if i < 0 || i >= Digits {
		return false
	}
	if value != "" && !isDigit(value) {
		return false
	}
	m.digits[i] = value
	if value != "" && i < Digits-1 {
		m.focus = i + 1
	} else {
		m.focus = i
	}
	m.errMsg = ""
	if m.phase == verifyRejected {
		m.phase = verifyNone
	}
	return true
}

func isDigit(s string) bool {
	return len(s) == 1 && s[0] >= '0' && s[0] <= '9'
}

// Code concatenates the entered digits.
func (m *Machine) Code() string {
	return strings.Join(m.digits[:], "")
}

// CanSubmit reports whether all slots are populated.
func (m *Machine) CanSubmit() bool {
	for _, d := range m.digits {
		if d == "" {
			return false
		}
	}
	return true
}

// Submit verifies the entered code. An incomplete buffer is rejected locally
// without a network call. On success the machine is Verified; on rejection
// it is Failed and keeps the digits so the user can correct them.
func (m *Machine) Submit(ctx context.Context) {
	if !m.CanSubmit() {
		m.errMsg = incompleteCodeMessage
		return
	}

	m.phase = verifyInFlight
	if err := m.gateway.VerifyVerificationCode(ctx, m.Code()); err != nil {
		m.phase = verifyRejected
		m.errMsg = err.Error()
		return
	}
	m.phase = verifyAccepted
	m.notice = "Verification successful! Redirecting to login page..."
	m.errMsg = ""
}
