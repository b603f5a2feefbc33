// Package services contains the application services of the marketplace
// client. This file defines the auth service: login, signup, password change,
// email verification, and session lifecycle.
package services

import (
	"context"
	"strings"

	"github.com/ufmarketplace/ufmarket/internal/client/api"
	"github.com/ufmarketplace/ufmarket/internal/client/models"
	"github.com/ufmarketplace/ufmarket/internal/client/session"
	"github.com/ufmarketplace/ufmarket/internal/common"
)

// ValidationError is a local input rejection raised before any network call.
// Its text is shown to the user as-is.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

const (
	passwordMismatchMessage = "Passwords do not match"
	missingFieldsMessage    = "All fields are required"
)

// AuthService defines the authentication operations of the client.
//
// Contract:
//   - Login/Signup validate inputs locally first; a ValidationError means no
//     request went out. On success the session store holds exactly the
//     identity the server returned; on failure the store is untouched.
//   - SendVerificationCode/VerifyVerificationCode operate on the currently
//     stored email.
//   - Logout clears the session store.
//
// All methods honor context cancellation.
type AuthService interface {
	Login(ctx context.Context, email, password string) (models.Session, error)
	Signup(ctx context.Context, name, email, password, confirmPassword string) (models.Session, error)
	ChangePassword(ctx context.Context, newPassword, confirmPassword string) error
	SendVerificationCode(ctx context.Context) error
	VerifyVerificationCode(ctx context.Context, code string) error
	Logout(ctx context.Context) error
}

type authService struct {
	client api.Client
	store  session.Store

	emailDomain   string
	domainMessage string
}

// NewAuthService builds an AuthService enforcing the given institutional
// email domain. domainMessage is the text shown when the check fails.
func NewAuthService(client api.Client, store session.Store, emailDomain, domainMessage string) AuthService {
	return &authService{client: client, store: store, emailDomain: emailDomain, domainMessage: domainMessage}
}

func (a *authService) checkEmailDomain(email string) error {
	if !strings.Contains(email, a.emailDomain) {
		return ValidationError(a.domainMessage)
	}
	return nil
}

func (a *authService) Login(ctx context.Context, email, password string) (models.Session, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return models.Session{}, ValidationError(missingFieldsMessage)
	}
	if err := a.checkEmailDomain(email); err != nil {
		return models.Session{}, err
	}

	sess, err := a.client.Login(ctx, email, password)
	if err != nil {
		return models.Session{}, err
	}

	if err := a.store.Save(ctx, sess); err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

func (a *authService) Signup(ctx context.Context, name, email, password, confirmPassword string) (models.Session, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" ||
		strings.TrimSpace(password) == "" || strings.TrimSpace(confirmPassword) == "" {
		return models.Session{}, ValidationError(missingFieldsMessage)
	}
	if err := a.checkEmailDomain(email); err != nil {
		return models.Session{}, err
	}
	if password != confirmPassword {
		return models.Session{}, ValidationError(passwordMismatchMessage)
	}

	sess, err := a.client.Signup(ctx, name, email, password)
	if err != nil {
		return models.Session{}, err
	}

	if err := a.store.Save(ctx, sess); err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

func (a *authService) ChangePassword(ctx context.Context, newPassword, confirmPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return ValidationError(missingFieldsMessage)
	}
	if newPassword != confirmPassword {
		return ValidationError(passwordMismatchMessage)
	}

	sess, ok, err := a.store.Current(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrNoSession
	}

	return a.client.ChangePassword(ctx, sess.Name, sess.Email, newPassword)
}

func (a *authService) SendVerificationCode(ctx context.Context) error {
	email, err := a.storedEmail(ctx)
	if err != nil {
		return err
	}
	return a.client.SendVerificationCode(ctx, email)
}

func (a *authService) VerifyVerificationCode(ctx context.Context, code string) error {
	email, err := a.storedEmail(ctx)
	if err != nil {
		return err
	}
	return a.client.VerifyVerificationCode(ctx, email, code)
}

// storedEmail reads the email of the session being verified. Verification
// runs right after signup, so only the email field is required, not a token.
func (a *authService) storedEmail(ctx context.Context) (string, error) {
	sess, _, err := a.store.Current(ctx)
	if err != nil {
		return "", err
	}
	if sess.Email == "" {
		return "", common.ErrNoSession
	}
	return sess.Email, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.Clear(ctx)
}
