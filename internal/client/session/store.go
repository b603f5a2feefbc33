// Package session exposes the client's session state through an accessor
// interface. Identity fields live in a process-lifetime key-value store under
// the same keys the web client used: sessionId, name, email, userId.
package session

import (
	"context"
	"database/sql"

	"github.com/ufmarketplace/ufmarket/internal/client/models"
	sessionrepo "github.com/ufmarketplace/ufmarket/internal/client/repositories/session"
	"github.com/ufmarketplace/ufmarket/internal/dbx"
)

// Storage keys. These match the web client's storage layout and the backend's
// field names, so keep them stable.
const (
	KeySessionID = "sessionId"
	KeyName      = "name"
	KeyEmail     = "email"
	KeyUserID    = "userId"
)

// Store is the accessor through which every other component reads or mutates
// session state. Writes happen only on successful login/signup, Clear only on
// logout; no other component mutates the store.
type Store interface {
	// Current returns the stored session and whether a token is present.
	Current(ctx context.Context) (models.Session, bool, error)

	// Save replaces the stored identity fields with those of s.
	Save(ctx context.Context, s models.Session) error

	// Clear removes every stored field.
	Clear(ctx context.Context) error

	// Credentials returns the token and user id for outgoing requests.
	// Both are empty when nobody is logged in.
	Credentials(ctx context.Context) (sessionID, userID string, err error)
}

// SQLStore is the Store implementation over the SQLite-backed repository.
// Saves are transactional so a failed write never leaves a partial session.
type SQLStore struct {
	db   *sql.DB
	repo sessionrepo.Repository
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, repo: sessionrepo.NewSQLiteRepository(db)}
}

func (s *SQLStore) Current(ctx context.Context) (models.Session, bool, error) {
	var sess models.Session
	var err error

	if sess.Token, err = s.repo.Get(ctx, KeySessionID); err != nil {
		return models.Session{}, false, err
	}
	if sess.Name, err = s.repo.Get(ctx, KeyName); err != nil {
		return models.Session{}, false, err
	}
	if sess.Email, err = s.repo.Get(ctx, KeyEmail); err != nil {
		return models.Session{}, false, err
	}
	if sess.UserID, err = s.repo.Get(ctx, KeyUserID); err != nil {
		return models.Session{}, false, err
	}

	return sess, sess.Authenticated(), nil
}

func (s *SQLStore) Save(ctx context.Context, sess models.Session) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := sessionrepo.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeySessionID, sess.Token); err != nil {
			return err
		}
		if err := repo.Set(ctx, KeyName, sess.Name); err != nil {
			return err
		}
		if err := repo.Set(ctx, KeyEmail, sess.Email); err != nil {
			return err
		}
		return repo.Set(ctx, KeyUserID, sess.UserID)
	})
}

func (s *SQLStore) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

func (s *SQLStore) Credentials(ctx context.Context) (string, string, error) {
	sessionID, err := s.repo.Get(ctx, KeySessionID)
	if err != nil {
		return "", "", err
	}
	userID, err := s.repo.Get(ctx, KeyUserID)
	if err != nil {
		return "", "", err
	}
	return sessionID, userID, nil
}
