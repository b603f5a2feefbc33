package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ufmarketplace/ufmarket/internal/client/models"
)

func TestOpenMigratesSchema(t *testing.T) {
	ctx := context.Background()

	db, err := Open(ctx, InMemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := NewSQLStore(db)

	_, ok, err := store.Current(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	err = store.Save(ctx, models.Session{Token: "t", UserID: "7", Email: "a@ufl.edu", Name: "A"})
	require.NoError(t, err)

	sess, ok, err := store.Current(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a@ufl.edu", sess.Email)
}
