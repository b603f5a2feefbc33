// Package session implements the key-value repository backing the client's
// session store. It mirrors the browser's tab-scoped storage: a flat set of
// string keys that disappears with the process.
package session

import "context"

type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
