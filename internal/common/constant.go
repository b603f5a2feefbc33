// Package common contains shared constants and sentinel errors used across
// the marketplace client.
package common

// SessionIDHeaderName is the HTTP header that carries the opaque session
// token on outbound requests.
const SessionIDHeaderName = "X-Session-ID"

// UserIDHeaderName is the HTTP header that carries the authenticated user's
// identifier on outbound requests.
const UserIDHeaderName = "userId"
