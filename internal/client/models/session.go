// Package models defines the data shapes the marketplace client works with:
// the user session and the wire/display/draft representations of a listing.
package models

// Session holds the identity issued by the backend at login/signup time.
// The token is opaque; the client never inspects or validates it, it only
// forwards it on authenticated requests.
type Session struct {
	Token  string
	UserID string
	Email  string
	Name   string
}

// Authenticated reports whether the session carries a token. Token presence
// is the only authentication signal the client acts on.
func (s Session) Authenticated() bool {
	return s.Token != ""
}
