// Package api wraps the marketplace backend's REST endpoints behind the
// Client interface.
//
// Request handling rules:
//
//   - Every request carries the X-Session-ID and userId headers when a
//     session token is stored; otherwise it is sent unauthenticated.
//   - Transport failures (no response) wrap ErrUnavailable.
//   - Server rejections become *ServerError with the response body verbatim;
//     the gateway never reinterprets server error strings.
//   - Mutations (create/update/delete) resolve to the caller's full listing
//     collection so local state can be replaced rather than patched.
package api
