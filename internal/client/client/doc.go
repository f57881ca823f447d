// Package client is the rentkeeper client's transport to the REST backend.
//
// # Overview
//
//  1. Client is the transport-agnostic API contract: auth (Login, Register,
//     Logout, Me), vehicles, reservations and the caller's profile.
//  2. HTTPClient implements it over net/http. A cookie jar keeps the
//     backend's session cookie, so once Login succeeds every later call is
//     authenticated without the caller handling tokens.
//
// # Error Handling
//
// Non-2xx responses and transport failures come back as *APIError, which
// unwraps to one of the sentinels: ErrUnauthorized, ErrValidation,
// ErrNotFound, ErrConflict, ErrUnavailable. Match with errors.Is and show
// APIError.Message to the user.
//
// All operations take a context.Context and honour cancellation. Each
// request is additionally bounded by the timeout given to NewHTTPClient.
package client
