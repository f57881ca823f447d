// Package httpapi exposes the backend over REST with chi.
//
// Sessions ride in the rk_session HttpOnly cookie holding an HS256 JWT; the
// auth routes are rate limited per client IP. Errors are JSON
// {"message": ...} bodies with the status chosen by errorStatus.
package httpapi
