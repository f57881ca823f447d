// Package cli implements the rentkeeper terminal client: a small REPL whose
// commands are routed through the client router, so every page is reached
// only after the session check has completed and its guards have allowed
// the visit.
//
// Pages
//
//	/auth/login           login form
//	/auth/register        registration form
//	/auth/reset-password  password reset request
//	/reservations         reservation list (landing page)
//	/vehicles             vehicle inventory
//	/dashboard            overview for the logged-in user
//	/profile/edit         profile form
//
// User-facing messages go through the Notifier; the logger only records
// diagnostics.
package cli
