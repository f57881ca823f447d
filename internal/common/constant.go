package common

// SessionCookieName is the cookie the backend sets on login and the client
// replays on every request.
const SessionCookieName = "rk_session"
