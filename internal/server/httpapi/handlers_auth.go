package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/common"
	"github.com/dmitrijs2005/rentkeeper/internal/models"
)

func (h *handler) setSessionCookie(w http.ResponseWriter, value string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(expires.Sub(h.now()).Seconds()),
		HttpOnly: true,
		Secure:   h.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// register creates an account but does not log it in.
func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	u, err := h.users.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, models.AuthResponse{User: u, Message: "registration successful"})
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	sess, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		status, msg := errorStatus(err)
		if status == http.StatusUnauthorized {
			msg = "invalid email or password"
		}
		writeMessage(w, status, msg)
		return
	}

	h.setSessionCookie(w, sess.Token.Value, sess.Token.ExpiresAt)
	writeJSON(w, http.StatusOK, models.AuthResponse{User: sess.User, Message: "login successful"})
}

// logout revokes the presented token, if any is valid, and always clears
// the cookie.
func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)

	token := sessionToken(r)
	if token == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	p, err := h.users.Authenticate(r.Context(), token)
	if err != nil {
		if status, _ := errorStatus(err); status == http.StatusUnauthorized {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeError(w, err)
		return
	}
	if err := h.users.Logout(r.Context(), p); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) me(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())
	u, err := h.users.Me(r.Context(), p.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.MeResponse{User: u})
}
