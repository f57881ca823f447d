package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/rentkeeper/internal/models"
	"github.com/go-chi/chi/v5"
)

func (h *handler) listVehicles(w http.ResponseWriter, r *http.Request) {
	list, err := h.vehicles.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paginated(list))
}

func (h *handler) createVehicle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVehicleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	v, err := h.vehicles.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *handler) updateVehicle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateVehicleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	v, err := h.vehicles.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *handler) deleteVehicle(w http.ResponseWriter, r *http.Request) {
	if err := h.vehicles.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) listReservations(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())
	list, err := h.reservations.List(r.Context(), p.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paginated(list))
}

func (h *handler) createReservation(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())
	var req models.CreateReservationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := h.reservations.Create(r.Context(), p.UserID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *handler) cancelReservation(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())
	res, err := h.reservations.Cancel(r.Context(), p.UserID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) completeReservation(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())
	res, err := h.reservations.Complete(r.Context(), p.UserID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())
	var req models.UpdateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	u, err := h.users.UpdateProfile(r.Context(), p.UserID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// deleteAccount removes the caller and ends the session.
func (h *handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())
	if err := h.users.Delete(r.Context(), p.UserID); err != nil {
		writeError(w, err)
		return
	}
	if err := h.users.Logout(r.Context(), p); err != nil {
		h.logger.Warn(r.Context(), "revoke after account deletion failed", "error", err)
	}
	h.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
