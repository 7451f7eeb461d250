package http

import (
	"net/http"

	"fintrack/internal/services"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.Get(r.Context(), UserID(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, toUserJSON(user))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var in services.ProfileInput
	if !decodeBody(w, r, &in) {
		return
	}

	user, err := s.users.UpdateProfile(r.Context(), UserID(r.Context()), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, toUserJSON(user))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err := s.authn.ChangePassword(r.Context(), UserID(r.Context()),
		req.CurrentPassword, req.NewPassword)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "password updated")
}
