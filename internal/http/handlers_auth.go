package http

import (
	"net/http"
	"strings"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionJSON struct {
	Token string   `json:"token"`
	User  userJSON `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := s.authn.Register(r.Context(),
		strings.TrimSpace(req.Username),
		strings.TrimSpace(strings.ToLower(req.Email)),
		strings.TrimSpace(req.FullName),
		req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, sessionJSON{Token: token, User: toUserJSON(user)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := s.authn.Authenticate(r.Context(),
		strings.TrimSpace(strings.ToLower(req.Email)), req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, sessionJSON{Token: token, User: toUserJSON(user)})
}
