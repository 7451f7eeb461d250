package http

import (
	"log/slog"
	"net/http"

	"fintrack/internal/services"
)

// Category listings are cached per user; every mutation invalidates the
// owner's entry.

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	owner := UserID(r.Context())
	if cats, found := s.categoryCache.Get(owner); found {
		slog.DebugContext(r.Context(), "Category cache hit", "user_id", owner)
		writeData(w, http.StatusOK, toCategoryListJSON(cats))
		return
	}

	cats, err := s.categories.List(r.Context(), owner)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.categoryCache.Set(owner, cats)
	writeData(w, http.StatusOK, toCategoryListJSON(cats))
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var in services.CategoryInput
	if !decodeBody(w, r, &in) {
		return
	}

	owner := UserID(r.Context())
	cat, err := s.categories.Create(r.Context(), owner, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.categoryCache.Delete(owner)
	writeData(w, http.StatusCreated, toCategoryJSON(cat))
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var in services.CategoryInput
	if !decodeBody(w, r, &in) {
		return
	}

	owner := UserID(r.Context())
	cat, err := s.categories.Update(r.Context(), owner, r.PathValue("id"), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.categoryCache.Delete(owner)
	writeData(w, http.StatusOK, toCategoryJSON(cat))
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	owner := UserID(r.Context())
	if err := s.categories.Delete(r.Context(), owner, r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	s.categoryCache.Delete(owner)
	writeMessage(w, http.StatusOK, "category deleted")
}
