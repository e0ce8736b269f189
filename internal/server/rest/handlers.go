package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/photojournal/internal/server/auth"
	"github.com/dmitrijs2005/photojournal/internal/server/services"
	"github.com/go-chi/chi/v5"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signUpResponse struct {
	UserID    int64     `json:"userId"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

type signInUser struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

type signInResponse struct {
	User  signInUser `json:"user"`
	Token string     `json:"token"`
}

// entryRequest has no owner field: the owner always comes from the token.
type entryRequest struct {
	Title    string `json:"title"`
	Notes    string `json:"notes"`
	PhotoURL string `json:"photoUrl"`
}

func (e entryRequest) input() services.EntryInput {
	return services.EntryInput{Title: e.Title, Notes: e.Notes, PhotoURL: e.PhotoURL}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return errInvalidBody
	}
	// the body must hold exactly one JSON value
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errInvalidBody
	}
	return nil
}

// entryIDParam parses the {entryId} path segment. Anything but a positive
// base-10 integer is rejected before reaching the service.
func entryIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "entryId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, services.ErrInvalidEntryID
	}
	return id, nil
}

func (s *HTTPServer) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}

func (s *HTTPServer) signUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	u, err := s.users.SignUp(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "user_id", u.ID)
	writeJSON(w, http.StatusCreated, signUpResponse{UserID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt})
}

func (s *HTTPServer) signIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		// a garbled body is treated like empty credentials
		req = credentialsRequest{}
	}

	res, err := s.users.SignIn(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, signInResponse{
		User:  signInUser{UserID: res.User.ID, Username: res.User.Username},
		Token: res.Token,
	})
}

func (s *HTTPServer) listEntries(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	list, err := s.entries.List(r.Context(), id.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *HTTPServer) getEntry(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	entryID, err := entryIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	e, err := s.entries.Get(r.Context(), id.UserID, entryID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *HTTPServer) createEntry(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	var req entryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	e, err := s.entries.Create(r.Context(), id.UserID, req.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *HTTPServer) updateEntry(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	entryID, err := entryIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req entryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	e, err := s.entries.Update(r.Context(), id.UserID, entryID, req.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *HTTPServer) deleteEntry(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	entryID, err := entryIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.entries.Delete(r.Context(), id.UserID, entryID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) newUploadURL(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	up, err := s.photos.NewUploadURL(r.Context(), id.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, up)
}
