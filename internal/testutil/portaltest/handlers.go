package portaltest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/target/mdbook-portal/internal/domain/auth"
	"github.com/target/mdbook-portal/internal/domain/model"
)

const maxUpload = 32 << 20

func (s *Server) usersLocked() []model.User {
	out := make([]model.User, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a.user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out
}

func (s *Server) accountByIDLocked(id model.ID) *account {
	for _, a := range s.accounts {
		if a.user.ID == id {
			return a
		}
	}
	return nil
}

func (s *Server) bookIndexLocked(id model.ID) int {
	for i, b := range s.books {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func decode(r *http.Request, v any) bool {
	return json.NewDecoder(r.Body).Decode(v) == nil
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decode(r, &req) {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	s.mu.Lock()
	acct, ok := s.accounts[strings.ToLower(req.Email)]
	s.mu.Unlock()
	if !ok || acct.password != req.Password || !acct.user.Active {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	tok, err := mintToken(acct.user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token error")
		return
	}
	writeJSON(w, http.StatusOK, model.LoginResponse{Token: tok, Role: acct.user.Role, Email: acct.user.Email})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decode(r, &req) {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password required")
		return
	}
	email := strings.ToLower(req.Email)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[email]; exists {
		writeError(w, http.StatusBadRequest, "email already exists")
		return
	}
	s.addUserLocked(email, req.Password, auth.RoleReader)
	writeMessage(w, http.StatusCreated, "registered")
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	c, _ := r.Context().Value(claimsKey{}).(*claims)
	s.mu.Lock()
	acct := s.accountByIDLocked(model.ID(c.UserID))
	s.mu.Unlock()
	if acct == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, acct.user)
}

func (s *Server) handleListBooks(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Books())
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	id := model.ID(chi.URLParam(r, "id"))
	s.mu.Lock()
	idx := s.bookIndexLocked(id)
	var book model.Book
	if idx >= 0 {
		book = s.books[idx]
	}
	s.mu.Unlock()
	if idx < 0 {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	id := model.ID(chi.URLParam(r, "id"))
	file := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if file == "" {
		file = "index.html"
	}
	if strings.Contains(file, "..") {
		writeError(w, http.StatusBadRequest, "invalid path")
		return
	}
	s.mu.Lock()
	idx := s.bookIndexLocked(id)
	var title string
	if idx >= 0 {
		title = s.books[idx].Title
	}
	s.mu.Unlock()
	if idx < 0 {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = fmt.Fprintf(w, "<html><title>%s</title><body>%s</body></html>", title, file)
}

func (s *Server) handleListUsers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Users())
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if !decode(r, &req) {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Role == "" {
		req.Role = auth.RoleReader
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password required")
		return
	}
	email := strings.ToLower(req.Email)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[email]; exists {
		writeError(w, http.StatusBadRequest, "email already exists")
		return
	}
	s.addUserLocked(email, req.Password, req.Role)
	writeMessage(w, http.StatusCreated, "created")
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id := model.ID(chi.URLParam(r, "id"))
	var req model.UpdateUserRequest
	if !decode(r, &req) {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Role == nil && req.Active == nil {
		writeError(w, http.StatusBadRequest, "no changes")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.accountByIDLocked(id)
	if acct == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if req.Role != nil {
		acct.user.Role = *req.Role
	}
	if req.Active != nil {
		acct.user.Active = *req.Active
	}
	writeMessage(w, http.StatusOK, "updated")
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := model.ID(chi.URLParam(r, "id"))
	c, _ := r.Context().Value(claimsKey{}).(*claims)
	if c != nil && c.UserID == id.String() {
		writeError(w, http.StatusBadRequest, "cannot delete self")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.accountByIDLocked(id)
	if acct == nil {
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	delete(s.accounts, acct.user.Email)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBookRequest
	if !decode(r, &req) {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "title required")
		return
	}
	slug := Slugify(req.Slug)
	if strings.TrimSpace(req.Slug) == "" {
		slug = Slugify(req.Title)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.books {
		if b.Slug == slug {
			writeError(w, http.StatusBadRequest, "slug already exists")
			return
		}
	}
	writeJSON(w, http.StatusCreated, s.addBookLocked(req.Title, slug))
}

func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	id := model.ID(chi.URLParam(r, "id"))
	var req model.UpdateBookRequest
	if !decode(r, &req) {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Title == nil && req.Active == nil {
		writeError(w, http.StatusBadRequest, "no changes")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.bookIndexLocked(id)
	if idx < 0 {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if req.Title != nil {
		s.books[idx].Title = *req.Title
	}
	if req.Active != nil {
		active := *req.Active
		s.books[idx].Active = &active
	}
	writeMessage(w, http.StatusOK, "updated")
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	id := model.ID(chi.URLParam(r, "id"))
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.bookIndexLocked(id)
	if idx < 0 {
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	s.books = append(s.books[:idx], s.books[idx+1:]...)
	delete(s.uploads, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBuildBook(w http.ResponseWriter, r *http.Request) {
	id := model.ID(chi.URLParam(r, "id"))
	s.mu.Lock()
	idx := s.bookIndexLocked(id)
	_, uploaded := s.uploads[id]
	s.mu.Unlock()
	switch {
	case idx < 0:
		writeError(w, http.StatusNotFound, "not found")
	case !uploaded:
		writeError(w, http.StatusInternalServerError, "book.toml not found")
	default:
		writeMessage(w, http.StatusOK, "built")
	}
}

func (s *Server) handleUploadBook(w http.ResponseWriter, r *http.Request) {
	id := model.ID(chi.URLParam(r, "id"))
	s.mu.Lock()
	idx := s.bookIndexLocked(id)
	s.mu.Unlock()
	if idx < 0 {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		writeError(w, http.StatusBadRequest, "missing file")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file")
		return
	}
	defer func() { _ = file.Close() }()
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".zip") {
		writeError(w, http.StatusBadRequest, "only .zip files are supported")
		return
	}
	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save upload")
		return
	}
	s.mu.Lock()
	s.uploads[id] = data
	s.mu.Unlock()
	writeMessage(w, http.StatusOK, "uploaded")
}
