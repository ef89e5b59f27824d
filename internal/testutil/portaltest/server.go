// Package portaltest runs an in-process portal API for gateway, controller and
// CLI tests. It mirrors the server routes, signs HS256 bearer tokens and records
// every request it receives.
package portaltest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/target/mdbook-portal/internal/domain/auth"
	"github.com/target/mdbook-portal/internal/domain/model"
)

const signingKey = "portaltest-signing-key"

// Request is a recorded inbound call.
type Request struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	Body          []byte
}

// Fault is a canned failure returned instead of the real handler.
type Fault struct {
	Status int
	Body   string
}

type account struct {
	user     model.User
	password string
}

type claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type claimsKey struct{}

// Server is the fake portal.
type Server struct {
	srv *httptest.Server

	mu       sync.Mutex
	accounts map[string]*account // by email
	books    []model.Book
	nextBook int
	uploads  map[model.ID][]byte
	requests []Request
	faults   map[string][]Fault
}

// New starts a fake portal and stops it when the test ends.
func New(tb testing.TB) *Server {
	tb.Helper()
	s := &Server{
		accounts: make(map[string]*account),
		uploads:  make(map[model.ID][]byte),
		faults:   make(map[string][]Fault),
		nextBook: 1,
	}
	s.srv = httptest.NewServer(s.routes())
	tb.Cleanup(s.srv.Close)
	return s
}

// URL is the API base URL (the server root plus /api).
func (s *Server) URL() string { return s.srv.URL + "/api" }

// AddUser seeds an account and returns it.
func (s *Server) AddUser(email, password string, role auth.Role) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(email, password, role)
}

func (s *Server) addUserLocked(email, password string, role auth.Role) model.User {
	u := model.User{ID: model.ID(uuid.NewString()), Email: email, Role: role, Active: true}
	s.accounts[email] = &account{user: u, password: password}
	return u
}

// AddBook seeds a book and returns it.
func (s *Server) AddBook(title, slug string) model.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addBookLocked(title, slug)
}

func (s *Server) addBookLocked(title, slug string) model.Book {
	if slug == "" {
		slug = Slugify(title)
	}
	active := true
	id := model.ID(fmt.Sprint(s.nextBook))
	s.nextBook++
	b := model.Book{
		ID:        id,
		Title:     title,
		Slug:      slug,
		SourceDir: path.Join("/data/books", slug, "src"),
		BuildDir:  path.Join("/data/books", slug, "book"),
		Active:    &active,
	}
	s.books = append(s.books, b)
	return b
}

// Token mints a bearer token for a seeded account.
func (s *Server) Token(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[email]
	if !ok {
		return ""
	}
	tok, err := mintToken(acct.user)
	if err != nil {
		return ""
	}
	return tok
}

// Users returns the current accounts.
func (s *Server) Users() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usersLocked()
}

// Books returns the current books.
func (s *Server) Books() []model.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Book(nil), s.books...)
}

// Upload returns the archive bytes last uploaded for a book.
func (s *Server) Upload(id model.ID) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.uploads[id]
	return data, ok
}

// Fail queues a canned response for the next call to method and path
// (path relative to the API base, e.g. "/admin/users/5").
func (s *Server) Fail(method, p string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := method + " " + p
	s.faults[key] = append(s.faults[key], Fault{Status: status, Body: body})
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// RequestsTo returns the recorded requests matching method and path.
func (s *Server) RequestsTo(method, p string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == p {
			out = append(out, r)
		}
	}
	return out
}

// Count returns how many times method and path were requested.
func (s *Server) Count(method, p string) int {
	return len(s.RequestsTo(method, p))
}

// Reset forgets recorded requests.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record, s.inject)
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/register", s.handleRegister)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Get("/me", s.handleMe)
			r.Get("/books", s.handleListBooks)
			r.Get("/books/{id}", s.handleGetBook)
			r.Get("/books/{id}/content", s.handleContent)
			r.Get("/books/{id}/content/*", s.handleContent)

			r.Route("/admin", func(r chi.Router) {
				r.Use(requireAdmin)
				r.Get("/users", s.handleListUsers)
				r.Post("/users", s.handleCreateUser)
				r.Patch("/users/{id}", s.handleUpdateUser)
				r.Delete("/users/{id}", s.handleDeleteUser)

				r.Post("/books", s.handleCreateBook)
				r.Patch("/books/{id}", s.handleUpdateBook)
				r.Delete("/books/{id}", s.handleDeleteBook)
				r.Post("/books/{id}/build", s.handleBuildBook)
				r.Post("/books/{id}/upload", s.handleUploadBook)
			})
		})
	})
	return r
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          strings.TrimPrefix(r.URL.Path, "/api"),
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			Body:          body,
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api")
		s.mu.Lock()
		queue := s.faults[key]
		var fault *Fault
		if len(queue) > 0 {
			fault = &queue[0]
			s.faults[key] = queue[1:]
		}
		s.mu.Unlock()

		if fault == nil {
			next.ServeHTTP(w, r)
			return
		}
		if fault.Body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(fault.Status)
		_, _ = io.WriteString(w, fault.Body)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "missing token")
			return
		}
		c, err := parseToken(raw)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, c)))
	})
}

func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, _ := r.Context().Value(claimsKey{}).(*claims)
		if c == nil || c.Role != string(auth.RoleAdmin) {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func mintToken(u model.User) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: u.ID.String(),
		Role:   string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	})
	return tok.SignedString([]byte(signingKey))
}

func parseToken(raw string) (*claims, error) {
	c := &claims{}
	parsed, err := jwt.ParseWithClaims(raw, c, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return []byte(signingKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return c, nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a title the way the portal server does.
func Slugify(title string) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "-"), "-")
	if slug == "" {
		return "book"
	}
	return slug
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
