package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/mdbook-portal/internal/adapters/portalapi"
	"github.com/target/mdbook-portal/internal/domain/auth"
	"github.com/target/mdbook-portal/internal/domain/model"
	"github.com/target/mdbook-portal/internal/ports"
	"github.com/target/mdbook-portal/internal/session"
	"github.com/target/mdbook-portal/internal/testutil/portaltest"
)

func newIntegratedService(t *testing.T, baseURL string) (*PortalService, *session.Store) {
	t.Helper()
	store := session.NewStore(session.StoreOptions{Backend: session.NewMemoryBackend(), Logger: discardLogger()})
	api := portalapi.New(portalapi.Options{BaseURL: baseURL, Tokens: store, Logger: discardLogger()})
	svc := NewPortalService(PortalServiceOptions{API: api, Session: store, Logger: discardLogger()})
	t.Cleanup(svc.Close)
	return svc, store
}

func TestIntegration_LoginSendsBearerOnBothFetches(t *testing.T) {
	var (
		mu   sync.Mutex
		seen = map[string]string{}
	)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"email":"a@x.com","password":"pw"}`, string(body))
		_, _ = io.WriteString(w, `{"token":"T","role":"admin","email":"a@x.com"}`)
	})
	record := func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen[r.URL.Path] = r.Header.Get("Authorization")
		mu.Unlock()
		_, _ = io.WriteString(w, `[]`)
	}
	mux.HandleFunc("GET /api/books", record)
	mux.HandleFunc("GET /api/admin/users", record)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	svc, store := newIntegratedService(t, srv.URL+"/api")
	require.NoError(t, svc.Login(context.Background(), "a@x.com", "pw"))

	assert.Equal(t, "T", store.CurrentToken())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, map[string]string{
		"/api/books":       "Bearer T",
		"/api/admin/users": "Bearer T",
	}, seen)
}

func TestIntegration_AdminWorkflow(t *testing.T) {
	fake := portaltest.New(t)
	admin := fake.AddUser("a@x.com", "pw", auth.RoleAdmin)
	reader := fake.AddUser("r@x.com", "pw", auth.RoleReader)
	ctx := context.Background()

	svc, _ := newIntegratedService(t, fake.URL())
	require.NoError(t, svc.Login(ctx, "a@x.com", "pw"))
	require.Len(t, svc.Users(), 2)

	fake.Reset()
	created, err := svc.CreateBook(ctx, "Guide", "")
	require.NoError(t, err)
	assert.Equal(t, "guide", created.Slug)
	assert.Equal(t, 1, fake.Count(http.MethodGet, "/books"), "exactly one refetch after a successful create")

	books := svc.Books()
	require.Len(t, books, 1)
	assert.Equal(t, "Guide", books[0].Title)
	assert.Equal(t, "guide", books[0].Slug)

	// Failed mutation: zero refetches, list unchanged.
	fake.Reset()
	_, err = svc.CreateBook(ctx, "Guide", "")
	require.Error(t, err)
	assert.Equal(t, "slug already exists", svc.Error())
	assert.Zero(t, fake.Count(http.MethodGet, "/books"))
	assert.Len(t, svc.Books(), 1)

	_, err = svc.UploadBook(ctx, books[0].ID, &ports.Upload{Filename: "guide.zip", Body: strings.NewReader("PK")})
	require.NoError(t, err)
	res, err := svc.BuildBook(ctx, books[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "built", res.Message)

	_, err = svc.OpenBookByID(books[0].ID)
	require.NoError(t, err)
	assert.Equal(t, fake.URL()+"/books/"+books[0].ID.String()+"/content", svc.Snapshot().ViewerURL)

	require.NoError(t, svc.SetUserActive(ctx, reader.ID, false))
	patches := fake.RequestsTo(http.MethodPatch, "/admin/users/"+reader.ID.String())
	require.Len(t, patches, 1)
	assert.JSONEq(t, `{"active":false}`, string(patches[0].Body))
	for _, u := range svc.Users() {
		if u.ID == reader.ID {
			assert.False(t, u.Active)
			assert.Equal(t, auth.RoleReader, u.Role, "role untouched")
		}
	}

	err = svc.DeleteUser(ctx, admin.ID)
	require.Error(t, err)
	assert.Equal(t, "cannot delete self", svc.Error())
	assert.Len(t, svc.Users(), 2)

	require.NoError(t, svc.Logout(ctx))
	v := svc.Snapshot()
	assert.False(t, v.Authenticated)
	assert.Empty(t, v.Books)
	assert.Empty(t, v.Users)
	assert.Nil(t, v.Selected)
}

func TestIntegration_ReaderSession(t *testing.T) {
	fake := portaltest.New(t)
	fake.AddUser("r@x.com", "pw", auth.RoleReader)
	fake.AddBook("Handbook", "")
	ctx := context.Background()

	svc, _ := newIntegratedService(t, fake.URL())
	require.NoError(t, svc.Login(ctx, "r@x.com", "pw"))

	assert.Equal(t, 1, fake.Count(http.MethodGet, "/books"))
	assert.Zero(t, fake.Count(http.MethodGet, "/admin/users"), "readers never fetch users")
	require.Len(t, svc.Books(), 1)

	me, err := svc.Identity(ctx)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleReader, me.Role)

	before := len(fake.Requests())
	err = svc.DeleteBook(ctx, model.ID("1"))
	require.ErrorIs(t, err, ErrAdminRequired)
	assert.Len(t, fake.Requests(), before, "refused admin actions send nothing")
}
