package portal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/mdbook-portal/internal/domain/auth"
	"github.com/target/mdbook-portal/internal/domain/model"
)

func TestNewNavigation_LandsOnBooksList(t *testing.T) {
	for _, role := range []auth.Role{auth.RoleAdmin, auth.RoleReader, ""} {
		n := NewNavigation(role)
		assert.Equal(t, ModuleBooks, n.Module())
		assert.Equal(t, ViewList, n.BooksView())
		assert.Equal(t, ViewList, n.UsersView())
		assert.Equal(t, role, n.Role())
	}
}

func TestNavigation_ZeroValue(t *testing.T) {
	var n Navigation
	assert.Equal(t, ModuleBooks, n.Module())
	assert.Equal(t, ViewList, n.BooksView())
	assert.False(t, n.UsersReachable())
}

func TestNavigation_AdminTransitions(t *testing.T) {
	n := NewNavigation(auth.RoleAdmin)
	require.True(t, n.UsersReachable())

	n, err := n.WithUsersView(ViewCreate)
	require.NoError(t, err)
	assert.Equal(t, ModuleUsers, n.Module())
	assert.Equal(t, ViewCreate, n.UsersView())

	n, err = n.WithBooksView(ViewCreate)
	require.NoError(t, err)
	assert.Equal(t, ModuleBooks, n.Module())
	assert.Equal(t, ViewCreate, n.BooksView())
	assert.Equal(t, ViewCreate, n.UsersView(), "users view is remembered while away")

	n, err = n.WithModule(ModuleUsers)
	require.NoError(t, err)
	assert.Equal(t, ModuleUsers, n.Module())
}

func TestNavigation_ReaderCannotReachAdminStates(t *testing.T) {
	n := NewNavigation(auth.RoleReader)

	_, err := n.WithModule(ModuleUsers)
	assert.ErrorIs(t, err, ErrNavigationForbidden)

	_, err = n.WithUsersView(ViewList)
	assert.ErrorIs(t, err, ErrNavigationForbidden)

	_, err = n.WithUsersView(ViewCreate)
	assert.ErrorIs(t, err, ErrNavigationForbidden)

	_, err = n.WithBooksView(ViewCreate)
	assert.ErrorIs(t, err, ErrNavigationForbidden)

	got, err := n.WithBooksView(ViewList)
	require.NoError(t, err)
	assert.Equal(t, NewNavigation(auth.RoleReader), got)

	// Forbidden transitions return the receiver unchanged.
	same, _ := n.WithModule(ModuleUsers)
	assert.Equal(t, n, same)
}

func TestNavigation_UnknownTargets(t *testing.T) {
	n := NewNavigation(auth.RoleAdmin)

	_, err := n.WithModule("settings")
	assert.ErrorIs(t, err, ErrUnknownNavigation)
	_, err = n.WithBooksView("edit")
	assert.ErrorIs(t, err, ErrUnknownNavigation)
	_, err = n.WithUsersView("")
	assert.ErrorIs(t, err, ErrUnknownNavigation)
}

func TestNavigation_ForRole(t *testing.T) {
	admin, err := NewNavigation(auth.RoleAdmin).WithUsersView(ViewCreate)
	require.NoError(t, err)

	demoted := admin.ForRole(auth.RoleReader)
	assert.Equal(t, NewNavigation(auth.RoleReader), demoted)
	assert.False(t, demoted.UsersReachable())

	kept := admin.ForRole(auth.RoleAdmin)
	assert.Equal(t, ModuleUsers, kept.Module())
	assert.Equal(t, ViewCreate, kept.UsersView())
}

func TestParse(t *testing.T) {
	m, err := ParseModule(" Users ")
	require.NoError(t, err)
	assert.Equal(t, ModuleUsers, m)

	_, err = ParseModule("admin")
	assert.ErrorIs(t, err, ErrUnknownNavigation)

	v, err := ParseView("CREATE")
	require.NoError(t, err)
	assert.Equal(t, ViewCreate, v)

	_, err = ParseView("detail")
	assert.ErrorIs(t, err, ErrUnknownNavigation)
}

func TestSelection(t *testing.T) {
	var s Selection
	assert.False(t, s.IsOpen())
	_, ok := s.Book()
	assert.False(t, ok)
	assert.False(t, s.StaleIn(nil))

	book := model.Book{ID: "2", Title: "Guide"}
	s = Open(book)
	assert.True(t, s.IsOpen())
	got, ok := s.Book()
	require.True(t, ok)
	assert.Equal(t, book, got)

	books := []model.Book{{ID: "1"}, {ID: "2", Title: "Guide v2"}}
	assert.False(t, s.StaleIn(books))
	assert.True(t, s.StaleIn(books[:1]))
	assert.True(t, s.StaleIn(nil))

	assert.Equal(t, Closed(), Selection{})
}
