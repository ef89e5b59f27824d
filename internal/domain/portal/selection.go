package portal

import "github.com/target/mdbook-portal/internal/domain/model"

// Selection is the book open in the viewer, if any. The zero value is closed.
// Opening never fetches; the book value is kept as it was when opened.
type Selection struct {
	book model.Book
	open bool
}

// Open returns a selection holding b.
func Open(b model.Book) Selection {
	return Selection{book: b, open: true}
}

// Closed returns the empty selection.
func Closed() Selection { return Selection{} }

// IsOpen reports whether a book is selected.
func (s Selection) IsOpen() bool { return s.open }

// Book returns the selected book.
func (s Selection) Book() (model.Book, bool) {
	return s.book, s.open
}

// StaleIn reports whether the selected book is missing from books. A stale
// selection stays open; callers decide what to render.
func (s Selection) StaleIn(books []model.Book) bool {
	if !s.open {
		return false
	}
	_, ok := model.FindBook(books, s.book.ID)
	return !ok
}
