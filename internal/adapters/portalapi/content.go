package portalapi

import (
	"strings"

	"github.com/target/mdbook-portal/internal/domain/model"
)

// ContentURL returns the address of a book's rendered content. Leading slashes
// on subPath are dropped and the rest is appended as given, so encoded names
// and #fragments survive. The token is never embedded, so the URL is only
// usable where the content route is public.
func (c *Client) ContentURL(id model.ID, subPath string) string {
	base := bookPath(id) + "/content"
	if subPath == "" {
		return c.baseURL + base
	}
	return c.baseURL + base + "/" + strings.TrimLeft(subPath, "/")
}
