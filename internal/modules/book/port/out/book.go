package out

import (
	"context"

	"questbook/internal/modules/book/domain"
)

// Catalog lists the live quest records as browse entries.
type Catalog interface {
	List(ctx context.Context) ([]domain.Entry, error)
}

// Permissions is the identity/permission host predicate.
type Permissions interface {
	Has(user, permission string) bool
}

// Presenter is the presentation host surface for views and books.
type Presenter interface {
	OpenView(ctx context.Context, user string, view domain.View) error
	CloseView(ctx context.Context, user string) error
	OpenBook(ctx context.Context, user string, book domain.Book) error
}

// Expander substitutes per-viewer placeholders in quest text before display.
type Expander interface {
	Expand(ctx context.Context, viewer, questID string, pages []string) ([]string, error)
}
