package cart

import (
	"context"
	"time"

	"cart-api/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository needs. pgxmock satisfies it
// in tests.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository is the persistence boundary for carts and their items.
type Repository interface {
	// Create inserts a new active cart with both timestamps set to now.
	Create(ctx context.Context) (*domain.Cart, error)

	// GetByID loads a cart with its items, or domain.ErrNotFound.
	GetByID(ctx context.Context, id string) (*domain.Cart, error)

	// AddItem creates the line for product or accumulates onto the existing
	// quantity, capturing the unit price on first add. The item write and the
	// last_interaction_at update commit together. A net quantity <= 0 fails
	// with domain.ErrInvalidQuantity without touching the cart.
	AddItem(ctx context.Context, cartID string, product domain.Product, quantity int) error

	// RemoveItem deletes the line for productID and touches
	// last_interaction_at in the same transaction. Fails with
	// domain.ErrItemNotFound when the product is not in the cart.
	RemoveItem(ctx context.Context, cartID, productID string) error

	// MarkAbandoned sets abandoned_at once; re-marking an already abandoned
	// cart is a no-op.
	MarkAbandoned(ctx context.Context, cartID string, now time.Time) error

	// Delete removes the cart and all its items in one transaction.
	Delete(ctx context.Context, cartID string) error

	// ListAbandonable returns active carts whose last interaction predates cutoff.
	ListAbandonable(ctx context.Context, cutoff time.Time) ([]domain.Cart, error)

	// ListPurgeable returns abandoned carts whose abandoned_at predates cutoff.
	ListPurgeable(ctx context.Context, cutoff time.Time) ([]domain.Cart, error)
}
