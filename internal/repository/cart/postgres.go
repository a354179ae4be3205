package cart

import (
	"context"
	"errors"
	"time"

	"cart-api/internal/domain"

	"github.com/jackc/pgx/v5"
)

type postgresRepo struct {
	db DB
}

func NewPostgres(db DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) Create(ctx context.Context) (*domain.Cart, error) {
	const q = `
INSERT INTO carts DEFAULT VALUES
RETURNING id::text, last_interaction_at, abandoned_at, created_at
`
	var cart domain.Cart
	if err := r.db.QueryRow(ctx, q).Scan(
		&cart.ID,
		&cart.LastInteractionAt,
		&cart.AbandonedAt,
		&cart.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Cart, error) {
	const cartQuery = `
SELECT id::text, last_interaction_at, abandoned_at, created_at
FROM carts
WHERE id = $1
`
	var cart domain.Cart
	err := r.db.QueryRow(ctx, cartQuery, id).Scan(
		&cart.ID,
		&cart.LastInteractionAt,
		&cart.AbandonedAt,
		&cart.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const itemsQuery = `
SELECT i.id::text, i.cart_id::text, i.product_id::text, p.name, i.quantity, i.unit_price_cents, i.created_at
FROM cart_items i
JOIN products p ON p.id = i.product_id
WHERE i.cart_id = $1
ORDER BY i.created_at ASC
`
	rows, err := r.db.Query(ctx, itemsQuery, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(
			&item.ID,
			&item.CartID,
			&item.ProductID,
			&item.ProductName,
			&item.Quantity,
			&item.UnitPriceCents,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &cart, nil
}

// inTx runs fn inside a transaction, committing on success and rolling back
// on error.
func (r *postgresRepo) inTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func (r *postgresRepo) AddItem(ctx context.Context, cartID string, product domain.Product, quantity int) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		// Lock the line row so two concurrent adds against the same product
		// serialize and neither increment is lost.
		var existing int
		err := tx.QueryRow(ctx, `
SELECT quantity
FROM cart_items
WHERE cart_id = $1 AND product_id = $2
FOR UPDATE
`, cartID, product.ID).Scan(&existing)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		if err == nil {
			newQty := existing + quantity
			if newQty <= 0 {
				return domain.ErrInvalidQuantity
			}
			if _, err := tx.Exec(ctx, `
UPDATE cart_items
SET quantity = $1
WHERE cart_id = $2 AND product_id = $3
`, newQty, cartID, product.ID); err != nil {
				return err
			}
		} else {
			if quantity <= 0 {
				return domain.ErrInvalidQuantity
			}
			if _, err := tx.Exec(ctx, `
INSERT INTO cart_items (cart_id, product_id, quantity, unit_price_cents)
VALUES ($1, $2, $3, $4)
`, cartID, product.ID, quantity, product.PriceCents); err != nil {
				return err
			}
		}

		return touchCart(ctx, tx, cartID)
	})
}

func (r *postgresRepo) RemoveItem(ctx context.Context, cartID, productID string) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, `
DELETE FROM cart_items
WHERE cart_id = $1 AND product_id = $2
`, cartID, productID)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrItemNotFound
		}

		return touchCart(ctx, tx, cartID)
	})
}

func (r *postgresRepo) MarkAbandoned(ctx context.Context, cartID string, now time.Time) error {
	// The abandoned_at IS NULL guard makes re-marking a no-op and keeps the
	// original timestamp.
	_, err := r.db.Exec(ctx, `
UPDATE carts
SET abandoned_at = $2
WHERE id = $1 AND abandoned_at IS NULL
`, cartID, now)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, cartID string) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
DELETE FROM cart_items
WHERE cart_id = $1
`, cartID); err != nil {
			return err
		}
		// A cart already purged by a concurrent run counts as deleted.
		_, err := tx.Exec(ctx, `
DELETE FROM carts
WHERE id = $1
`, cartID)
		return err
	})
}

func (r *postgresRepo) ListAbandonable(ctx context.Context, cutoff time.Time) ([]domain.Cart, error) {
	const q = `
SELECT id::text, last_interaction_at, abandoned_at, created_at
FROM carts
WHERE abandoned_at IS NULL AND last_interaction_at < $1
ORDER BY last_interaction_at ASC
`
	return r.listCarts(ctx, q, cutoff)
}

func (r *postgresRepo) ListPurgeable(ctx context.Context, cutoff time.Time) ([]domain.Cart, error) {
	const q = `
SELECT id::text, last_interaction_at, abandoned_at, created_at
FROM carts
WHERE abandoned_at IS NOT NULL AND abandoned_at < $1
ORDER BY abandoned_at ASC
`
	return r.listCarts(ctx, q, cutoff)
}

func (r *postgresRepo) listCarts(ctx context.Context, query string, args ...any) ([]domain.Cart, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Cart
	for rows.Next() {
		var cart domain.Cart
		if err := rows.Scan(
			&cart.ID,
			&cart.LastInteractionAt,
			&cart.AbandonedAt,
			&cart.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, cart)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func touchCart(ctx context.Context, tx pgx.Tx, cartID string) error {
	cmd, err := tx.Exec(ctx, `
UPDATE carts
SET last_interaction_at = now()
WHERE id = $1
`, cartID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
