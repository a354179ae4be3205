package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Name       string
	PriceCents int64
}

// Apply inserts basic catalog data for manual testing. It is idempotent via
// ON CONFLICT on the product name.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{Name: "Demo T-Shirt", PriceCents: 1999},
		{Name: "Demo Mug", PriceCents: 1299},
		{Name: "Demo Sticker Pack", PriceCents: 499},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}
	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (name, price_cents)
VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET price_cents = EXCLUDED.price_cents
`
	_, err := pool.Exec(ctx, q, p.Name, p.PriceCents)
	return err
}
