package product

import (
	"context"
	"testing"
	"time"

	"cart-api/internal/domain"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	repo := NewPostgres(mock)
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id::text, name, price_cents, created_at\nFROM products\nWHERE id = \$1`).
		WithArgs("prod-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "price_cents", "created_at"}).
			AddRow("prod-1", "Demo Mug", int64(1299), now))

	p, err := repo.GetByID(context.Background(), "prod-1")
	require.NoError(t, err)
	assert.Equal(t, "Demo Mug", p.Name)
	assert.Equal(t, int64(1299), p.PriceCents)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	repo := NewPostgres(mock)

	mock.ExpectQuery(`FROM products\nWHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	repo := NewPostgres(mock)
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM products\nORDER BY created_at DESC`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "price_cents", "created_at"}).
			AddRow("prod-1", "Demo Mug", int64(1299), now).
			AddRow("prod-2", "Demo T-Shirt", int64(1999), now))

	products, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "prod-2", products[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
