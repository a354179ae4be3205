package cart

import (
	"context"
	"errors"

	"cart-api/internal/domain"
	cartrepo "cart-api/internal/repository/cart"
)

// Service orchestrates catalog lookups, cart mutations and persistence for
// the client-facing cart operations. It is stateless; the session cart id is
// an explicit token passed in by the caller.
type Service struct {
	store   cartStore
	catalog productCatalog
}

type cartStore interface {
	Create(ctx context.Context) (*domain.Cart, error)
	GetByID(ctx context.Context, id string) (*domain.Cart, error)
	AddItem(ctx context.Context, cartID string, product domain.Product, quantity int) error
	RemoveItem(ctx context.Context, cartID, productID string) error
}

type productCatalog interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(store cartrepo.Repository, catalog productCatalog) *Service {
	return &Service{store: store, catalog: catalog}
}

// GetOrCreate resolves sessionCartID to an existing cart, or creates a fresh
// one when the token is empty or stale. The second return value tells the
// caller to bind the new cart id to the session.
func (s *Service) GetOrCreate(ctx context.Context, sessionCartID string) (*domain.Cart, bool, error) {
	if sessionCartID != "" {
		cart, err := s.store.GetByID(ctx, sessionCartID)
		if err == nil {
			return cart, false, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, false, err
		}
	}

	cart, err := s.store.Create(ctx)
	if err != nil {
		return nil, false, err
	}
	return cart, true, nil
}

// AddItem validates quantity before touching the catalog or the store, looks
// up the product's current unit price and delegates to the store. Returns the
// re-fetched cart.
func (s *Service) AddItem(ctx context.Context, cartID, productID string, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	product, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	if err := s.store.AddItem(ctx, cartID, *product, quantity); err != nil {
		return nil, err
	}
	return s.store.GetByID(ctx, cartID)
}

// RemoveItem deletes the product's line from the cart. A product id unknown
// to the catalog and a product absent from the cart surface identically as
// domain.ErrItemNotFound.
func (s *Service) RemoveItem(ctx context.Context, cartID, productID string) (*domain.Cart, error) {
	if _, err := s.catalog.GetByID(ctx, productID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}

	if err := s.store.RemoveItem(ctx, cartID, productID); err != nil {
		return nil, err
	}
	return s.store.GetByID(ctx, cartID)
}
