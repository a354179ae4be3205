package httpserver

import "cart-api/internal/domain"

// Cart snapshot returned by every cart operation. Monetary values are
// decimals derived from the stored cents.
type cartResponse struct {
	ID         string                `json:"id"`
	Products   []cartProductResponse `json:"products"`
	TotalPrice float64               `json:"total_price"`
}

type cartProductResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}

type productResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func toCartResponse(cart domain.Cart) cartResponse {
	products := make([]cartProductResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		products = append(products, cartProductResponse{
			ID:         item.ProductID,
			Name:       item.ProductName,
			Quantity:   item.Quantity,
			UnitPrice:  centsToPrice(item.UnitPriceCents),
			TotalPrice: centsToPrice(int64(item.Quantity) * item.UnitPriceCents),
		})
	}
	return cartResponse{
		ID:         cart.ID,
		Products:   products,
		TotalPrice: centsToPrice(cart.TotalCents()),
	}
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{ID: p.ID, Name: p.Name, Price: centsToPrice(p.PriceCents)}
}

func centsToPrice(cents int64) float64 {
	return float64(cents) / 100
}
