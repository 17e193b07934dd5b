package services

import (
	"errors"
	"fmt"

	"greenleaf/internal/models"
	"greenleaf/internal/repositories"
)

// CartService handles the server-side cart mirror. The browser keeps its
// own local cart; this service owns the copy checkout reads.
type CartService struct {
	carts    repositories.CartRepository
	products repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(carts repositories.CartRepository, products repositories.ProductRepository) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
	}
}

// CartView is a user's cart joined with current product data plus derived
// totals.
type CartView struct {
	Items     []models.CartLineView `json:"items"`
	Total     float64               `json:"total"`
	ItemCount int                   `json:"item_count"`
}

// GetCart returns the user's cart lines with current product data and
// derived totals. Lines whose product has disappeared are skipped.
func (s *CartService) GetCart(userID string) (*CartView, error) {
	lines, err := s.carts.GetLines(userID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Items: make([]models.CartLineView, 0, len(lines))}
	for _, line := range lines {
		product, err := s.products.GetByID(line.ProductID)
		if errors.Is(err, repositories.ErrNotFound) {
			// The product was deleted after it was carted.
			continue
		}
		if err != nil {
			return nil, err
		}
		item := models.CartLineView{
			ProductID:     product.ID,
			Slug:          product.Slug,
			Name:          product.Name,
			Price:         product.Price,
			ImageURL:      product.ImageURL,
			Category:      product.Category,
			StockQuantity: product.StockQuantity,
			Quantity:      line.Quantity,
			LineTotal:     product.Price * float64(line.Quantity),
		}
		view.Items = append(view.Items, item)
		view.Total += item.LineTotal
		view.ItemCount += item.Quantity
	}
	return view, nil
}

// SetQuantity upserts one cart line. The quantity is clamped to the
// product's current stock; a non-positive quantity is rejected (the client
// removes lines via DELETE). Only active products can be carted.
func (s *CartService) SetQuantity(userID, productID string, quantity int) (*models.CartLine, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if !product.Visible() {
		return nil, fmt.Errorf("product %s: %w", productID, repositories.ErrNotFound)
	}
	if quantity > product.StockQuantity {
		quantity = product.StockQuantity
	}
	if quantity < 1 {
		// Product is sold out; nothing to cart.
		return nil, fmt.Errorf("product %s: %w", product.Name, repositories.ErrOutOfStock)
	}

	line := &models.CartLine{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.carts.Upsert(line); err != nil {
		return nil, err
	}
	return line, nil
}

// RemoveLine deletes one product line from the user's cart.
func (s *CartService) RemoveLine(userID, productID string) error {
	return s.carts.Remove(userID, productID)
}

// ClearCart empties the user's cart.
func (s *CartService) ClearCart(userID string) error {
	return s.carts.Clear(userID)
}
