package service

import (
	"errors"

	"github.com/threadz/threadz-backend/internal/app/model"
)

var ErrProductNotFound = errors.New("product not found")

// CatalogService serves the fixed product catalog. The catalog is
// static for the lifetime of the process; there is no admin surface.
type CatalogService interface {
	ListProducts() []model.Product
	GetProduct(id string) (*model.Product, error)
}

type catalogService struct {
	products []model.Product
	byID     map[string]model.Product
}

// defaultCatalog mirrors the storefront's printed-apparel lineup.
var defaultCatalog = []model.Product{
	{ID: "tee-black", Name: "Classic Tee (Black)", Price: 899, Image: "/assets/products/tee-black.png"},
	{ID: "tee-white", Name: "Classic Tee (White)", Price: 999, Image: "/assets/products/tee-white.png"},
	{ID: "hoodie-grey", Name: "Hoodie (Grey)", Price: 1499, Image: "/assets/products/hoodie-grey.png"},
	{ID: "cap-navy", Name: "Snapback Cap (Navy)", Price: 699, Image: "/assets/products/cap-navy.png"},
}

func NewCatalogService(products ...[]model.Product) CatalogService {
	catalog := defaultCatalog
	if len(products) > 0 && products[0] != nil {
		catalog = products[0]
	}

	byID := make(map[string]model.Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}
	return &catalogService{
		products: catalog,
		byID:     byID,
	}
}

func (s *catalogService) ListProducts() []model.Product {
	copied := make([]model.Product, len(s.products))
	copy(copied, s.products)
	return copied
}

func (s *catalogService) GetProduct(id string) (*model.Product, error) {
	product, ok := s.byID[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &product, nil
}
