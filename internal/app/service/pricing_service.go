package service

import (
	"github.com/threadz/threadz-backend/config"
)

// Up to this many colors beyond the first are billed; anything past
// that prints for free.
const maxBillableExtraColors = 4

// PricingService maps a design's color list to a price. Pure and
// deterministic: the same color list always yields the same price.
type PricingService interface {
	Price(colors []string) int
}

type pricingService struct {
	basePrice      int
	colorIncrement int
	priceCap       int
}

func NewPricingService(cfg config.PricingConfig) PricingService {
	return &pricingService{
		basePrice:      cfg.BasePrice,
		colorIncrement: cfg.ColorIncrement,
		priceCap:       cfg.PriceCap,
	}
}

// Price returns the base price plus a flat increment per billable extra
// color, bounded by the cap. An empty list prices as a single default
// color, so price is monotonically non-decreasing in color count.
func (s *pricingService) Price(colors []string) int {
	count := len(colors)
	if count < 1 {
		count = 1
	}

	extras := count - 1
	if extras > maxBillableExtraColors {
		extras = maxBillableExtraColors
	}

	price := s.basePrice + extras*s.colorIncrement
	if price > s.priceCap {
		price = s.priceCap
	}
	return price
}
