package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/threadz/threadz-backend/internal/app/model"
	"github.com/threadz/threadz-backend/internal/app/repository"
)

var ErrOrderNotFound = errors.New("order not found")

// milestoneSteps fixes the delivery timeline: titles, copy and the day
// offset of each step relative to order creation.
var milestoneSteps = []struct {
	title       string
	description string
	dayOffset   int
}{
	{"Order Confirmed", "Your order has been received and confirmed", 0},
	{"Processing", "Your items are being prepared for shipment", 0},
	{"Shipped", "Your order has been shipped and is on its way", 1},
	{"Out for Delivery", "Your package is out for delivery", 2},
	{"Delivered", "Your package has been delivered", 2},
}

// currentMilestone is where the timeline sits for any freshly placed
// order; earlier steps render completed, later ones pending.
const currentMilestone = 3

// TrackingService resolves an order ID to its delivery timeline.
type TrackingService interface {
	Track(orderID string) (*model.Order, []model.Milestone, error)
}

type trackingService struct {
	orderRepo repository.OrderRepository
	now       func() time.Time
}

func NewTrackingService(orderRepo repository.OrderRepository) TrackingService {
	return &trackingService{
		orderRepo: orderRepo,
		now:       time.Now,
	}
}

func (s *trackingService) Track(orderID string) (*model.Order, []model.Milestone, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, nil, ErrOrderNotFound
		}
		return nil, nil, err
	}

	milestones := make([]model.Milestone, 0, len(milestoneSteps))
	for i, step := range milestoneSteps {
		status := model.MilestonePending
		if i < currentMilestone {
			status = model.MilestoneCompleted
		} else if i == currentMilestone {
			status = model.MilestoneCurrent
		}

		milestones = append(milestones, model.Milestone{
			Title:       step.title,
			Description: step.description,
			Status:      status,
			DayOffset:   step.dayOffset,
			DateLabel:   s.dateLabel(order.CreatedAt, step.dayOffset),
		})
	}

	return order, milestones, nil
}

// dateLabel renders a day offset from the order date the way the
// storefront shows it: Today, Tomorrow, then "Jan 2".
func (s *trackingService) dateLabel(orderedAt time.Time, dayOffset int) string {
	target := orderedAt.AddDate(0, 0, dayOffset)
	today := s.now().Truncate(24 * time.Hour)
	targetDay := target.Truncate(24 * time.Hour)

	switch int(targetDay.Sub(today).Hours() / 24) {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return fmt.Sprintf("%s %d", target.Month().String()[:3], target.Day())
	}
}
