package ports

import (
	"context"

	"github.com/careline/clinic-backend/internal/core/domain"
)

// NotificationService aggregates unhandled items for the admin feed.
type NotificationService interface {
	AdminNotifications(ctx context.Context, limitPerType int) (*domain.Notifications, error)
}
