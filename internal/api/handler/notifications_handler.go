package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/careline/clinic-backend/internal/core/ports"
)

const defaultNotificationLimit = 10

// NotificationsHandler serves the admin dashboard feed of items that
// still need attention (pending appointments, new inquiries, feedback).
type NotificationsHandler struct {
	notifications ports.NotificationService
}

func NewNotificationsHandler(notifications ports.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications}
}

// Feed returns pending counts and the most recent unhandled items.
//
// @Summary      Admin notifications feed
// @Tags         notifications
// @Produce      json
// @Param        limit  query  int  false  "max items per type"
// @Success      200  {object}  domain.Notifications
// @Router       /admin/notifications [get]
func (h *NotificationsHandler) Feed(c echo.Context) error {
	limit := defaultNotificationLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 50 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be between 1 and 50")
		}
		limit = n
	}

	feed, err := h.notifications.AdminNotifications(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, feed)
}
