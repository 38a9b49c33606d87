package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/careline/clinic-backend/internal/core/domain"
	"github.com/careline/clinic-backend/internal/core/ports"
)

const defaultNotificationLimit = 5

// NotificationService builds the admin notification feed by aggregating
// unhandled appointments, inquiries, and pending feedback.
type NotificationService struct {
	appointments ports.AppointmentRepository
	inquiries    ports.InquiryRepository
	feedback     ports.FeedbackRepository
}

func NewNotificationService(appointments ports.AppointmentRepository, inquiries ports.InquiryRepository, feedback ports.FeedbackRepository) *NotificationService {
	return &NotificationService{appointments: appointments, inquiries: inquiries, feedback: feedback}
}

func (s *NotificationService) AdminNotifications(ctx context.Context, limitPerType int) (*domain.Notifications, error) {
	if limitPerType <= 0 {
		limitPerType = defaultNotificationLimit
	}

	appointmentsNew, err := s.appointments.CountByStatus(ctx, domain.AppointmentNew)
	if err != nil {
		return nil, err
	}
	inquiriesNew, err := s.inquiries.CountByStatus(ctx, domain.InquiryNew)
	if err != nil {
		return nil, err
	}
	feedbackPending, err := s.feedback.CountByStatus(ctx, domain.FeedbackPending)
	if err != nil {
		return nil, err
	}

	items := make([]domain.NotificationItem, 0, 3*limitPerType)

	recentAppointments, err := s.appointments.List(ctx, domain.AppointmentNew)
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(recentAppointments) && i < limitPerType; i++ {
		item := recentAppointments[i]
		sub := item.Phone
		if item.PreferredDate != "" {
			sub = fmt.Sprintf("%s • %s", sub, item.PreferredDate)
		}
		items = append(items, domain.NotificationItem{
			Type:      "appointment",
			Tab:       "appointments",
			ID:        item.ID,
			Title:     item.Name,
			Subtitle:  snippet(sub, 80),
			CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	recentInquiries, err := s.inquiries.List(ctx, domain.InquiryNew)
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(recentInquiries) && i < limitPerType; i++ {
		item := recentInquiries[i]
		items = append(items, domain.NotificationItem{
			Type:      "inquiry",
			Tab:       "inquiries",
			ID:        item.ID,
			Title:     item.Name,
			Subtitle:  snippet(item.Message, 80),
			CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	recentFeedback, err := s.feedback.List(ctx, domain.FeedbackPending)
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(recentFeedback) && i < limitPerType; i++ {
		item := recentFeedback[i]
		items = append(items, domain.NotificationItem{
			Type:      "feedback",
			Tab:       "feedback",
			ID:        item.ID,
			Title:     item.Name,
			Subtitle:  snippet(fmt.Sprintf("Rating: %d • %s", item.Rating, item.Message), 80),
			CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	sort.SliceStable(items, func(a, b int) bool {
		return items[a].CreatedAt > items[b].CreatedAt
	})

	return &domain.Notifications{
		Counts: domain.NotificationCounts{
			AppointmentsNew: appointmentsNew,
			InquiriesNew:    inquiriesNew,
			FeedbackPending: feedbackPending,
			TotalNew:        appointmentsNew + inquiriesNew + feedbackPending,
		},
		Items: items,
	}, nil
}

func snippet(text string, max int) string {
	r := []rune(strings.Join(strings.Fields(text), " "))
	if len(r) <= max {
		return string(r)
	}
	return string(r[:max-1]) + "…"
}
