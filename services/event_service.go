package services

import (
	"context"
	"fmt"
	"net/http"

	"okuyorum-admin/api"
	"okuyorum-admin/models"
)

// KiraathaneEventService wraps /api/kiraathane-events.
type KiraathaneEventService struct {
	client *api.Client
}

func NewKiraathaneEventService(client *api.Client) *KiraathaneEventService {
	return &KiraathaneEventService{client: client}
}

func (s *KiraathaneEventService) GetAllEvents(ctx context.Context) (*api.Response[[]models.KiraathaneEvent], error) {
	return api.Get[[]models.KiraathaneEvent](ctx, s.client, "/api/kiraathane-events")
}

func (s *KiraathaneEventService) GetEventByID(ctx context.Context, id int64) (*api.Response[models.KiraathaneEvent], error) {
	return api.Get[models.KiraathaneEvent](ctx, s.client, fmt.Sprintf("/api/kiraathane-events/%d", id))
}

// KiraathaneService wraps /api/kiraathanes.
type KiraathaneService struct {
	client *api.Client
}

func NewKiraathaneService(client *api.Client) *KiraathaneService {
	return &KiraathaneService{client: client}
}

func (s *KiraathaneService) GetAllKiraathanes(ctx context.Context) (*api.Response[[]models.Kiraathane], error) {
	return api.Get[[]models.Kiraathane](ctx, s.client, "/api/kiraathanes")
}

// RegistrationService wraps /api/event-registrations.
type RegistrationService struct {
	client *api.Client
}

func NewRegistrationService(client *api.Client) *RegistrationService {
	return &RegistrationService{client: client}
}

type attendanceUpdate struct {
	AttendanceStatus models.AttendanceStatus `json:"attendanceStatus"`
	AttendanceNotes  string                  `json:"attendanceNotes,omitempty"`
}

func (s *RegistrationService) GetEventRegistrations(ctx context.Context, eventID int64) (*api.Response[[]models.EventRegistration], error) {
	return api.Get[[]models.EventRegistration](ctx, s.client, fmt.Sprintf("/api/event-registrations/event/%d", eventID))
}

func (s *RegistrationService) GetRegistrationByID(ctx context.Context, id int64) (*api.Response[models.EventRegistration], error) {
	return api.Get[models.EventRegistration](ctx, s.client, fmt.Sprintf("/api/event-registrations/%d", id))
}

func (s *RegistrationService) UpdateAttendanceStatus(ctx context.Context, id int64, status models.AttendanceStatus, notes string) (*api.Response[models.EventRegistration], error) {
	body := attendanceUpdate{AttendanceStatus: status, AttendanceNotes: notes}
	return api.Do[models.EventRegistration](ctx, s.client, http.MethodPatch, fmt.Sprintf("/api/event-registrations/%d/status", id), body)
}
