// Package services maps admin intents onto backend endpoints. Each service
// is a thin wrapper: no caching, no retries, no logging.
package services

import (
	"context"
	"fmt"
	"net/http"

	"okuyorum-admin/api"
	"okuyorum-admin/models"
)

// DonationService wraps /api/donations.
type DonationService struct {
	client *api.Client
}

func NewDonationService(client *api.Client) *DonationService {
	return &DonationService{client: client}
}

type statusUpdate struct {
	Status     models.DonationStatus `json:"status"`
	StatusNote string                `json:"statusNote,omitempty"`
}

type handlerUpdate struct {
	HandlerName string `json:"handlerName"`
}

func donationPath(id int64) string { return fmt.Sprintf("/api/donations/%d", id) }

// GetAllDonations returns every donation visible to an admin.
func (s *DonationService) GetAllDonations(ctx context.Context) (*api.Response[[]models.Donation], error) {
	return api.Get[[]models.Donation](ctx, s.client, "/api/donations")
}

func (s *DonationService) GetDonationByID(ctx context.Context, id int64) (*api.Response[models.Donation], error) {
	return api.Get[models.Donation](ctx, s.client, donationPath(id))
}

// CreateDonation posts a new donation; the response carries the assigned id.
func (s *DonationService) CreateDonation(ctx context.Context, d models.Donation) (*api.Response[models.Donation], error) {
	d.ID = nil
	return api.Do[models.Donation](ctx, s.client, http.MethodPost, "/api/donations", d)
}

func (s *DonationService) UpdateDonation(ctx context.Context, id int64, d models.Donation) (*api.Response[models.Donation], error) {
	return api.Do[models.Donation](ctx, s.client, http.MethodPut, donationPath(id), d)
}

// UpdateDonationStatus changes the status. The backend may touch other fields
// as a side effect, so callers re-fetch afterwards.
func (s *DonationService) UpdateDonationStatus(ctx context.Context, id int64, status models.DonationStatus, note string) (*api.Response[models.Donation], error) {
	body := statusUpdate{Status: status, StatusNote: note}
	return api.Do[models.Donation](ctx, s.client, http.MethodPatch, donationPath(id)+"/status", body)
}

func (s *DonationService) UpdateTrackingInfo(ctx context.Context, id int64, info models.TrackingInfo) (*api.Response[models.Donation], error) {
	return api.Do[models.Donation](ctx, s.client, http.MethodPatch, donationPath(id)+"/tracking", info)
}

func (s *DonationService) UpdateHandlerName(ctx context.Context, id int64, name string) (*api.Response[models.Donation], error) {
	return api.Do[models.Donation](ctx, s.client, http.MethodPatch, donationPath(id)+"/handler", handlerUpdate{HandlerName: name})
}

func (s *DonationService) DeleteDonation(ctx context.Context, id int64) error {
	_, err := api.Do[struct{}](ctx, s.client, http.MethodDelete, donationPath(id), nil)
	return err
}
