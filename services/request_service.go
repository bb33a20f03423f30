package services

import (
	"context"
	"fmt"
	"net/http"

	"okuyorum-admin/api"
	"okuyorum-admin/models"
)

// RequestService wraps /api/requests.
type RequestService struct {
	client *api.Client
}

func NewRequestService(client *api.Client) *RequestService {
	return &RequestService{client: client}
}

func requestPath(id int64) string { return fmt.Sprintf("/api/requests/%d", id) }

func (s *RequestService) GetAllRequests(ctx context.Context) (*api.Response[[]models.DonationRequest], error) {
	return api.Get[[]models.DonationRequest](ctx, s.client, "/api/requests")
}

func (s *RequestService) GetRequestByID(ctx context.Context, id int64) (*api.Response[models.DonationRequest], error) {
	return api.Get[models.DonationRequest](ctx, s.client, requestPath(id))
}

func (s *RequestService) UpdateRequestStatus(ctx context.Context, id int64, status models.RequestStatus) (*api.Response[models.DonationRequest], error) {
	body := struct {
		Status models.RequestStatus `json:"status"`
	}{status}
	return api.Do[models.DonationRequest](ctx, s.client, http.MethodPatch, requestPath(id)+"/status", body)
}

func (s *RequestService) DeleteRequest(ctx context.Context, id int64) error {
	_, err := api.Do[struct{}](ctx, s.client, http.MethodDelete, requestPath(id), nil)
	return err
}
