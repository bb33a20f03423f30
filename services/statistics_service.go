package services

import (
	"context"

	"okuyorum-admin/api"
	"okuyorum-admin/models"
)

// StatisticsService wraps /api/statistics.
type StatisticsService struct {
	client *api.Client
}

func NewStatisticsService(client *api.Client) *StatisticsService {
	return &StatisticsService{client: client}
}

func (s *StatisticsService) Summary(ctx context.Context) (*api.Response[models.Statistics], error) {
	return api.Get[models.Statistics](ctx, s.client, "/api/statistics/summary")
}
