package service

import (
	"context"

	"thermostat_panel/internal/models"
	"thermostat_panel/internal/repository"
)

type MonitoringService struct {
	stateRepo repository.StateRepo
}

func NewMonitoringService(stateRepo repository.StateRepo) *MonitoringService {
	return &MonitoringService{stateRepo: stateRepo}
}

// GetState returns a copy of the current panel state with UpdatedAt in UTC.
func (s *MonitoringService) GetState(ctx context.Context) (models.PanelState, error) {
	state, err := s.stateRepo.Load(ctx)
	if err != nil {
		return models.PanelState{}, err
	}
	state.UpdatedAt = normalizeToUTC(state.UpdatedAt)
	return state, nil
}
