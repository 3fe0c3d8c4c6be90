package service

import (
	"context"
	"fmt"
	"time"

	"fitcoach/internal/logger"
	"fitcoach/internal/store"
	"fitcoach/internal/utils"
	"fitcoach/models"
)

// statusLimit caps how many liveness records the list endpoint returns.
const statusLimit = 1000

// statusService records and lists client liveness checks.
type statusService struct {
	store  store.Store
	now    func() time.Time
	logger *logger.Logger
}

// NewStatusService constructs a [StatusService] over the given store.
func NewStatusService(st store.Store, log *logger.Logger) StatusService {
	return &statusService{
		store:  st,
		now:    time.Now,
		logger: log,
	}
}

func (s *statusService) Create(ctx context.Context, req models.StatusCheckCreate) (models.StatusCheck, error) {
	log := logger.FromContext(ctx)

	check := models.StatusCheck{
		ID:         utils.UUIDGenerator(),
		ClientName: req.ClientName,
		Timestamp:  s.now().UTC(),
	}

	if err := s.store.InsertOne(ctx, check.TableName(), check.ToMap()); err != nil {
		log.Err(err).Str("client_name", req.ClientName).Msg("status check persistence failed")
		return models.StatusCheck{}, fmt.Errorf("status check persistence failed: %w", err)
	}

	return check, nil
}

func (s *statusService) List(ctx context.Context) ([]models.StatusCheck, error) {
	log := logger.FromContext(ctx)

	records, err := s.store.FindAll(ctx, models.StatusCheck{}.TableName(),
		store.Filter{}, store.WithLimit(statusLimit))
	if err != nil {
		log.Err(err).Msg("status check lookup failed")
		return nil, fmt.Errorf("status check lookup failed: %w", err)
	}

	checks := make([]models.StatusCheck, 0, len(records))
	for _, record := range records {
		checks = append(checks, models.StatusCheckFromMap(record))
	}

	return checks, nil
}
