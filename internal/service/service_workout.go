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

// workoutLimit caps how many plans are returned per user.
const workoutLimit = 100

// workoutService stores and lists workout plans.
type workoutService struct {
	store  store.Store
	now    func() time.Time
	logger *logger.Logger
}

// NewWorkoutService constructs a [WorkoutService] over the given store.
func NewWorkoutService(st store.Store, log *logger.Logger) WorkoutService {
	return &workoutService{
		store:  st,
		now:    time.Now,
		logger: log,
	}
}

// Save persists a workout plan. Identifier and creation time are assigned
// server-side when absent so clients may submit either full or minimal
// plans.
func (w *workoutService) Save(ctx context.Context, plan models.WorkoutPlan) (models.WorkoutPlan, error) {
	log := logger.FromContext(ctx)

	if plan.ID == "" {
		plan.ID = utils.UUIDGenerator()
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = w.now().UTC()
	}
	if plan.Exercises == nil {
		plan.Exercises = []any{}
	}

	if err := w.store.InsertOne(ctx, plan.TableName(), plan.ToMap()); err != nil {
		log.Err(err).Str("user_id", plan.UserID).Msg("workout persistence failed")
		return models.WorkoutPlan{}, fmt.Errorf("workout persistence failed: %w", err)
	}

	return plan, nil
}

// ListByUser returns the user's plans newest first, capped at workoutLimit.
func (w *workoutService) ListByUser(ctx context.Context, userID string) ([]models.WorkoutPlan, error) {
	log := logger.FromContext(ctx)

	records, err := w.store.FindAll(ctx, models.WorkoutPlan{}.TableName(),
		store.Filter{"user_id": userID},
		store.WithSort("created_at", true), store.WithLimit(workoutLimit))
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("workout lookup failed")
		return nil, fmt.Errorf("workout lookup failed: %w", err)
	}

	plans := make([]models.WorkoutPlan, 0, len(records))
	for _, record := range records {
		plans = append(plans, models.WorkoutPlanFromMap(record))
	}

	return plans, nil
}
