package models

import "time"

// WorkoutPlan is a stored workout, either user-entered or produced by the
// AI coach. Exercises is an unstructured list preserved as-is.
type WorkoutPlan struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Category    string    `json:"category"`
	Exercises   []any     `json:"exercises"`
	Duration    string    `json:"duration"`
	Difficulty  string    `json:"difficulty"`
	CreatedByAI bool      `json:"created_by_ai"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the name of the collection/table
// associated with the WorkoutPlan model.
func (w WorkoutPlan) TableName() string {
	return "workouts"
}

// ToMap converts the plan to the generic record form used by the storage
// layer.
func (w WorkoutPlan) ToMap() map[string]any {
	return map[string]any{
		"id":            w.ID,
		"user_id":       w.UserID,
		"title":         w.Title,
		"category":      w.Category,
		"exercises":     w.Exercises,
		"duration":      w.Duration,
		"difficulty":    w.Difficulty,
		"created_by_ai": w.CreatedByAI,
		"created_at":    w.CreatedAt,
	}
}

// WorkoutPlanFromMap rebuilds a WorkoutPlan from a storage record.
func WorkoutPlanFromMap(m map[string]any) WorkoutPlan {
	return WorkoutPlan{
		ID:          stringField(m, "id"),
		UserID:      stringField(m, "user_id"),
		Title:       stringField(m, "title"),
		Category:    stringField(m, "category"),
		Exercises:   listField(m, "exercises"),
		Duration:    stringField(m, "duration"),
		Difficulty:  stringField(m, "difficulty"),
		CreatedByAI: boolField(m, "created_by_ai"),
		CreatedAt:   timeField(m, "created_at"),
	}
}
