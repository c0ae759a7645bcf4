package domain

import "time"

// SessionRecord is a completed (or partially completed) run of a workout.
// CompletedCategories keeps the categories of the completed instances so
// progress stats survive later edits of the workout.
type SessionRecord struct {
	ID                   string     `bson:"_id" json:"id"`
	OwnerID              string     `bson:"ownerId" json:"ownerId"`
	WorkoutID            string     `bson:"workoutId" json:"workoutId"`
	CompletedExerciseIDs []string   `bson:"completedExerciseIds" json:"completedExerciseIds"`
	CompletedCategories  []Category `bson:"completedCategories,omitempty" json:"completedCategories,omitempty"`
	TotalSeconds         int        `bson:"totalSeconds" json:"totalSeconds"`
	TotalCalories        int        `bson:"totalCalories" json:"totalCalories"`
	Completed            bool       `bson:"completed" json:"completed"`
	PerformedAt          time.Time  `bson:"performedAt" json:"performedAt"`
	CreatedAt            time.Time  `bson:"createdAt" json:"createdAt"`
}
