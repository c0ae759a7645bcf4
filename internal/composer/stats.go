package composer

import (
	"math"

	"github.com/samueldk12/trainer/internal/domain"
)

// CategoryCount is the number of exercises of one category.
type CategoryCount struct {
	Category domain.Category `json:"category"`
	Count    int             `json:"count"`
}

// Summary is the overview shown while composing a workout.
type Summary struct {
	TotalExercises    int             `json:"totalExercises"`
	TotalSeconds      int             `json:"totalSeconds"`
	EstimatedCalories int             `json:"estimatedCalories"`
	ByCategory        []CategoryCount `json:"byCategory"`
}

// Stats summarizes exercises. Only timed exercises contribute duration and calories.
func Stats(exercises []domain.WorkoutExercise) Summary {
	s := Summary{TotalExercises: len(exercises)}
	counts := make(map[domain.Category]int)
	var calories float64
	for _, ex := range exercises {
		d := ex.Execution.DurationSeconds()
		s.TotalSeconds += d
		calories += float64(d) / 60 * ex.CaloriesRate()
		counts[ex.Category]++
	}
	s.EstimatedCalories = int(math.Round(calories))
	for _, c := range domain.Categories {
		s.ByCategory = append(s.ByCategory, CategoryCount{Category: c, Count: counts[c]})
	}
	return s
}
