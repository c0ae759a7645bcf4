// Package composer assembles the ordered exercise list of a workout
// from catalog picks and from copies of other workouts' exercises.
package composer

import (
	"github.com/samueldk12/trainer/internal/domain"

	"github.com/google/uuid"
)

// Choice is an exercise picked by the user, either from the catalog
// (SourceExerciseID set) or copied from another workout.
type Choice struct {
	SourceExerciseID  string
	Name              string
	Description       string
	Category          domain.Category
	Image             string
	CaloriesPerMinute *float64
	Execution         domain.ExecutionSpec
}

// ChoiceFromExercise builds a Choice from a catalog entry.
func ChoiceFromExercise(ex domain.Exercise, execution domain.ExecutionSpec) Choice {
	return Choice{
		SourceExerciseID:  ex.ID,
		Name:              ex.Name,
		Description:       ex.Description,
		Category:          ex.Category,
		Image:             ex.Image,
		CaloriesPerMinute: ex.CaloriesPerMinute,
		Execution:         execution,
	}
}

// ChoiceFromInstance builds a Choice copying an exercise of another workout.
func ChoiceFromInstance(in domain.WorkoutExercise) Choice {
	c := Choice{
		Name:              in.Name,
		Description:       in.Description,
		Category:          in.Category,
		Image:             in.Image,
		CaloriesPerMinute: in.CaloriesPerMinute,
		Execution:         in.Execution,
	}
	if in.SourceExerciseID != nil {
		c.SourceExerciseID = *in.SourceExerciseID
	}
	return c
}

// Composer merges choices into a workout's exercises.
type Composer struct {
	NewID func() string
}

// New creates a Composer that uses random UUIDs for new instances.
func New() *Composer {
	return &Composer{NewID: uuid.NewString}
}

// AppendExercises returns existing followed by one new instance per choice.
// New orders continue after the highest existing order, or start at 0.
// existing is copied, never modified.
func (c *Composer) AppendExercises(existing []domain.WorkoutExercise, chosen []Choice) []domain.WorkoutExercise {
	out := make([]domain.WorkoutExercise, 0, len(existing)+len(chosen))
	out = append(out, existing...)
	return append(out, c.materialize(chosen, NextOrder(existing))...)
}

// NewInstances materializes choices with orders starting right after existing.
func (c *Composer) NewInstances(existing []domain.WorkoutExercise, chosen []Choice) []domain.WorkoutExercise {
	return c.materialize(chosen, NextOrder(existing))
}

// ReplaceAll materializes choices as a brand new list ordered 0..n-1.
// Previous instance identities are not carried over.
func (c *Composer) ReplaceAll(chosen []Choice) []domain.WorkoutExercise {
	return c.materialize(chosen, 0)
}

// NextOrder is the order the next appended instance gets.
func NextOrder(existing []domain.WorkoutExercise) int {
	if len(existing) == 0 {
		return 0
	}
	highest := existing[0].Order
	for _, ex := range existing[1:] {
		if ex.Order > highest {
			highest = ex.Order
		}
	}
	return highest + 1
}

func (c *Composer) materialize(chosen []Choice, base int) []domain.WorkoutExercise {
	out := make([]domain.WorkoutExercise, 0, len(chosen))
	for i, ch := range chosen {
		inst := domain.WorkoutExercise{
			ID:                c.NewID(),
			Name:              ch.Name,
			Description:       ch.Description,
			Category:          ch.Category,
			Image:             ch.Image,
			CaloriesPerMinute: ch.CaloriesPerMinute,
			Execution:         ch.Execution,
			Order:             base + i,
		}
		if ch.SourceExerciseID != "" {
			src := ch.SourceExerciseID
			inst.SourceExerciseID = &src
		}
		out = append(out, inst)
	}
	return out
}

// Candidates returns the catalog entries that may still be offered for a
// workout: those not already referenced by one of its current exercises.
func Candidates(catalog []domain.Exercise, current []domain.WorkoutExercise) []domain.Exercise {
	used := make(map[string]struct{}, len(current))
	for _, ex := range current {
		if ex.SourceExerciseID != nil {
			used[*ex.SourceExerciseID] = struct{}{}
		}
	}
	out := make([]domain.Exercise, 0, len(catalog))
	for _, ex := range catalog {
		if _, taken := used[ex.ID]; taken {
			continue
		}
		out = append(out, ex)
	}
	return out
}
