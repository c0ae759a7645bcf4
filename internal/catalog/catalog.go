// Package catalog holds the exercises that ship with the application.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/samueldk12/trainer/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed builtin.yaml
var builtinYAML []byte

type entry struct {
	ID                string  `yaml:"id"`
	Name              string  `yaml:"name"`
	Category          string  `yaml:"category"`
	Intensity         int     `yaml:"intensity"`
	CaloriesPerMinute float64 `yaml:"caloriesPerMinute"`
	Description       string  `yaml:"description"`
	Image             string  `yaml:"image"`
}

var (
	loadOnce sync.Once
	builtin  []domain.Exercise
	byID     map[string]int
)

func load() {
	exercises, err := Parse(builtinYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded builtin.yaml: %v", err))
	}
	builtin = exercises
	byID = make(map[string]int, len(exercises))
	for i, ex := range exercises {
		byID[ex.ID] = i
	}
}

// Parse decodes a catalog document. Every entry must carry a reserved
// built-in ID, a name, and a known category.
func Parse(data []byte) ([]domain.Exercise, error) {
	var entries []entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	seen := make(map[string]bool, len(entries))
	out := make([]domain.Exercise, 0, len(entries))
	for i, e := range entries {
		if !domain.IsBuiltinID(e.ID) {
			return nil, fmt.Errorf("entry %d: id %q lacks the %q prefix", i, e.ID, domain.BuiltinIDPrefix)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("entry %d: duplicate id %q", i, e.ID)
		}
		seen[e.ID] = true
		if e.Name == "" {
			return nil, fmt.Errorf("entry %q: name is required", e.ID)
		}
		category, ok := domain.ParseCategory(e.Category)
		if !ok {
			return nil, fmt.Errorf("entry %q: unknown category %q", e.ID, e.Category)
		}

		ex := domain.Exercise{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Category:    category,
			Image:       e.Image,
			Public:      true,
		}
		if e.CaloriesPerMinute > 0 {
			rate := e.CaloriesPerMinute
			ex.CaloriesPerMinute = &rate
		}
		if e.Intensity > 0 {
			intensity := e.Intensity
			ex.Intensity = &intensity
		}
		out = append(out, ex)
	}
	return out, nil
}

// Builtin returns a copy of the built-in exercises in catalog order.
func Builtin() []domain.Exercise {
	loadOnce.Do(load)
	out := make([]domain.Exercise, len(builtin))
	for i, ex := range builtin {
		out[i] = clone(ex)
	}
	return out
}

// Lookup finds a built-in exercise by ID.
func Lookup(id string) (domain.Exercise, bool) {
	loadOnce.Do(load)
	i, ok := byID[id]
	if !ok {
		return domain.Exercise{}, false
	}
	return clone(builtin[i]), true
}

func clone(ex domain.Exercise) domain.Exercise {
	if ex.CaloriesPerMinute != nil {
		v := *ex.CaloriesPerMinute
		ex.CaloriesPerMinute = &v
	}
	if ex.Intensity != nil {
		v := *ex.Intensity
		ex.Intensity = &v
	}
	return ex
}
