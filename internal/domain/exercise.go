// internal/domain/exercise.go
package domain

import (
	"strings"
	"time"
)

// BuiltinIDPrefix marks catalog entries that ship with the application.
// They are never stored per user and can't be edited or deleted.
const BuiltinIDPrefix = "default-"

// Category classifies an exercise.
type Category string

const (
	CategoryCardio      Category = "cardio"
	CategoryStrength    Category = "strength"
	CategoryFlexibility Category = "flexibility"
	CategoryBalance     Category = "balance"
	CategoryAbdominal   Category = "abdominal"
)

// Categories lists every known category in display order.
var Categories = []Category{
	CategoryCardio,
	CategoryStrength,
	CategoryFlexibility,
	CategoryBalance,
	CategoryAbdominal,
}

// categoryLabels maps the labels used by the web client (and the seed data) to categories.
var categoryLabels = map[string]Category{
	"cardio":        CategoryCardio,
	"strength":      CategoryStrength,
	"força":         CategoryStrength,
	"forca":         CategoryStrength,
	"flexibility":   CategoryFlexibility,
	"flexibilidade": CategoryFlexibility,
	"alongamento":   CategoryFlexibility,
	"balance":       CategoryBalance,
	"equilíbrio":    CategoryBalance,
	"equilibrio":    CategoryBalance,
	"abdominal":     CategoryAbdominal,
}

// ParseCategory resolves a category from its canonical value or a localized label.
func ParseCategory(s string) (Category, bool) {
	c, ok := categoryLabels[strings.ToLower(strings.TrimSpace(s))]
	return c, ok
}

// CategoryFromLabel resolves an exact label, without case folding.
func CategoryFromLabel(s string) (Category, bool) {
	c, ok := categoryLabels[s]
	return c, ok
}

// Exercise represents a single exercise definition in the catalog.
// OwnerID is empty for built-in entries; Intensity ranges 1-5.
type Exercise struct {
	ID                string    `bson:"_id" json:"id"`
	OwnerID           string    `bson:"ownerId,omitempty" json:"ownerId,omitempty"`
	Name              string    `bson:"name" json:"name"`
	Description       string    `bson:"description,omitempty" json:"description,omitempty"`
	Category          Category  `bson:"category" json:"category"`
	Image             string    `bson:"image,omitempty" json:"image,omitempty"`
	CaloriesPerMinute *float64  `bson:"caloriesPerMinute,omitempty" json:"caloriesPerMinute,omitempty"`
	Intensity         *int      `bson:"intensity,omitempty" json:"intensity,omitempty"`
	Public            bool      `bson:"public" json:"public"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsBuiltin reports whether the exercise is a shared catalog entry.
func (e *Exercise) IsBuiltin() bool {
	return e.Public || IsBuiltinID(e.ID)
}

// IsBuiltinID reports whether id uses the reserved built-in prefix.
func IsBuiltinID(id string) bool {
	return strings.HasPrefix(id, BuiltinIDPrefix)
}

func (e Exercise) SearchName() string        { return e.Name }
func (e Exercise) SearchDescription() string { return e.Description }
func (e Exercise) SearchCategory() string    { return string(e.Category) }
