package domain

import (
	"time"
)

// User owns workouts and exercises.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`              // Should be unique
	PasswordHash string    `bson:"passwordHash,omitempty" json:"-"` // Empty for the provisional user
	Provisional  bool      `bson:"provisional" json:"provisional"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Identity is the caller on whose behalf an operation runs.
type Identity struct {
	UserID string `json:"userId"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
}

// IdentityOf builds the Identity of a user.
func IdentityOf(u *User) Identity {
	return Identity{UserID: u.ID, Name: u.Name, Email: u.Email}
}
