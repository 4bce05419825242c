package domain

import "time"

// User represents a registered user of the application in the domain.
type User struct {
	UserID        string    `json:"userID"` // Primary Key (UUID)
	Username      string    `json:"username"`
	PasswordHash  string    `json:"-"` // Never serialized
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// RoleUser is the default role assigned on signup. Nobody becomes an admin
// through the public registration endpoint.
const RoleUser = "USER"
