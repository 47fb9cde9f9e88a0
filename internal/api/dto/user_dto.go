package dto

import "time"

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	SessionID string    `json:"session_id"`
}

// UserResponse renders one account.
type UserResponse struct {
	ID                 string   `json:"id"`
	Email              string   `json:"email"`
	Role               string   `json:"role"`
	FirstName          string   `json:"first_name"`
	LastName           string   `json:"last_name"`
	AssignedProperties []string `json:"assigned_properties"`
	RevenueGenerated   string   `json:"revenue_generated"`
}

// CreateUserRequest registers a new account.
type CreateUserRequest struct {
	Email              string   `json:"email"`
	Password           string   `json:"password"`
	Role               string   `json:"role"`
	FirstName          string   `json:"first_name"`
	LastName           string   `json:"last_name"`
	AssignedProperties []string `json:"assigned_properties"`
}

// AssignPropertiesRequest replaces a manager's assignments.
type AssignPropertiesRequest struct {
	PropertyIDs []string `json:"property_ids"`
}
