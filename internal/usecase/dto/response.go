package dto

import "github.com/train-schedule-microservice/internal/domain"

// LoginResponse carries the signed token and the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// NestedObject is one assembled row tree: a root entity with its relations
// materialized as nested arrays.
type NestedObject = map[string]any
