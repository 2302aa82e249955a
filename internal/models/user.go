package models

import "github.com/golang-jwt/jwt/v5"

// UserRole represents the portal roles carried in identity provider tokens.
type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleCensor     UserRole = "CENSOR"
	RoleAccountant UserRole = "ACCOUNTANT"
	RoleSecretary  UserRole = "SECRETARY"
	RoleTeacher    UserRole = "TEACHER"
	RoleParent     UserRole = "PARENT"
	RoleStudent    UserRole = "STUDENT"
)

// JWTClaims is the access token payload issued by the identity provider.
// StudentID is only set for student accounts.
type JWTClaims struct {
	UserID    string   `json:"user_id"`
	Role      UserRole `json:"role"`
	Email     string   `json:"email"`
	StudentID string   `json:"student_id,omitempty"`
	jwt.RegisteredClaims
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
