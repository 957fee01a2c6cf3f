package models

import "github.com/golang-jwt/jwt/v5"

// RoleAdmin is the only privileged role.
const RoleAdmin = "admin"

// AdminClaims is the JWT payload issued after the admin gate.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
