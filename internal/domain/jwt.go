package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Staff roles
const (
	RoleAdmin = "admin"
	RoleDesk  = "desk"
)

// StaffClaims represents custom JWT claims for front-desk staff auth
type StaffClaims struct {
	Username string   `json:"username"`
	Name     string   `json:"name,omitempty"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}
