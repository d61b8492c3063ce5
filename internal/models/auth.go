package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for authenticating an admin.
type LoginRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Password string `json:"password" validate:"required"`
	IP       string `json:"-"`
}

// LoginResponse returns the issued token and the signed-in account.
type LoginResponse struct {
	User  AccountView `json:"user"`
	Token string      `json:"token"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Nama   string `json:"nama"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}
