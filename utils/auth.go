package utils

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

// JWT Secret Key
var JwtKey = []byte("your_secret_key") // This will be loaded from .env

// Roles carried in tokens
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
	RoleDriver   = "driver"
)

// Claims represents the JWT claims. DriverID is set only on driver
// tokens.
type Claims struct {
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
	DriverID string `json:"driver_id,omitempty"`
	Name     string `json:"name,omitempty"`
	jwt.StandardClaims
}

// GenerateJWT generates a token for a customer or admin account
func GenerateJWT(email, role string) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &Claims{
		Email: email,
		Role:  role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JwtKey)
}

// GenerateDriverJWT generates a token carrying the driver's identity
func GenerateDriverJWT(driverID, name string) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &Claims{
		Role:     RoleDriver,
		DriverID: driverID,
		Name:     name,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JwtKey)
}
