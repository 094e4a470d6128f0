package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"time"

	"sanjudas/config"

	"github.com/golang-jwt/jwt"
)

// secretKey resolves the signing secret: loaded config first, then the raw
// environment, then a default (not recommended in production).
func secretKey() []byte {
	if s := config.AppConfig.JWTSecret; s != "" {
		return []byte(s)
	}
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("SANJUDAS")
}

// Roles the hospital backend embeds in its tokens. Anything else is a patient.
const (
	RolePatient      = "PACIENTE"
	RoleDoctor       = "DOCTOR"
	RoleReceptionist = "RECEPCIONISTA"
)

// TokenClaims is the subset of the backend's JWT this service cares about.
type TokenClaims struct {
	PatientID string
	Email     string
	Name      string
	Role      string
}

// GenerateToken creates a signed JWT with the given subject and role claims.
// Used by tests and local tooling; production tokens come from the hospital backend.
func GenerateToken(subject, email string, roles []string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   subject,
		"email": email,
		"roles": roles,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractClaimsFromToken extracts the patient identity and role from a valid
// JWT token string. Role precedence mirrors the backend: doctor wins over
// receptionist, and everything else defaults to patient.
func ExtractClaimsFromToken(tokenString string) (*TokenClaims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}

	out := &TokenClaims{PatientID: sub, Role: RolePatient}
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		out.Name = name
	}
	if rawRoles, ok := claims["roles"].([]interface{}); ok {
		for _, r := range rawRoles {
			switch r {
			case "ROLE_DOCTOR":
				out.Role = RoleDoctor
			case "ROLE_RECEPCIONISTA":
				if out.Role != RoleDoctor {
					out.Role = RoleReceptionist
				}
			}
		}
	}
	return out, nil
}
