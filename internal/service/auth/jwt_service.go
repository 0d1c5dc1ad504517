package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService defines operations for managing JWT authentication tokens.
// The calculation API is consumed by clinic systems (EMR integrations,
// biometer export bridges) that authenticate with bearer tokens issued
// out of band; the server itself only needs to verify them, but token
// generation is exposed for the issuing tool.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for the given client.
	// Returns the token string or an error if token generation fails.
	GenerateToken(ctx context.Context, clientID uuid.UUID) (string, error)

	// ValidateToken validates the provided access token string and extracts the claims.
	// Returns the claims identifying the calling client if the token is valid,
	// or an error if validation fails (expired, invalid signature, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the custom claims structure for the JWT tokens.
// It extends standard JWT registered claims with application-specific fields.
type Claims struct {
	// ClientID is the unique identifier of the clinic system the token was issued for.
	ClientID uuid.UUID `json:"cid,omitempty"`

	// TokenType indicates the purpose of the token. Only "access" tokens
	// are accepted by the API.
	TokenType string `json:"type,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
