package app

import (
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

// RejoinService issues and verifies signed tokens binding a user to a match,
// so a disconnected player can reclaim their seat in an in-progress round
// without the adapter trusting client-supplied ids.
type RejoinService struct {
	secret string
	issuer string
	ttl    time.Duration
}

// NewRejoinService constructs a RejoinService. A zero ttl defaults to one hour.
func NewRejoinService(secret, issuer string, ttl time.Duration) *RejoinService {
	if ttl == 0 {
		ttl = time.Hour
	}
	return &RejoinService{secret: secret, issuer: issuer, ttl: ttl}
}

// GenerateToken signs a rejoin token for the given user and match.
func (s *RejoinService) GenerateToken(userID, matchID string) (string, error) {
	if s == nil || s.secret == "" {
		return "", fmt.Errorf("rejoin service is not configured")
	}
	if userID == "" || matchID == "" {
		return "", fmt.Errorf("user and match are required")
	}

	claims := jwt.MapClaims{
		"iss": s.issuer,
		"sub": userID,
		"mid": matchID,
		"exp": time.Now().Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// VerifyToken parses a rejoin token and returns the bound user and match ids.
func (s *RejoinService) VerifyToken(tokenString string) (userID, matchID string, err error) {
	if s == nil || s.secret == "" {
		return "", "", fmt.Errorf("rejoin service is not configured")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return "", "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", fmt.Errorf("invalid rejoin token")
	}
	userID, _ = claims["sub"].(string)
	matchID, _ = claims["mid"].(string)
	if userID == "" || matchID == "" {
		return "", "", fmt.Errorf("rejoin token missing subject or match")
	}
	return userID, matchID, nil
}
