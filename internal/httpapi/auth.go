package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/alexanderramin/rosterdesk/internal/service"
	"github.com/alexanderramin/rosterdesk/internal/session"
)

// Claims is the bearer token payload. Email identifies the project manager.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

var errNoEmail = errors.New("token has no email claim")

// IssueToken signs an HS256 token for email, valid for ttl from now.
func IssueToken(secret, email string, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", errors.New("issuing token: jwt secret is not configured")
	}
	claims := Claims{
		Email: strings.TrimSpace(email),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strings.TrimSpace(email),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a token and returns its email claim.
func ParseToken(secret, raw string, now time.Time) (string, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil {
		return "", fmt.Errorf("parsing token: %w", err)
	}
	if claims.Email == "" {
		return "", errNoEmail
	}
	return claims.Email, nil
}

type servicesKey struct{}

func servicesFrom(ctx context.Context) *service.Services {
	s, _ := ctx.Value(servicesKey{}).(*service.Services)
	return s
}

// authenticate resolves the bearer token to a project manager and stores
// that manager's services on the request context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "Missing bearer token")
			return
		}
		email, err := ParseToken(s.cfg.JWTSecret, raw, s.now())
		if err != nil {
			s.logger.WarnContext(r.Context(), "rejected bearer token", "error", err)
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		manager, err := s.factory.Identity().Initialize(r.Context(), session.Identity{Email: email})
		if err != nil {
			s.logger.WarnContext(r.Context(), "identity lookup failed", "email", email, "error", err)
			writeError(w, http.StatusUnauthorized, "Not a project manager")
			return
		}
		ctx := context.WithValue(r.Context(), servicesKey{}, s.factory.For(manager))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
