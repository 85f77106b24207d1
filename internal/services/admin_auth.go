package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	errs "github.com/vwconsorcio/consorcio-backend/internal/pkg/errors"
	"github.com/vwconsorcio/consorcio-backend/internal/platform/logger"
)

const (
	adminSubject         = "admin"
	adminIssuer          = "consorcio-backend"
	defaultAdminTokenTTL = 12 * time.Hour
)

type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type AdminToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AdminAuthService issues and checks the single shared admin credential.
// It is disabled when either the password hash or the signing secret is missing.
type AdminAuthService interface {
	Enabled() bool
	Login(ctx context.Context, password string) (*AdminToken, error)
	ParseToken(tokenString string) (*AdminClaims, error)
}

type adminAuthService struct {
	log          *logger.Logger
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
}

func NewAdminAuthService(log *logger.Logger, passwordHash, jwtSecret string, ttl time.Duration) AdminAuthService {
	if ttl <= 0 {
		ttl = defaultAdminTokenTTL
	}
	return &adminAuthService{
		log:          log.With("service", "AdminAuthService"),
		passwordHash: []byte(strings.TrimSpace(passwordHash)),
		secret:       []byte(jwtSecret),
		ttl:          ttl,
		now:          time.Now,
	}
}

func (s *adminAuthService) Enabled() bool {
	return len(s.passwordHash) > 0 && len(s.secret) > 0
}

func (s *adminAuthService) Login(ctx context.Context, password string) (*AdminToken, error) {
	if !s.Enabled() {
		return nil, errs.ErrAdminDisabled
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		s.log.Warn("admin login rejected")
		return nil, errs.ErrUnauthorized
	}
	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := AdminClaims{
		Role: adminSubject,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminSubject,
			Issuer:    adminIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign admin token: %w", err)
	}
	s.log.Info("admin login")
	return &AdminToken{Token: signed, ExpiresAt: expiresAt.UTC()}, nil
}

func (s *adminAuthService) ParseToken(tokenString string) (*AdminClaims, error) {
	if !s.Enabled() {
		return nil, errs.ErrAdminDisabled
	}
	claims := &AdminClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(adminIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid || claims.Role != adminSubject {
		return nil, errs.ErrUnauthorized
	}
	return claims, nil
}
