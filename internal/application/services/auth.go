package services

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"docmanager-api/internal/application/ports"
	"docmanager-api/internal/domain/user"
	"docmanager-api/internal/infrastructure/jwt"
	"docmanager-api/internal/infrastructure/metrics"
)

type AuthService struct {
	userRepository user.Repository
	jwtService     *jwt.Service
	sessionTTL     time.Duration
	mCounter       *prometheus.CounterVec
}

func NewAuthService(
	userRepository user.Repository,
	jwtService *jwt.Service,
	sessionTTL time.Duration,
	mCounter *prometheus.CounterVec,
) ports.Auth {
	return &AuthService{
		userRepository: userRepository,
		jwtService:     jwtService,
		sessionTTL:     sessionTTL,
		mCounter:       mCounter,
	}
}

// Authenticate does not reveal whether the username exists.
func (as *AuthService) Authenticate(ctx context.Context, username, password string) (string, *user.User, error) {
	u, err := as.userRepository.FetchUserByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		metrics.Inc(as.mCounter, metrics.LoginsFailed)
		return "", nil, ErrInvalidCredentials
	}

	if err = bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		metrics.Inc(as.mCounter, metrics.LoginsFailed)
		return "", nil, ErrInvalidCredentials
	}

	token, err := as.jwtService.GenerateJWT(u.ID.String(), u.Username, string(u.Role), as.sessionTTL)
	if err != nil {
		return "", nil, ErrFailedToGenerateToken
	}

	metrics.Inc(as.mCounter, metrics.LoginsSucceeded)

	return token, u, nil
}
