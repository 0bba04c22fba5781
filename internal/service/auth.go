package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"rentacar-backend/internal/config"
	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/logger"
	"rentacar-backend/internal/security"
)

type authService struct {
	operators map[string]domain.Operator
	tokens    security.TokenManager
	dummyHash []byte
}

// NewAuthService authenticates against the operators listed in config
func NewAuthService(operators []config.OperatorConfig, tokens security.TokenManager) AuthService {
	byEmail := make(map[string]domain.Operator, len(operators))
	for _, op := range operators {
		byEmail[strings.ToLower(op.Email)] = domain.Operator{
			ID:           op.ID,
			Email:        op.Email,
			Name:         op.Name,
			PasswordHash: op.PasswordHash,
			Role:         domain.OperatorRole(op.Role),
		}
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-an-operator"), bcrypt.DefaultCost)
	return &authService{operators: byEmail, tokens: tokens, dummyHash: dummy}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, time.Time, *domain.Operator, error) {
	logger.EnterMethod("authService.Login", "email", email)

	op, ok := s.operators[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		logger.Warn("Login with unknown email", "email", email)
		return "", time.Time{}, nil, domain.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)); err != nil {
		logger.Warn("Login with wrong password", "email", email)
		return "", time.Time{}, nil, domain.ErrUnauthorized
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(op.ID, op.Email, string(op.Role))
	if err != nil {
		logger.ExitMethodWithError("authService.Login", err)
		return "", time.Time{}, nil, err
	}

	logger.ExitMethod("authService.Login", "operatorID", op.ID)
	return token, expiresAt, &op, nil
}
