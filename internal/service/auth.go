package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"brinquedos-backend/internal/domain"
	"brinquedos-backend/internal/logger"
	"brinquedos-backend/internal/repository"
	"brinquedos-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", domain.ErrUnauthorized)

type authService struct {
	userRepo repository.UserRepository
	orgRepo  repository.OrganizationRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, orgRepo repository.OrganizationRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		orgRepo:  orgRepo,
		tokens:   tokens,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (*domain.User, string, string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	access, err := s.tokens.GenerateAccessToken(user.ID, user.OrgID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.OrgID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, "", "", err
	}
	logger.Info("User logged in", "user_id", user.ID, "org_id", user.OrgID)
	return user, access, refresh, nil
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refresh)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, security.ErrWrongTokenType)
	}
	access, err := s.tokens.GenerateAccessToken(claims.UserID, claims.OrgID, claims.Username, claims.IsAdmin)
	if err != nil {
		return "", "", err
	}
	next, err := s.tokens.GenerateRefreshToken(claims.UserID, claims.OrgID, claims.Username, claims.IsAdmin)
	if err != nil {
		return "", "", err
	}
	return access, next, nil
}

func (s *authService) ProvisionAdmin(ctx context.Context, orgName, username, email, password string) (*domain.User, bool, error) {
	logger.EnterMethod("authService.ProvisionAdmin", "username", username, "org", orgName)

	v := domain.Violations{}
	if strings.TrimSpace(orgName) == "" {
		v.Add("org_name", "required")
	}
	if strings.TrimSpace(username) == "" {
		v.Add("username", "required")
	}
	if len(password) < 8 {
		v.Add("password", "must have at least 8 characters")
	}
	if err := v.Err(); err != nil {
		logger.ExitMethodWithError("authService.ProvisionAdmin", err)
		return nil, false, err
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil {
		logger.Warn("User already exists, nothing to do", "username", username)
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		logger.ExitMethodWithError("authService.ProvisionAdmin", err)
		return nil, false, err
	}

	org, err := s.orgRepo.GetByName(ctx, orgName)
	if errors.Is(err, domain.ErrNotFound) {
		org = &domain.Organization{Name: orgName}
		err = s.orgRepo.Create(ctx, org)
	}
	if err != nil {
		logger.ExitMethodWithError("authService.ProvisionAdmin", err)
		return nil, false, fmt.Errorf("failed to resolve organization: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, err
	}
	user := &domain.User{
		OrgID:        org.ID,
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.ExitMethodWithError("authService.ProvisionAdmin", err)
		return nil, false, err
	}

	logger.ExitMethod("authService.ProvisionAdmin", "user_id", user.ID, "org_id", org.ID)
	return user, true, nil
}
