package services

import (
	"context"

	"github.com/branchbooks/branch_bookkeeping_app/internal/apperrors"
	portssvc "github.com/branchbooks/branch_bookkeeping_app/internal/core/ports/services"
	"github.com/branchbooks/branch_bookkeeping_app/internal/dto"
	"github.com/branchbooks/branch_bookkeeping_app/internal/platform/config"
	"github.com/branchbooks/branch_bookkeeping_app/internal/utils"
)

// authService exchanges credentials for signed access tokens.
type authService struct {
	BaseService
	cfg     *config.Config
	userSvc portssvc.UserSvcFacade
}

// NewAuthService creates a new auth service.
func NewAuthService(cfg *config.Config, userSvc portssvc.UserSvcFacade) portssvc.AuthSvcFacade {
	return &authService{
		cfg:     cfg,
		userSvc: userSvc,
	}
}

// Ensure authService implements the portssvc.AuthSvcFacade interface
var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies the credentials and issues a JWT access token.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userSvc.AuthenticateUser(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "failed to generate access token", "user_id", user.UserID)
		return nil, apperrors.NewAppError(500, "failed to generate access token", err)
	}

	s.LogInfo(ctx, "user logged in", "user_id", user.UserID)
	return &dto.LoginResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	}, nil
}
