package usecase

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/train-schedule-microservice/internal/config"
	"github.com/train-schedule-microservice/internal/domain"
	"github.com/train-schedule-microservice/internal/domain/repository"
	"github.com/train-schedule-microservice/internal/pkg/errors"
	"github.com/train-schedule-microservice/internal/usecase/dto"
)

type UserUseCase struct {
	userRepo repository.UserRepository
	authCfg  *config.AuthConfig
	logger   *zap.Logger
}

func NewUserUseCase(
	userRepo repository.UserRepository,
	authCfg *config.AuthConfig,
	logger *zap.Logger,
) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		authCfg:  authCfg,
		logger:   logger,
	}
}

func (uc *UserUseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		uc.logger.Warn("Login failed", zap.String("username", req.Username))
		return nil, errors.ErrInvalidCredentials
	}

	token, err := uc.signToken(user)
	if err != nil {
		uc.logger.Error("Failed to sign token", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	user.Password = ""
	return &dto.LoginResponse{Token: token, User: user}, nil
}

func (uc *UserUseCase) signToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.ID,
		"iat": now.Unix(),
		"exp": now.Add(uc.authCfg.TokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(uc.authCfg.SecretKey))
}

// Authenticate validates a bearer token and loads the user it names, role
// included. Any token fault maps to ErrUnauthorized.
func (uc *UserUseCase) Authenticate(ctx context.Context, tokenString string) (*domain.User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.ErrUnauthorized
		}
		return []byte(uc.authCfg.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.ErrUnauthorized
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, errors.ErrUnauthorized
	}

	user, err := uc.userRepo.GetByID(ctx, int64(sub))
	if err != nil {
		return nil, errors.ErrUnauthorized
	}
	return user, nil
}

func (uc *UserUseCase) Create(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password", zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	user, err := uc.userRepo.Create(ctx, &domain.User{
		Username: req.Username,
		Password: string(hash),
		RoleID:   req.RoleID,
	})
	if err != nil {
		return nil, err
	}

	user.Password = ""
	return user, nil
}

func (uc *UserUseCase) List(ctx context.Context) ([]*domain.User, error) {
	return uc.userRepo.List(ctx)
}

func (uc *UserUseCase) Update(ctx context.Context, id int64, req dto.UpdateUserRequest) error {
	patch := &domain.User{
		Username: req.Username,
		RoleID:   req.RoleID,
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			uc.logger.Error("Failed to hash password", zap.Error(err))
			return errors.ErrInternalServer
		}
		patch.Password = string(hash)
	}
	return uc.userRepo.Update(ctx, id, patch)
}

func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	return uc.userRepo.Delete(ctx, id)
}
