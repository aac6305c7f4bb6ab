// Файл: internal/services/auth_service.go
package services

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/config"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceInterface interface {
	Signup(ctx context.Context, payload dto.SignupDTO) (*dto.SignupResponseDTO, error)
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error)
	RequestPasswordReset(ctx context.Context, payload dto.ForgotPasswordDTO) error
	ResetPassword(ctx context.Context, payload dto.ResetPasswordDTO) error
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	jwtService service.JWTService
	logger     *zap.Logger
	cfg        *config.AuthConfig
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
	cfg *config.AuthConfig,
) AuthServiceInterface {
	return &AuthService{
		userRepo:   userRepo,
		cacheRepo:  cacheRepo,
		jwtService: jwtService,
		logger:     logger,
		cfg:        cfg,
	}
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

func (s *AuthService) Signup(ctx context.Context, payload dto.SignupDTO) (*dto.SignupResponseDTO, error) {
	hashedPassword, err := hashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	role := payload.Role
	if role == "" {
		role = constants.RolePortalUser
	}

	userEntity := &entities.User{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: hashedPassword,
		Role:     role,
	}

	newID, err := s.userRepo.CreateUser(ctx, userEntity)
	if err != nil {
		if err == apperrors.ErrConflict {
			s.logger.Warn("Signup: email уже зарегистрирован", zap.String("email", payload.Email))
			return nil, apperrors.NewHttpError(http.StatusConflict, "Email уже зарегистрирован", nil, nil)
		}
		s.logger.Error("Signup: ошибка создания пользователя", zap.Error(err))
		return nil, err
	}

	return &dto.SignupResponseDTO{UserID: newID}, nil
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	logger := s.logger.With(zap.String("email", payload.Email))

	// Блокировка по количеству неудачных попыток
	attemptsKey := fmt.Sprintf("login_attempts:%s", payload.Email)
	attemptsStr, _ := s.cacheRepo.Get(ctx, attemptsKey)
	if attempts, _ := strconv.Atoi(attemptsStr); attempts >= s.cfg.MaxLoginAttempts {
		logger.Warn("Login: слишком много неудачных попыток входа")
		return nil, apperrors.NewHttpError(
			http.StatusTooManyRequests,
			fmt.Sprintf("Слишком много попыток. Попробуйте через %.0f минут.", s.cfg.LockoutDuration.Minutes()),
			nil,
			nil,
		)
	}

	user, err := s.userRepo.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		if err == apperrors.ErrNotFound {
			logger.Warn("Login: аккаунт не найден")
			return nil, apperrors.NewHttpError(http.StatusNotFound, "Аккаунт не найден", nil, nil)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		logger.Warn("Login: неверный пароль")
		if _, err := s.cacheRepo.Incr(ctx, attemptsKey); err == nil {
			s.cacheRepo.Expire(ctx, attemptsKey, s.cfg.LockoutDuration)
		}
		return nil, apperrors.NewHttpError(http.StatusUnauthorized, "Неверный пароль", nil, nil)
	}

	s.cacheRepo.Del(ctx, attemptsKey)

	token, err := s.jwtService.GenerateToken(int(user.ID), user.Role)
	if err != nil {
		logger.Error("Login: не удалось сгенерировать токен", zap.Error(err))
		return nil, err
	}

	return &dto.LoginResponseDTO{
		Token: token,
		Role:  user.Role,
		Name:  user.Name,
	}, nil
}

func (s *AuthService) RequestPasswordReset(ctx context.Context, payload dto.ForgotPasswordDTO) error {
	logger := s.logger.With(zap.String("email", payload.Email))

	user, err := s.userRepo.FindUserByEmail(ctx, payload.Email)
	if err != nil || user == nil {
		// Тихо выходим, не сообщаем фронту
		logger.Warn("Попытка сброса пароля для несуществующего пользователя")
		return nil
	}

	resetToken := uuid.New().String()
	cacheKey := fmt.Sprintf("reset_email:%s", resetToken)
	if err := s.cacheRepo.Set(ctx, cacheKey, user.ID, s.cfg.ResetTokenTTL); err != nil {
		logger.Error("Не удалось сохранить токен сброса пароля", zap.Error(err))
		return err
	}

	logger.Warn("Токен сброса пароля", zap.Uint64("userID", user.ID), zap.String("reset_token", resetToken))
	// TODO: Отправить email
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, payload dto.ResetPasswordDTO) error {
	cacheKey := fmt.Sprintf("reset_email:%s", payload.Token)

	storedID, err := s.cacheRepo.Get(ctx, cacheKey)
	if err != nil {
		s.logger.Warn("ResetPassword: недействительный или истёкший токен сброса")
		return apperrors.NewHttpError(http.StatusUnauthorized, "Недействительный или истёкший токен сброса", nil, nil)
	}

	userID, err := strconv.ParseUint(storedID, 10, 64)
	if err != nil {
		return apperrors.NewHttpError(http.StatusUnauthorized, "Недействительный токен сброса", err, nil)
	}

	hashedPassword, err := hashPassword(payload.NewPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		s.logger.Error("ResetPassword: не удалось обновить пароль", zap.Uint64("userID", userID), zap.Error(err))
		return err
	}

	s.cacheRepo.Del(ctx, cacheKey)
	return nil
}
