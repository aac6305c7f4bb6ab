package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/config"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeCacheRepo struct {
	store map[string]string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{store: make(map[string]string)}
}

func (c *fakeCacheRepo) Get(ctx context.Context, key string) (string, error) {
	value, ok := c.store[key]
	if !ok {
		return "", errors.New("ключ не найден")
	}
	return value, nil
}

func (c *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.store[key] = fmt.Sprint(value)
	return nil
}

func (c *fakeCacheRepo) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.store, key)
	}
	return nil
}

func (c *fakeCacheRepo) Incr(ctx context.Context, key string) (int64, error) {
	var current int64
	fmt.Sscan(c.store[key], &current)
	current++
	c.store[key] = fmt.Sprint(current)
	return current, nil
}

func (c *fakeCacheRepo) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	_, ok := c.store[key]
	return ok, nil
}

func newAuthServiceForTest() (AuthServiceInterface, *fakeUserRepo, *fakeCacheRepo) {
	userRepo := newFakeUserRepo()
	cacheRepo := newFakeCacheRepo()
	jwtSvc := service.NewJWTService("test-secret", time.Hour)
	cfg := &config.AuthConfig{
		MaxLoginAttempts: 5,
		LockoutDuration:  time.Minute * 15,
		ResetTokenTTL:    time.Minute * 15,
	}
	svc := NewAuthService(userRepo, cacheRepo, jwtSvc, zap.NewNop(), cfg)
	return svc, userRepo, cacheRepo
}

func seedUser(t *testing.T, userRepo *fakeUserRepo, email, password string) uint64 {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	id, err := userRepo.CreateUser(context.Background(), &entities.User{
		Name:     "John Doe",
		Email:    email,
		Password: string(hashed),
		Role:     "Technician",
	})
	require.NoError(t, err)
	return id
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("роль по умолчанию Portal User", func(t *testing.T) {
		svc, userRepo, _ := newAuthServiceForTest()

		res, err := svc.Signup(ctx, dto.SignupDTO{
			Name:     "Jane Smith",
			Email:    "jane@gearguard.com",
			Password: "Password@123",
		})

		require.NoError(t, err)
		assert.Equal(t, "Portal User", userRepo.users[res.UserID].Role)
	})

	t.Run("пароль хранится только в виде bcrypt-хеша", func(t *testing.T) {
		svc, userRepo, _ := newAuthServiceForTest()

		res, err := svc.Signup(ctx, dto.SignupDTO{
			Name:     "Jane Smith",
			Email:    "jane@gearguard.com",
			Password: "Password@123",
		})

		require.NoError(t, err)
		stored := userRepo.users[res.UserID].Password
		assert.NotEqual(t, "Password@123", stored)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("Password@123")))
	})

	t.Run("повторный email - 409", func(t *testing.T) {
		svc, userRepo, _ := newAuthServiceForTest()
		seedUser(t, userRepo, "jane@gearguard.com", "Password@123")

		_, err := svc.Signup(ctx, dto.SignupDTO{
			Name:     "Jane Clone",
			Email:    "jane@gearguard.com",
			Password: "Password@123",
		})

		require.Error(t, err)
		var httpErr *apperrors.HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 409, httpErr.Code)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("успешный вход возвращает токен, роль и имя", func(t *testing.T) {
		svc, userRepo, cacheRepo := newAuthServiceForTest()
		seedUser(t, userRepo, "john@gearguard.com", "Password@123")

		res, err := svc.Login(ctx, dto.LoginDTO{Email: "john@gearguard.com", Password: "Password@123"})

		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, "Technician", res.Role)
		assert.Equal(t, "John Doe", res.Name)
		assert.Empty(t, cacheRepo.store, "счётчик попыток должен сбрасываться после успешного входа")
	})

	t.Run("неизвестный email - 404", func(t *testing.T) {
		svc, _, _ := newAuthServiceForTest()

		_, err := svc.Login(ctx, dto.LoginDTO{Email: "ghost@gearguard.com", Password: "Password@123"})

		require.Error(t, err)
		var httpErr *apperrors.HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 404, httpErr.Code)
	})

	t.Run("неверный пароль - 401 и счётчик попыток растёт", func(t *testing.T) {
		svc, userRepo, cacheRepo := newAuthServiceForTest()
		seedUser(t, userRepo, "john@gearguard.com", "Password@123")

		_, err := svc.Login(ctx, dto.LoginDTO{Email: "john@gearguard.com", Password: "WrongPass@1"})

		require.Error(t, err)
		var httpErr *apperrors.HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 401, httpErr.Code)
		assert.Equal(t, "1", cacheRepo.store["login_attempts:john@gearguard.com"])
	})

	t.Run("после пяти неудачных попыток - 429", func(t *testing.T) {
		svc, userRepo, _ := newAuthServiceForTest()
		seedUser(t, userRepo, "john@gearguard.com", "Password@123")

		for i := 0; i < 5; i++ {
			_, err := svc.Login(ctx, dto.LoginDTO{Email: "john@gearguard.com", Password: "WrongPass@1"})
			require.Error(t, err)
		}

		// Даже правильный пароль не проходит во время блокировки.
		_, err := svc.Login(ctx, dto.LoginDTO{Email: "john@gearguard.com", Password: "Password@123"})

		require.Error(t, err)
		var httpErr *apperrors.HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 429, httpErr.Code)
	})
}

func TestPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("полный цикл сброса пароля", func(t *testing.T) {
		svc, userRepo, cacheRepo := newAuthServiceForTest()
		userID := seedUser(t, userRepo, "john@gearguard.com", "Password@123")

		require.NoError(t, svc.RequestPasswordReset(ctx, dto.ForgotPasswordDTO{Email: "john@gearguard.com"}))
		require.Len(t, cacheRepo.store, 1)

		var token string
		for key := range cacheRepo.store {
			token = key[len("reset_email:"):]
		}

		require.NoError(t, svc.ResetPassword(ctx, dto.ResetPasswordDTO{Token: token, NewPassword: "NewSecret@123"}))

		stored := userRepo.users[userID].Password
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("NewSecret@123")))
		assert.Empty(t, cacheRepo.store, "токен сброса одноразовый")
	})

	t.Run("неизвестный email не возвращает ошибку", func(t *testing.T) {
		svc, _, cacheRepo := newAuthServiceForTest()

		require.NoError(t, svc.RequestPasswordReset(ctx, dto.ForgotPasswordDTO{Email: "ghost@gearguard.com"}))
		assert.Empty(t, cacheRepo.store)
	})

	t.Run("недействительный токен - 401", func(t *testing.T) {
		svc, _, _ := newAuthServiceForTest()

		err := svc.ResetPassword(ctx, dto.ResetPasswordDTO{Token: "bogus", NewPassword: "NewSecret@123"})

		require.Error(t, err)
		var httpErr *apperrors.HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 401, httpErr.Code)
	})
}
