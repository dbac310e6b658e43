package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

// AuthUsecase は会員登録とログイン（アクセストークン発行）。
type AuthUsecase struct {
	users      repo.UserRepository
	jwtSecret  []byte
	accessTTL  time.Duration
	bcryptCost int
	log        *zap.Logger
}

func NewAuthUsecase(users repo.UserRepository, jwtSecret string, log *zap.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  15 * time.Minute,
		bcryptCost: 12,
		log:        log,
	}
}

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginOutput struct {
	AccessToken string     `json:"access_token"`
	ExpiresAt   time.Time  `json:"expires_at"`
	User        model.User `json:"user"`
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (model.User, error) {
	email := strings.TrimSpace(in.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid email format")
	}
	if len(in.Password) < 12 {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "password too short")
	}

	role := model.Role(strings.TrimSpace(in.Role))
	if role == "" {
		role = model.RoleBuyer
	}
	if role != model.RoleBuyer && role != model.RoleCurator {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid role")
	}

	//email重複チェック
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return model.User{}, NewHTTPError(http.StatusConflict, "email already exists")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return model.User{}, internalError(u.log, "auth.find_email", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.bcryptCost)
	if err != nil {
		return model.User{}, internalError(u.log, "auth.hash", err)
	}

	created, err := u.users.Create(ctx, model.User{
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
		IsActive:     true,
	})
	if err != nil {
		return model.User{}, internalError(u.log, "auth.create_user", err)
	}

	return created, nil
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	email := strings.TrimSpace(in.Email)

	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		//ユーザー有無を区別させない
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return LoginOutput{}, internalError(u.log, "auth.find_user", err)
	}
	if !user.IsActive {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	now := time.Now()
	expiresAt := now.Add(u.accessTTL)

	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(user.ID, 10),
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.jwtSecret)
	if err != nil {
		return LoginOutput{}, internalError(u.log, "auth.sign", err)
	}

	if err := u.users.UpdateLastLogin(ctx, user.ID); err != nil {
		//ログイン自体は成功させる
		u.log.Warn("failed to update last_login_at", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	return LoginOutput{
		AccessToken: signed,
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}
