package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/catalog-backend/internal/normalization"
	"github.com/yungbote/catalog-backend/internal/platform/apierr"
	"github.com/yungbote/catalog-backend/internal/platform/logger"
	"github.com/yungbote/catalog-backend/internal/repos"
	"github.com/yungbote/catalog-backend/internal/types"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	ValidateToken(tokenString string) (string, error)
	EnsureAdminUser(ctx context.Context, username, password string) error
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	jwtSecretKey string
	tokenTTL     time.Duration
}

func NewAuthService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, jwtSecretKey string, tokenTTL time.Duration) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		tokenTTL:     tokenTTL,
	}
}

func (as *authService) Login(ctx context.Context, username, password string) (string, error) {
	username = normalization.ParseInputString(username)
	if username == "" || password == "" {
		return "", apierr.New(http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("username and password are required"))
	}

	user, err := as.userRepo.GetByUsername(ctx, nil, username)
	if err != nil {
		return "", apierr.New(http.StatusInternalServerError, apierr.CodeInternal, fmt.Errorf("load user: %w", err))
	}
	if user == nil {
		return "", apierr.New(http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("invalid credentials"))
	}
	if bErr := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); bErr != nil {
		return "", apierr.New(http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("invalid credentials"))
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(as.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", apierr.New(http.StatusInternalServerError, apierr.CodeInternal, fmt.Errorf("sign token: %w", err))
	}
	as.log.Info("User logged in", "username", user.Username)
	return signed, nil
}

func (as *authService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return "", apierr.New(http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("invalid or expired token"))
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", apierr.New(http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("invalid token claims"))
	}
	username, _ := claims["username"].(string)
	if username == "" {
		return "", apierr.New(http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("invalid token claims"))
	}
	return username, nil
}

// EnsureAdminUser seeds the admin account at startup when it does not exist.
func (as *authService) EnsureAdminUser(ctx context.Context, username, password string) error {
	username = normalization.ParseInputString(username)
	if username == "" || password == "" {
		return fmt.Errorf("admin username and password are required")
	}
	existing, err := as.userRepo.GetByUsername(ctx, nil, username)
	if err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if existing != nil {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	user := &types.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := as.userRepo.Create(ctx, nil, user); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	as.log.Info("Seeded admin user", "username", username)
	return nil
}
