package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"newpack/internal/models"
	"newpack/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// Principal is the authenticated caller carried by an access token.
type Principal struct {
	UserID  string
	IsAdmin bool
}

// TokenPair is returned by login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	UserID       string
	UserName     string
}

var (
	errInvalidRefreshToken = validationError("Invalid refresh token", "invalid token")
	errExpiredRefreshToken = validationError("Expired refresh token", "The refresh token has expired")
)

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo   repositories.UserRepository
	tokenRepo  repositories.RefreshTokenRepository
	tx         repositories.TransactionManager
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.RefreshTokenRepository,
	tx repositories.TransactionManager,
	jwtSecret string,
	accessTTL, refreshTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		tx:         tx,
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// Login authenticates by name or full name and issues a token pair.
func (s *AuthService) Login(ctx context.Context, login, password string) (*TokenPair, error) {
	user, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, validationError("Invalid credentials", "Name or full name not found")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, validationError("Invalid credentials", "Name or password invalid")
	}

	return s.issue(ctx, user)
}

// Refresh redeems a refresh token once and issues a new pair.
// An expired token is deleted and rejected.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	var (
		pair    *TokenPair
		expired bool
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		token, err := s.tokenRepo.GetByID(txCtx, refreshToken)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return errInvalidRefreshToken
			}
			return err
		}

		if err := s.tokenRepo.Delete(txCtx, token.ID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return errInvalidRefreshToken
			}
			return err
		}
		if token.Expired(s.now()) {
			expired = true
			return nil
		}

		user, err := s.userRepo.GetByID(txCtx, token.UserID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return validationError("Invalid refresh token", "User not found")
			}
			return err
		}

		pair, err = s.issue(txCtx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, errExpiredRefreshToken
	}
	return pair, nil
}

// Revoke deletes a refresh token.
func (s *AuthService) Revoke(ctx context.Context, refreshToken string) error {
	if err := s.tokenRepo.Delete(ctx, refreshToken); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errInvalidRefreshToken
		}
		return err
	}
	return nil
}

// ValidateToken parses and validates an access token.
func (s *AuthService) ValidateToken(tokenString string) (*Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	id, _ := claims["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("invalid token: missing id claim")
	}
	isAdmin, _ := claims["isAdmin"].(bool)

	return &Principal{UserID: id, IsAdmin: isAdmin}, nil
}

func (s *AuthService) issue(ctx context.Context, user *models.User) (*TokenPair, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":      user.ID,
		"isAdmin": user.IsAdmin,
		"sub":     user.ID,
		"iat":     now.Unix(),
		"exp":     now.Add(s.accessTTL).Unix(),
	})
	accessToken, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	refresh := &models.RefreshToken{
		UserID:    user.ID,
		ExpiresIn: now.Add(s.refreshTTL).Unix(),
	}
	if err := s.tokenRepo.Create(ctx, refresh); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refresh.ID,
		UserID:       user.ID,
		UserName:     user.Name,
	}, nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
