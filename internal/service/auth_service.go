package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/tdhoang/mockmate/config"
	"github.com/tdhoang/mockmate/internal/dto"
	"github.com/tdhoang/mockmate/internal/model"
	"github.com/tdhoang/mockmate/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SessionLifetime is how long a session cookie stays valid.
const SessionLifetime = 7 * 24 * time.Hour

type AuthService interface {
	SignUp(ctx context.Context, req dto.SignUpRequest) error
	// SignIn verifies the credentials and mints the session token carried
	// by the "session" cookie.
	SignIn(ctx context.Context, req dto.SignInRequest) (string, *dto.UserResponse, error)
	// VerifySession validates a session token and returns the user it
	// belongs to.
	VerifySession(ctx context.Context, token string) (*dto.UserResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	secret   []byte
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	if cfg.SessionSecret == "" {
		log.Warn().Msg("SESSION_SECRET is not set. Sessions will not survive restarts of differently-configured instances.")
	}
	return &authService{userRepo: userRepo, secret: []byte(cfg.SessionSecret)}
}

func (s *authService) SignUp(ctx context.Context, req dto.SignUpRequest) error {
	_, err := s.userRepo.FindByEmail(req.Email)
	if err == nil {
		return fmt.Errorf("user already exists, please sign in instead: %w", ErrValidation)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("checking existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(user); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("SignUp: failed to create user")
		return fmt.Errorf("creating user: %w", err)
	}

	log.Info().Str("userID", user.ID).Msg("User account created")
	return nil
}

func (s *authService) SignIn(ctx context.Context, req dto.SignInRequest) (string, *dto.UserResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, fmt.Errorf("user does not exist, please sign up instead: %w", ErrUnauthorized)
		}
		return "", nil, fmt.Errorf("looking up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	}

	token, err := s.mintToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("minting session token: %w", err)
	}

	resp, err := toUserResponse(user)
	if err != nil {
		return "", nil, err
	}
	return token, resp, nil
}

func (s *authService) VerifySession(ctx context.Context, token string) (*dto.UserResponse, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("invalid session token: %w", ErrUnauthorized)
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return nil, fmt.Errorf("session token has no subject: %w", ErrUnauthorized)
	}

	user, err := s.userRepo.FindByID(claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session user no longer exists: %w", ErrUnauthorized)
		}
		return nil, fmt.Errorf("looking up session user: %w", err)
	}
	return toUserResponse(user)
}

func (s *authService) mintToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(SessionLifetime)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func toUserResponse(user *model.User) (*dto.UserResponse, error) {
	var resp dto.UserResponse
	if err := copier.Copy(&resp, user); err != nil {
		return nil, fmt.Errorf("error preparing user response: %w", err)
	}
	return &resp, nil
}
