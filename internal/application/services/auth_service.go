package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/manageer/core/internal/domain/entities"
	"github.com/manageer/core/internal/infrastructure/config"
	"github.com/manageer/core/internal/infrastructure/logger"
	"github.com/manageer/core/internal/ports"
)

// dummyStoredPassword is compared against when the account does not exist
// so signin burns a key derivation either way.
const dummyStoredPassword = "0000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000f.0000000000000000"

// Claims represents the JWT claims carried in the session cookie
type Claims struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo  ports.UserRepository
	jwtConfig config.JWTConfig
	logger    *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo ports.UserRepository, jwtConfig config.JWTConfig, logger *logger.Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtConfig: jwtConfig,
		logger:    logger,
	}
}

// Signup creates a new user account and returns it with a signed identity
// token.
func (s *AuthService) Signup(ctx context.Context, req ports.SignupRequest) (*entities.User, string, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		return nil, "", fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return nil, "", entities.ErrEmailInUse
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	s.logger.Infow("User registered", "user_id", user.ID, "email", user.Email)

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Signin authenticates a user by email and password. Unknown email and
// wrong password are indistinguishable to the caller, and both paths run
// the key derivation.
func (s *AuthService) Signin(ctx context.Context, req ports.SigninRequest) (*entities.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			_, _ = ComparePassword(dummyStoredPassword, req.Password)
			s.logger.Warnw("Signin attempt with unknown email", "email", req.Email)
			return nil, "", entities.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up email: %w", err)
	}

	match, err := ComparePassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to compare password: %w", err)
	}
	if !match {
		s.logger.Warnw("Signin attempt with invalid password", "email", req.Email, "user_id", user.ID)
		return nil, "", entities.ErrInvalidCredentials
	}

	s.logger.Infow("User signed in", "user_id", user.ID, "email", user.Email)

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// CurrentUser resolves the user behind a set of claims. Absent claims and a
// vanished account both yield a nil user, not an error.
func (s *AuthService) CurrentUser(ctx context.Context, claims *ports.Claims) (*entities.User, error) {
	if claims == nil {
		return nil, nil
	}

	user, err := s.userRepo.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up current user: %w", err)
	}

	return user, nil
}

// ValidateToken validates a JWT token and returns its claims
func (s *AuthService) ValidateToken(tokenString string) (*ports.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return &ports.Claims{
		ID:       claims.ID,
		Email:    claims.Email,
		Username: claims.Username,
	}, nil
}

func (s *AuthService) issueToken(user *entities.User) (string, error) {
	claims := &Claims{
		ID:       user.ID.String(),
		Email:    user.Email,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.jwtConfig.ExpiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.jwtConfig.Issuer,
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}
