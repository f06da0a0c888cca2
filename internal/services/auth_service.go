package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"setlist/internal/apperror"
	"setlist/internal/models"
	"setlist/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService registers users, issues tokens and resolves the caller behind a token.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService. A zero ttl means 24 hours.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  ttl,
	}
}

// RegisterUser creates an account with a hashed password. An empty role registers a common user.
func (s *AuthService) RegisterUser(ctx context.Context, username, email, password, role string) (*models.User, error) {
	parsedRole, ok := models.ParseRole(role)
	if !ok {
		return nil, apperror.Invalid(fmt.Sprintf("unknown role '%s'", role))
	}

	if existing, err := s.userRepo.GetByUsername(ctx, username); err == nil && existing != nil {
		return nil, apperror.Conflict(fmt.Sprintf("username '%s' already taken", username))
	}
	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperror.Conflict(fmt.Sprintf("email '%s' already registered", email))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	user := &models.User{
		Username:       username,
		Email:          email,
		HashedPassword: string(hashedPassword),
		Role:           parsedRole,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperror.Conflict("username or email already registered")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

// Session is the outcome of a successful login.
type Session struct {
	Token    string      `json:"token"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

// LoginUser checks the credentials and returns a signed token with the
// user it belongs to. creds is a username or an e-mail address.
func (s *AuthService) LoginUser(ctx context.Context, creds, password string) (*Session, error) {
	user, err := s.userRepo.GetByUsername(ctx, creds)
	if err != nil && strings.Contains(creds, "@") {
		user, err = s.userRepo.GetByEmail(ctx, creds)
	}
	if err != nil {
		// Do not reveal whether the account exists.
		return nil, apperror.Unauthenticated("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, apperror.Unauthenticated("invalid credentials")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      now.Add(s.tokenTTL).Unix(),
		"iat":      now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to generate token: %w", err))
	}
	return &Session{Token: tokenString, Username: user.Username, Role: user.Role}, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// Authenticate resolves the user behind a token. The user is reloaded so that
// deleted accounts and role changes take effect immediately.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, &apperror.Error{Kind: apperror.KindUnauthenticated, Message: "invalid or expired token", Err: err}
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, apperror.Unauthenticated("token has no subject")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.Unauthenticated("user no longer exists")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}
