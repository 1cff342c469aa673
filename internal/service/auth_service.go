package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"retailgenie/internal/apperr"
	"retailgenie/internal/domain"
	"retailgenie/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 10

	// TokenExpiration is the bearer token lifetime (exp = iat + 24h)
	TokenExpiration = 24 * time.Hour

	// MinPasswordLength is the registration password floor
	MinPasswordLength = 6
)

// Principal is the identity attached to a request after successful
// credential verification.
type Principal struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// Claims represents the JWT claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// RegisterInput carries the registration contract fields.
type RegisterInput struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required"`
	Password     string `json:"password" validate:"required"`
	BusinessName string `json:"business_name" validate:"required"`
}

// AuthService defines the interface for authentication business logic.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (token string, user *domain.PublicUser, err error)
	Login(ctx context.Context, email, password string) (token string, user *domain.PublicUser, err error)
	Refresh(p Principal) (string, error)
	VerifyToken(tokenString string) (*Principal, error)
	VerifyAPIKey(key string) (*Principal, error)
	GetUser(ctx context.Context, userID string) (*domain.PublicUser, error)
	UpdateProfile(ctx context.Context, userID string, patch repository.UserPatch) (*domain.PublicUser, error)
}

type authService struct {
	users        repository.UserRepository
	jwtSecret    string
	apiKeyPrefix string
}

func NewAuthService(users repository.UserRepository, jwtSecret, apiKeyPrefix string) AuthService {
	return &authService{
		users:        users,
		jwtSecret:    jwtSecret,
		apiKeyPrefix: apiKeyPrefix,
	}
}

// Register creates a retailer account and mints its first token.
func (s *authService) Register(ctx context.Context, in RegisterInput) (string, *domain.PublicUser, error) {
	if strings.TrimSpace(in.Name) == "" {
		return "", nil, apperr.Validation("name is required")
	}
	if strings.TrimSpace(in.BusinessName) == "" {
		return "", nil, apperr.Validation("business_name is required")
	}
	if !strings.Contains(in.Email, "@") {
		return "", nil, apperr.Validation("email is invalid")
	}
	if len(in.Password) < MinPasswordLength {
		return "", nil, apperr.Validation("password must be at least %d characters", MinPasswordLength)
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return "", nil, apperr.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	user := &domain.User{
		Email:        in.Email,
		Name:         in.Name,
		BusinessName: in.BusinessName,
		PasswordHash: hash,
		Role:         domain.RoleRetailer,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.mintToken(user)
	if err != nil {
		return "", nil, apperr.Internal(fmt.Errorf("failed to sign token: %w", err))
	}
	return token, user.Public(), nil
}

// Login authenticates by email and password. Missing user and wrong
// password produce the same generic error so neither is an oracle.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.PublicUser, error) {
	if email == "" || password == "" {
		return "", nil, apperr.Validation("email and password are required")
	}

	invalid := apperr.Unauthenticated("invalid credentials")

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return "", nil, invalid
		}
		return "", nil, err
	}
	if !user.Active {
		return "", nil, invalid
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, invalid
	}

	if err := s.users.RecordLogin(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.mintToken(user)
	if err != nil {
		return "", nil, apperr.Internal(fmt.Errorf("failed to sign token: %w", err))
	}
	return token, user.Public(), nil
}

// Refresh issues a new token with a fresh expiry for a verified principal.
func (s *authService) Refresh(p Principal) (string, error) {
	token, err := s.sign(p.UserID, p.Email, p.Role)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("failed to sign token: %w", err))
	}
	return token, nil
}

// VerifyToken rejects malformed tokens, bad signatures, unknown
// algorithms, and expired tokens.
func (s *authService) VerifyToken(tokenString string) (*Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, apperr.Unauthenticated("invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, apperr.Unauthenticated("invalid token claims")
	}

	return &Principal{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}

// VerifyAPIKey accepts an opaque bearer credential with the recognised
// prefix as a principal with the api_key role.
func (s *authService) VerifyAPIKey(key string) (*Principal, error) {
	if !strings.HasPrefix(key, s.apiKeyPrefix) || len(key) <= len(s.apiKeyPrefix) {
		return nil, apperr.Unauthenticated("unrecognised API key")
	}
	return &Principal{UserID: "api:" + key[len(s.apiKeyPrefix):], Role: domain.RoleAPIKey}, nil
}

func (s *authService) GetUser(ctx context.Context, userID string) (*domain.PublicUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID string, patch repository.UserPatch) (*domain.PublicUser, error) {
	user, err := s.users.UpdateProfile(ctx, userID, patch)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

func (s *authService) hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *authService) mintToken(user *domain.User) (string, error) {
	return s.sign(user.ID, user.Email, user.Role)
}

func (s *authService) sign(userID, email, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
