package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/repositories"
	"github.com/alejo890gemini-rgb/loco-alitas-4/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// --- Custom Service Errors ---
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameExists     = errors.New("username already exists")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

// --- Data Transfer Objects (DTOs) ---

// LoginRequest DTO
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterUserRequest DTO
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"` // admin or waiter, waiter when empty
}

// AuthResponse DTO
type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"` // seconds
}

// --- AuthService Interface ---
type AuthService interface {
	RegisterUser(req RegisterUserRequest) (*models.User, error)
	LoginUser(req LoginRequest) (*AuthResponse, error)
	GetUserProfile(userID string) (*models.User, error)
	ListUsers() ([]models.User, error)
	EnsureAdmin(username, password string) error
}

// --- authService Implementation ---
type authService struct {
	authRepo repositories.AuthRepository
	tokens   *utils.JWTManager
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(authRepo repositories.AuthRepository, tokens *utils.JWTManager) AuthService {
	return &authService{authRepo: authRepo, tokens: tokens}
}

// RegisterUser handles the business logic for user registration.
func (s *authService) RegisterUser(req RegisterUserRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if !utils.IsValidPasswordLength(req.Password, minPasswordLength) {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	role := models.RoleWaiter
	if req.Role != "" {
		if !models.IsValidRole(strings.ToLower(req.Role)) {
			return nil, fmt.Errorf("%w: unknown role '%s'", ErrValidation, req.Role)
		}
		role = models.Role(strings.ToLower(req.Role))
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := timeNow()
	user := models.User{
		Username:  username,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.authRepo.CreateUser(&user, string(hashedPasswordBytes)); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: '%s'", ErrUsernameExists, username)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	utils.LogInfo("User registered", map[string]interface{}{"user_id": user.ID, "username": user.Username, "role": string(user.Role)})
	user.PasswordHash = ""
	return &user, nil
}

// LoginUser handles user login and token generation.
func (s *authService) LoginUser(req LoginRequest) (*AuthResponse, error) {
	user, storedHashedPassword, err := s.authRepo.FindUserByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHashedPassword), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	return &AuthResponse{
		User:        user,
		AccessToken: accessToken,
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
	}, nil
}

// GetUserProfile retrieves a user's profile by their ID.
func (s *authService) GetUserProfile(userID string) (*models.User, error) {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user profile: %w", err)
	}
	return user, nil
}

func (s *authService) ListUsers() ([]models.User, error) {
	return s.authRepo.ListUsers()
}

// EnsureAdmin creates the bootstrap admin account unless the username is already taken.
func (s *authService) EnsureAdmin(username, password string) error {
	if _, _, err := s.authRepo.FindUserByUsername(username); err == nil {
		return nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}
	_, err := s.RegisterUser(RegisterUserRequest{Username: username, Password: password, Role: string(models.RoleAdmin)})
	return err
}
