package repositories

import (
	"sort"
	"strings"
	"sync"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
)

// AuthRepository defines the storage operations for users.
type AuthRepository interface {
	CreateUser(user *models.User, hashedPassword string) (string, error)
	FindUserByUsername(username string) (*models.User, string, error) // Returns User, HashedPassword, Error
	FindUserByID(userID string) (*models.User, error)
	ListUsers() ([]models.User, error)
}

type authRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

// NewAuthRepository creates an empty in-memory AuthRepository.
func NewAuthRepository() AuthRepository {
	return &authRepository{users: make(map[string]models.User)}
}

// CreateUser stores a user. Usernames are unique ignoring case.
func (r *authRepository) CreateUser(user *models.User, hashedPassword string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Username, user.Username) {
			return "", ErrDuplicateKey
		}
	}
	if user.ID == "" {
		user.ID = NewID()
	}
	stored := *user
	stored.PasswordHash = hashedPassword
	r.users[stored.ID] = stored
	return stored.ID, nil
}

func (r *authRepository) FindUserByUsername(username string) (*models.User, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			user := u
			hash := user.PasswordHash
			user.PasswordHash = ""
			return &user, hash, nil
		}
	}
	return nil, "", ErrNotFound
}

// FindUserByID returns the user profile without its password hash.
func (r *authRepository) FindUserByID(userID string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	u.PasswordHash = ""
	return &u, nil
}

func (r *authRepository) ListUsers() ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		u.PasswordHash = ""
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}
