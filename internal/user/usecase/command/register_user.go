package command

import (
	"errors"
	"fmt"
	"time"

	"github.com/gianfig/TecnicasReal/internal/user/domain"
	"github.com/gianfig/TecnicasReal/pkg/auth"
)

// RegisterUserCommand represents the command to register a new user
type RegisterUserCommand struct {
	Username string
	Password string
	Role     string // Optional, defaults to "user"
}

// RegisterUserHandler handles user registration
type RegisterUserHandler struct {
	repo domain.UserRepository
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(repo domain.UserRepository) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

// Handle executes the register user command
func (h *RegisterUserHandler) Handle(cmd RegisterUserCommand) (*domain.User, error) {
	if len(cmd.Username) < domain.MinUsernameLen {
		return nil, fmt.Errorf("%w: username must be at least %d characters",
			domain.ErrInvalidInput, domain.MinUsernameLen)
	}
	if len(cmd.Password) < domain.MinPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters",
			domain.ErrInvalidInput, domain.MinPasswordLen)
	}

	// Case-sensitive exact match, so "Admin" and "admin" are distinct accounts.
	if _, err := h.repo.FindByUsername(cmd.Username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := cmd.Role
	if role == "" {
		role = domain.RoleUser
	}
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: invalid role %q", domain.ErrInvalidInput, cmd.Role)
	}

	user := &domain.User{
		Username:  cmd.Username,
		Password:  hashedPassword,
		Role:      role,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.repo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}
