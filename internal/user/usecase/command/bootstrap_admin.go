package command

import (
	"errors"
	"fmt"
	"time"

	"github.com/gianfig/TecnicasReal/internal/user/domain"
	"github.com/gianfig/TecnicasReal/pkg/auth"
)

// BootstrapAdminHandler creates the first-run admin account
type BootstrapAdminHandler struct {
	repo domain.UserRepository
}

// NewBootstrapAdminHandler creates a new bootstrap handler
func NewBootstrapAdminHandler(repo domain.UserRepository) *BootstrapAdminHandler {
	return &BootstrapAdminHandler{repo: repo}
}

// Handle ensures a user named "admin" exists. When it already does, the call
// is a no-op, so running it on every service start is safe. Returns the
// admin user and whether it was created by this call.
func (h *BootstrapAdminHandler) Handle() (*domain.User, bool, error) {
	existing, err := h.repo.FindByUsername("admin")
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, err
	}

	hashedPassword, err := auth.HashPassword(domain.BootstrapAdminPassword)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &domain.User{
		Username:  "admin",
		Password:  hashedPassword,
		Role:      domain.RoleAdmin,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.repo.Create(admin); err != nil {
		return nil, false, err
	}

	return admin, true, nil
}
