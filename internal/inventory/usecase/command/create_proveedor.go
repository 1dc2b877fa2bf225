package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/gianfig/TecnicasReal/internal/inventory/domain"
)

// CreateProveedorCommand represents the data needed to create a supplier
type CreateProveedorCommand struct {
	Nombre    string `json:"nombre"`
	Contacto  string `json:"contacto"`
	Telefono  string `json:"telefono"`
	Email     string `json:"email"`
	Direccion string `json:"direccion"`
}

// CreateProveedorHandler handles supplier creation
type CreateProveedorHandler struct {
	repo domain.ProveedorRepository
}

// NewCreateProveedorHandler creates a new CreateProveedorHandler
func NewCreateProveedorHandler(repo domain.ProveedorRepository) *CreateProveedorHandler {
	return &CreateProveedorHandler{repo: repo}
}

// Handle executes the supplier creation
func (h *CreateProveedorHandler) Handle(cmd CreateProveedorCommand) (*domain.Proveedor, error) {
	nombre := strings.TrimSpace(cmd.Nombre)
	if nombre == "" {
		return nil, fmt.Errorf("%w: nombre is required", domain.ErrInvalidInput)
	}

	proveedor := &domain.Proveedor{
		Nombre:        nombre,
		Contacto:      strings.TrimSpace(cmd.Contacto),
		Telefono:      strings.TrimSpace(cmd.Telefono),
		Email:         strings.TrimSpace(cmd.Email),
		Direccion:     strings.TrimSpace(cmd.Direccion),
		FechaCreacion: time.Now(),
	}

	if err := h.repo.Create(proveedor); err != nil {
		return nil, fmt.Errorf("failed to create proveedor: %w", err)
	}

	return proveedor, nil
}
