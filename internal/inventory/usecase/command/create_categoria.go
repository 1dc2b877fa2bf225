package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/gianfig/TecnicasReal/internal/inventory/domain"
)

// CreateCategoriaCommand represents the data needed to create a category
type CreateCategoriaCommand struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

// CreateCategoriaHandler handles category creation
type CreateCategoriaHandler struct {
	repo domain.CategoriaRepository
}

// NewCreateCategoriaHandler creates a new CreateCategoriaHandler
func NewCreateCategoriaHandler(repo domain.CategoriaRepository) *CreateCategoriaHandler {
	return &CreateCategoriaHandler{repo: repo}
}

// Handle executes the category creation
func (h *CreateCategoriaHandler) Handle(cmd CreateCategoriaCommand) (*domain.Categoria, error) {
	nombre := strings.TrimSpace(cmd.Nombre)
	if nombre == "" {
		return nil, fmt.Errorf("%w: nombre is required", domain.ErrInvalidInput)
	}

	categoria := &domain.Categoria{
		Nombre:        nombre,
		Descripcion:   strings.TrimSpace(cmd.Descripcion),
		FechaCreacion: time.Now(),
	}

	if err := h.repo.Create(categoria); err != nil {
		return nil, fmt.Errorf("failed to create categoria: %w", err)
	}

	return categoria, nil
}
