package domain

import "errors"

// Sentinel errors for the inventory service. Handlers map these to HTTP
// status codes with errors.Is; nothing below is ever swallowed.
var (
	// ErrInvalidInput covers malformed or missing required fields, including
	// non-positive movement quantities and unknown movement directions.
	ErrInvalidInput = errors.New("invalid input")

	// ErrProductoNotFound is returned when a product is absent or inactive.
	ErrProductoNotFound = errors.New("producto not found")

	// ErrCategoriaNotFound is returned for lookups of absent categories.
	ErrCategoriaNotFound = errors.New("categoria not found")

	// ErrProveedorNotFound is returned for lookups of absent suppliers.
	ErrProveedorNotFound = errors.New("proveedor not found")

	// ErrEnUso blocks deleting a category or supplier that active products
	// still reference.
	ErrEnUso = errors.New("resource still referenced by active products")
)
