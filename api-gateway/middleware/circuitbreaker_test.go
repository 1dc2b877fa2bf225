package middleware

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreakerOpensAfterMaxFailures(t *testing.T) {
	cb := NewCircuitBreaker("test", 3, time.Minute)
	failing := func() error { return errors.New("boom") }

	for i := 0; i < 3; i++ {
		assert.Error(t, cb.Call(failing))
	}
	assert.Equal(t, StateOpen, cb.GetState())

	// Open circuit rejects without calling the function
	called := false
	err := cb.Call(func() error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
}

func TestCircuitBreakerSuccessResetsFailures(t *testing.T) {
	cb := NewCircuitBreaker("test", 3, time.Minute)
	failing := func() error { return errors.New("boom") }
	ok := func() error { return nil }

	require.Error(t, cb.Call(failing))
	require.Error(t, cb.Call(failing))
	require.NoError(t, cb.Call(ok))
	require.Error(t, cb.Call(failing))
	require.Error(t, cb.Call(failing))

	// Never reached 3 consecutive failures
	assert.Equal(t, StateClosed, cb.GetState())
}

func TestCircuitBreakerRecoversThroughHalfOpen(t *testing.T) {
	cb := NewCircuitBreaker("test", 1, 10*time.Millisecond)
	require.Error(t, cb.Call(func() error { return errors.New("boom") }))
	require.Equal(t, StateOpen, cb.GetState())

	time.Sleep(20 * time.Millisecond)

	ok := func() error { return nil }
	for i := 0; i < 3; i++ {
		require.NoError(t, cb.Call(ok))
	}
	assert.Equal(t, StateClosed, cb.GetState())
}

func TestCircuitBreakerManagerReusesBreakers(t *testing.T) {
	m := NewCircuitBreakerManager()

	cb1 := m.GetOrCreate("inventario")
	cb2 := m.GetOrCreate("inventario")
	assert.Same(t, cb1, cb2)

	stats := m.GetAllStats()
	assert.Len(t, stats, 1)
}

func TestServiceForPath(t *testing.T) {
	tests := []struct {
		path    string
		service string
	}{
		{"/auth/login", "usuarios"},
		{"/auth", "usuarios"},
		{"/users/me", "usuarios"},
		{"/admin/users", "usuarios"},
		{"/productos", "inventario"},
		{"/productos/5", "inventario"},
		{"/categorias", "inventario"},
		{"/proveedores/2", "inventario"},
		{"/movimientos", "inventario"},
		{"/reportes/stock-bajo", "inventario"},
		{"/tasks/completed", "tareas"},
		{"/tasks", "tareas"},
		{"/health", ""},
		{"/", ""},
		{"/productosx", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.service, ServiceForPath(tt.path), "path %s", tt.path)
	}
}
