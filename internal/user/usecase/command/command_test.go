package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gianfig/TecnicasReal/internal/user/domain"
	"github.com/gianfig/TecnicasReal/pkg/auth"
)

// mockUserRepository is an in-memory UserRepository for tests
type mockUserRepository struct {
	users  map[string]*domain.User
	nextID uint
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:  make(map[string]*domain.User),
		nextID: 1,
	}
}

func (m *mockUserRepository) Create(user *domain.User) error {
	if _, exists := m.users[user.Username]; exists {
		return domain.ErrUsernameTaken
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.Username] = user
	return nil
}

func (m *mockUserRepository) FindByID(id uint) (*domain.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) FindByUsername(username string) (*domain.User, error) {
	if u, ok := m.users[username]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) FindAll(limit, offset int) ([]domain.User, error) {
	users := []domain.User{}
	for _, u := range m.users {
		users = append(users, *u)
	}
	return users, nil
}

func (m *mockUserRepository) Update(user *domain.User) error {
	for name, u := range m.users {
		if u.ID == user.ID {
			m.users[name] = user
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (m *mockUserRepository) Count() (int64, error) {
	return int64(len(m.users)), nil
}

func TestRegisterUser(t *testing.T) {
	repo := newMockUserRepository()
	handler := NewRegisterUserHandler(repo)

	user, err := handler.Handle(RegisterUserCommand{
		Username: "maria",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "maria", user.Username)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.True(t, user.IsActive)

	// Stored password must be a hash of the original
	assert.NotEqual(t, "secret123", user.Password)
	assert.True(t, auth.CheckPassword(user.Password, "secret123"))
}

func TestRegisterUserShortUsername(t *testing.T) {
	handler := NewRegisterUserHandler(newMockUserRepository())

	_, err := handler.Handle(RegisterUserCommand{Username: "ab", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterUserShortPassword(t *testing.T) {
	handler := NewRegisterUserHandler(newMockUserRepository())

	_, err := handler.Handle(RegisterUserCommand{Username: "maria", Password: "12345"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterUserDuplicateUsername(t *testing.T) {
	repo := newMockUserRepository()
	handler := NewRegisterUserHandler(repo)

	_, err := handler.Handle(RegisterUserCommand{Username: "maria", Password: "secret123"})
	require.NoError(t, err)

	_, err = handler.Handle(RegisterUserCommand{Username: "maria", Password: "otherpass"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestRegisterUserInvalidRole(t *testing.T) {
	handler := NewRegisterUserHandler(newMockUserRepository())

	_, err := handler.Handle(RegisterUserCommand{
		Username: "maria",
		Password: "secret123",
		Role:     "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoginAfterRegister(t *testing.T) {
	repo := newMockUserRepository()
	register := NewRegisterUserHandler(repo)
	login := NewLoginUserHandler(repo)

	_, err := register.Handle(RegisterUserCommand{Username: "maria", Password: "secret123"})
	require.NoError(t, err)

	resp, err := login.Handle(LoginUserCommand{Username: "maria", Password: "secret123"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "maria", resp.User.Username)

	claims, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "maria", claims.Username)
}

// Unknown username and wrong password must be indistinguishable so callers
// cannot probe which accounts exist.
func TestLoginFailuresAreUniform(t *testing.T) {
	repo := newMockUserRepository()
	register := NewRegisterUserHandler(repo)
	login := NewLoginUserHandler(repo)

	_, err := register.Handle(RegisterUserCommand{Username: "maria", Password: "secret123"})
	require.NoError(t, err)

	_, errWrongPass := login.Handle(LoginUserCommand{Username: "maria", Password: "wrong"})
	_, errNoUser := login.Handle(LoginUserCommand{Username: "nobody", Password: "secret123"})

	assert.ErrorIs(t, errWrongPass, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errNoUser, domain.ErrInvalidCredentials)
	assert.Equal(t, errWrongPass.Error(), errNoUser.Error())
}

func TestLoginInactiveUser(t *testing.T) {
	repo := newMockUserRepository()
	register := NewRegisterUserHandler(repo)
	login := NewLoginUserHandler(repo)

	user, err := register.Handle(RegisterUserCommand{Username: "maria", Password: "secret123"})
	require.NoError(t, err)

	user.IsActive = false
	require.NoError(t, repo.Update(user))

	_, err = login.Handle(LoginUserCommand{Username: "maria", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestBootstrapAdmin(t *testing.T) {
	repo := newMockUserRepository()
	handler := NewBootstrapAdminHandler(repo)

	admin, created, err := handler.Handle()
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "admin", admin.Username)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.True(t, auth.CheckPassword(admin.Password, domain.BootstrapAdminPassword))

	// Second run is a no-op
	again, created, err := handler.Handle()
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, admin.ID, again.ID)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestToggleActive(t *testing.T) {
	repo := newMockUserRepository()
	register := NewRegisterUserHandler(repo)
	toggle := NewToggleActiveHandler(repo)

	user, err := register.Handle(RegisterUserCommand{Username: "maria", Password: "secret123"})
	require.NoError(t, err)

	updated, err := toggle.Handle(ToggleActiveCommand{UserID: user.ID, IsActive: false})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	_, err = toggle.Handle(ToggleActiveCommand{UserID: 999, IsActive: true})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
