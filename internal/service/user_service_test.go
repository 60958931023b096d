package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sayanabha/snowConnect/internal/domain"
)

type memoryUsers struct {
	rows   map[int32]domain.User
	nextID int32
	err    error
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{rows: map[int32]domain.User{}}
}

func (m *memoryUsers) List(context.Context) ([]domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	users := make([]domain.User, 0, len(m.rows))
	for _, u := range m.rows {
		users = append(users, u)
	}
	return users, nil
}

func (m *memoryUsers) GetByID(_ context.Context, id int32) (domain.User, bool, error) {
	u, ok := m.rows[id]
	return u, ok, m.err
}

func (m *memoryUsers) Create(_ context.Context, user *domain.User) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.nextID++
	user.ID = m.nextID
	m.rows[user.ID] = *user
	return 1, nil
}

func (m *memoryUsers) Update(_ context.Context, id int32, user domain.User) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	existing, ok := m.rows[id]
	if !ok {
		return false, nil
	}
	existing.Name, existing.Email = user.Name, user.Email
	m.rows[id] = existing
	return true, nil
}

func (m *memoryUsers) Delete(_ context.Context, id int32) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.rows[id]
	delete(m.rows, id)
	return ok, nil
}

func TestCreateUserPassesValuesThrough(t *testing.T) {
	repo := newMemoryUsers()
	svc := NewUserService(repo)

	user, affected, err := svc.CreateUser(context.Background(), " Ada ", "ada@example.com")
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)
	require.Equal(t, int32(1), user.ID)
	require.Equal(t, " Ada ", repo.rows[1].Name)
}

func TestCreateUserValidation(t *testing.T) {
	svc := NewUserService(newMemoryUsers())

	_, _, err := svc.CreateUser(context.Background(), "  ", "ada@example.com")
	require.ErrorIs(t, err, ErrInvalidUser)

	_, _, err = svc.CreateUser(context.Background(), "Ada", "")
	require.ErrorIs(t, err, ErrInvalidUser)

	_, err = svc.UpdateUser(context.Background(), 1, "", "")
	require.ErrorIs(t, err, ErrInvalidUser)
}

func TestUpdateAndDeleteReportMissingRows(t *testing.T) {
	svc := NewUserService(newMemoryUsers())
	ctx := context.Background()

	ok, err := svc.UpdateUser(ctx, 5, "Ada", "ada@example.com")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = svc.DeleteUser(ctx, 5)
	require.NoError(t, err)
	require.False(t, ok)

	_, found, err := svc.GetUser(ctx, 5)
	require.NoError(t, err)
	require.False(t, found)
}

func TestRepositoryErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	repo := newMemoryUsers()
	repo.err = boom
	svc := NewUserService(repo)

	_, err := svc.ListUsers(context.Background())
	require.ErrorIs(t, err, boom)
	_, _, err = svc.CreateUser(context.Background(), "Ada", "ada@example.com")
	require.ErrorIs(t, err, boom)
}
