package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/Rakhulsr/go-kindergarten/app/db/testdb"
	"github.com/Rakhulsr/go-kindergarten/app/helpers"
	"github.com/Rakhulsr/go-kindergarten/app/models"
	"github.com/Rakhulsr/go-kindergarten/app/models/other"
	"github.com/Rakhulsr/go-kindergarten/app/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService(t *testing.T) {
	db := testdb.Open(t)
	svc := NewUserService(repositories.NewUserRepository(db))
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateUserInput{Name: "Bu Guru", Email: "Guru@TK.test", Password: "rahasia123"})
	require.NoError(t, err)
	assert.Equal(t, "guru@tk.test", created.Email)
	assert.Equal(t, models.RoleAdmin, created.Role)
	assert.True(t, helpers.PasswordCompare(created.Password, []byte("rahasia123")))

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateUserInput{Name: "Lain", Email: "guru@tk.test", Password: "rahasia123"})
		assert.Equal(t, http.StatusConflict, helpers.StatusOf(err))
	})

	staff, err := svc.Create(ctx, CreateUserInput{Name: "Staf", Email: "staf@tk.test", Password: "rahasia123", Role: models.RoleStaff})
	require.NoError(t, err)

	t.Run("update keeps password when empty", func(t *testing.T) {
		updated, err := svc.Update(ctx, staff.ID, UpdateUserInput{Name: "Staf TU", Email: "staf@tk.test", Role: models.RoleStaff})
		require.NoError(t, err)
		assert.Equal(t, "Staf TU", updated.Name)
		assert.True(t, helpers.PasswordCompare(updated.Password, []byte("rahasia123")))
	})

	t.Run("update changes password", func(t *testing.T) {
		updated, err := svc.Update(ctx, staff.ID, UpdateUserInput{Name: "Staf TU", Email: "staf@tk.test", Password: "baru12345", Role: models.RoleStaff})
		require.NoError(t, err)
		assert.True(t, helpers.PasswordCompare(updated.Password, []byte("baru12345")))
	})

	t.Run("update to a taken email", func(t *testing.T) {
		_, err := svc.Update(ctx, staff.ID, UpdateUserInput{Name: "Staf", Email: "guru@tk.test", Role: models.RoleStaff})
		assert.Equal(t, http.StatusConflict, helpers.StatusOf(err))
	})

	t.Run("list with search", func(t *testing.T) {
		users, total, err := svc.List(ctx, other.UserFilter{PageQuery: other.PageQuery{Page: 1, Limit: 10}, Search: "staf"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, staff.ID, users[0].ID)
	})

	t.Run("cannot delete self", func(t *testing.T) {
		err := svc.Delete(ctx, created.ID, created.ID)
		assert.Equal(t, http.StatusBadRequest, helpers.StatusOf(err))
	})

	t.Run("delete other user", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, staff.ID, created.ID))
		_, err := svc.Get(ctx, staff.ID)
		assert.Equal(t, http.StatusNotFound, helpers.StatusOf(err))
	})
}
