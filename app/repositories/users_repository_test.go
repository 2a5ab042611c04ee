package repositories

import (
	"context"
	"testing"

	"github.com/Rakhulsr/go-kindergarten/app/db/testdb"
	"github.com/Rakhulsr/go-kindergarten/app/helpers"
	"github.com/Rakhulsr/go-kindergarten/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateStoresGivenHash(t *testing.T) {
	db := testdb.Open(t)
	repo := NewUserRepository(db)

	hash, err := helpers.HashPassword("rahasia123")
	require.NoError(t, err)

	user := &models.User{Name: "Bu Rina", Email: " Rina@TK.test ", Password: hash}
	require.NoError(t, repo.Create(context.Background(), user))

	stored, err := repo.FindByEmail(context.Background(), "rina@tk.test")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, hash, stored.Password)
	assert.Equal(t, models.RoleAdmin, stored.Role)
}

func TestUserRepository_UpdateIsAllOrNothing(t *testing.T) {
	db := testdb.Open(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	testdb.User(t, db, "admin@tk.test", models.RoleAdmin)
	staff := testdb.User(t, db, "staff@tk.test", models.RoleStaff)
	newHash, err := helpers.HashPassword("baru12345")
	require.NoError(t, err)

	t.Run("failed profile write keeps the old password", func(t *testing.T) {
		clash := *staff
		clash.Name = "Staf Baru"
		clash.Email = "admin@tk.test"
		require.Error(t, repo.Update(ctx, &clash, newHash))

		stored, err := repo.FindByID(ctx, staff.ID)
		require.NoError(t, err)
		assert.Equal(t, staff.Name, stored.Name)
		assert.Equal(t, "staff@tk.test", stored.Email)
		assert.True(t, helpers.PasswordCompare(stored.Password, []byte(testdb.Password)))
	})

	t.Run("profile and password together", func(t *testing.T) {
		update := *staff
		update.Name = "Staf TU"
		require.NoError(t, repo.Update(ctx, &update, newHash))

		stored, err := repo.FindByID(ctx, staff.ID)
		require.NoError(t, err)
		assert.Equal(t, "Staf TU", stored.Name)
		assert.True(t, helpers.PasswordCompare(stored.Password, []byte("baru12345")))
	})

	t.Run("empty hash leaves password alone", func(t *testing.T) {
		update := *staff
		update.Name = "Staf Lagi"
		require.NoError(t, repo.Update(ctx, &update, ""))

		stored, err := repo.FindByID(ctx, staff.ID)
		require.NoError(t, err)
		assert.Equal(t, "Staf Lagi", stored.Name)
		assert.True(t, helpers.PasswordCompare(stored.Password, []byte("baru12345")))
	})
}
