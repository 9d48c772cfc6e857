package db

import (
	"testing"

	"raffle_system/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestEnsureAdminIdempotent(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open("file:bootstrap?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(gdb))

	require.NoError(t, EnsureAdmin(gdb, "Admin", "11153920", "admin@rifas.com"))
	// Second run is a no-op
	require.NoError(t, EnsureAdmin(gdb, "Admin", "11153920", "admin@rifas.com"))

	var count int64
	require.NoError(t, gdb.Model(&domain.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var admin domain.User
	require.NoError(t, gdb.Where("username = ?", "Admin").First(&admin).Error)
	assert.True(t, admin.IsAdmin)
	assert.Equal(t, "admin@rifas.com", admin.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("11153920")))
}
