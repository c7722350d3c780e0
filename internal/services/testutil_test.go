package services

import (
	"gymhub/internal/models"
	"gymhub/internal/tenant"
	"gymhub/pkg/config"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupCoreDB 建一个带核心表结构的内存库
func setupCoreDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Gym{}, &models.GymAdmin{}))
	return db
}

// setupTenantManager 建一个内存租户管理器，每个库名对应独立的内存库
func setupTenantManager(t *testing.T) *tenant.Manager {
	t.Helper()

	return tenant.NewManagerWithOpener(func(dbName string) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	})
}

// setupGymService 组装核心库 + 租户管理器 + 假建库步骤的健身房服务
func setupGymService(t *testing.T, createDB func(dbName string) error) (*GymService, *gorm.DB, *tenant.Manager) {
	t.Helper()

	db := setupCoreDB(t)
	manager := setupTenantManager(t)
	if createDB == nil {
		createDB = func(string) error { return nil }
	}

	cfg := &config.TenantConfig{Prefix: "gym_"}
	provisioner := tenant.NewProvisionerWithCreator(cfg, manager, createDB)
	return NewGymService(db, provisioner), db, manager
}

// createTestUser 注册一个测试用户
func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{Email: email, Name: "测试用户", Role: models.RoleAdmin}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, db.Create(user).Error)
	return user
}
