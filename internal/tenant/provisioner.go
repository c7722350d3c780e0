package tenant

import (
	"fmt"
	"gymhub/internal/models"
	"gymhub/pkg/config"
	"gymhub/pkg/logger"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Provisioner 租户库开通器
// 根据健身房名称派生库名，创建物理库并应用固定的租户表结构
type Provisioner struct {
	cfg     *config.TenantConfig
	manager *Manager

	// createDB 可注入，测试时替换掉真实建库步骤
	createDB func(dbName string) error
}

// NewProvisioner 创建租户库开通器
func NewProvisioner(cfg *config.TenantConfig, manager *Manager) *Provisioner {
	p := &Provisioner{
		cfg:     cfg,
		manager: manager,
	}
	p.createDB = p.createDatabase
	return p
}

// NewProvisionerWithCreator 使用自定义建库函数创建开通器（测试用）
func NewProvisionerWithCreator(cfg *config.TenantConfig, manager *Manager, createDB func(dbName string) error) *Provisioner {
	p := NewProvisioner(cfg, manager)
	p.createDB = createDB
	return p
}

// DeriveDBName 派生租户库名：固定前缀 + 名称slug
func (p *Provisioner) DeriveDBName(gymName string) string {
	return p.cfg.Prefix + Slugify(gymName)
}

// Provision 开通租户库并返回库名
// 建库和迁移均为幂等操作，失败后可安全重试
func (p *Provisioner) Provision(gymName string) (string, error) {
	slug := Slugify(gymName)
	if slug == "" {
		return "", fmt.Errorf("健身房名称无法派生出有效的库名")
	}
	dbName := p.cfg.Prefix + slug

	if err := p.createDB(dbName); err != nil {
		return "", fmt.Errorf("创建租户库 %s 失败: %v", dbName, err)
	}

	if err := p.migrate(dbName); err != nil {
		return "", fmt.Errorf("租户库 %s 结构迁移失败: %v", dbName, err)
	}

	logger.GetLogger().Infof("租户库 %s 开通完成", dbName)
	return dbName, nil
}

// createDatabase 在管理连接上建库
// Postgres 没有 CREATE DATABASE IF NOT EXISTS，先查 pg_database 再建
// 已存在视为成功，重复开通是空操作
func (p *Provisioner) createDatabase(dbName string) error {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.cfg.Host, p.cfg.Port, p.cfg.User, p.cfg.Password, p.cfg.AdminDB, p.cfg.SSLMode)

	admin, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("管理连接失败: %v", err)
	}
	defer func() {
		if sqlDB, err := admin.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	var count int64
	if err := admin.Raw("SELECT COUNT(1) FROM pg_database WHERE datname = ?", dbName).Scan(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if err := admin.Exec(fmt.Sprintf(`CREATE DATABASE %q`, dbName)).Error; err != nil {
		// 并发建库时可能在查与建之间被别人抢先，同样视为成功
		if strings.Contains(err.Error(), "already exists") || strings.Contains(err.Error(), "42P04") {
			return nil
		}
		return err
	}
	return nil
}

// migrate 对租户库应用固定表结构模板
func (p *Provisioner) migrate(dbName string) error {
	db, err := p.manager.Get(dbName)
	if err != nil {
		return err
	}
	return db.AutoMigrate(models.TenantModels()...)
}
