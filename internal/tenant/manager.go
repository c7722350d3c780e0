package tenant

import (
	"fmt"
	"gymhub/pkg/config"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenFunc 按库名打开租户库连接
type OpenFunc func(dbName string) (*gorm.DB, error)

// Manager 租户连接管理器
// 维护 dbName -> 连接句柄的进程内缓存
// 首次建连通过 singleflight 收敛，并发首访只会创建一个客户端
type Manager struct {
	mu      sync.RWMutex
	clients map[string]*gorm.DB
	group   singleflight.Group
	open    OpenFunc
}

// NewManager 创建租户连接管理器
func NewManager(cfg *config.TenantConfig) *Manager {
	return NewManagerWithOpener(defaultOpener(cfg))
}

// NewManagerWithOpener 使用自定义建连函数创建管理器（测试用）
func NewManagerWithOpener(open OpenFunc) *Manager {
	return &Manager{
		clients: make(map[string]*gorm.DB),
		open:    open,
	}
}

// defaultOpener 在连接模板上替换库名段，打开租户库连接
func defaultOpener(cfg *config.TenantConfig) OpenFunc {
	return func(dbName string) (*gorm.DB, error) {
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, dbName, cfg.SSLMode)

		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Error),
		})
		if err != nil {
			return nil, err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetConnMaxLifetime(time.Hour)

		return db, nil
	}
}

// Get 获取指定租户库的连接句柄，已有连接直接复用
func (m *Manager) Get(dbName string) (*gorm.DB, error) {
	if dbName == "" {
		return nil, fmt.Errorf("租户库名不能为空")
	}

	m.mu.RLock()
	db, ok := m.clients[dbName]
	m.mu.RUnlock()
	if ok {
		return db, nil
	}

	// 同一库名的并发首访收敛到一次建连
	v, err, _ := m.group.Do(dbName, func() (interface{}, error) {
		m.mu.RLock()
		db, ok := m.clients[dbName]
		m.mu.RUnlock()
		if ok {
			return db, nil
		}

		opened, err := m.open(dbName)
		if err != nil {
			return nil, err
		}

		m.mu.Lock()
		m.clients[dbName] = opened
		m.mu.Unlock()
		return opened, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*gorm.DB), nil
}

// Len 当前缓存的连接数
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// Close 关闭并移除指定租户库的连接
func (m *Manager) Close(dbName string) error {
	m.mu.Lock()
	db, ok := m.clients[dbName]
	delete(m.clients, dbName)
	m.mu.Unlock()

	if !ok {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CloseAll 关闭所有租户库连接（服务关闭时调用）
func (m *Manager) CloseAll() error {
	m.mu.Lock()
	clients := m.clients
	m.clients = make(map[string]*gorm.DB)
	m.mu.Unlock()

	var lastErr error
	for name, db := range clients {
		sqlDB, err := db.DB()
		if err != nil {
			lastErr = fmt.Errorf("获取 %s 底层连接失败: %v", name, err)
			continue
		}
		if err := sqlDB.Close(); err != nil {
			lastErr = fmt.Errorf("关闭 %s 连接失败: %v", name, err)
		}
	}
	return lastErr
}
