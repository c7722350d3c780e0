package main

import (
	"errors"
	"gymhub/internal/database"
	"gymhub/internal/router"
	"gymhub/internal/services"
	"gymhub/internal/tenant"
	"gymhub/pkg/config"
	"gymhub/pkg/logger"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	if err := logger.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	appLogger := logger.GetLogger()
	appLogger.Info("Starting GymHub...")

	// 初始化核心库
	if err := database.Initialize(cfg); err != nil {
		appLogger.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			appLogger.Error("Failed to close database:", err)
		}
	}()

	// 执行核心库迁移
	if err := database.Migrate(); err != nil {
		appLogger.Fatalf("Failed to migrate database: %v", err)
	}

	// 租户库连接管理器
	tenants := tenant.NewManager(&cfg.Tenant)
	defer func() {
		if err := tenants.CloseAll(); err != nil {
			appLogger.Error("Failed to close tenant connections:", err)
		}
	}()

	// 设置Gin模式
	gin.SetMode(cfg.Server.Mode)

	// 启动开通补偿调度器（在路由初始化前）
	provisioner := tenant.NewProvisioner(&cfg.Tenant, tenants)
	gymService := services.NewGymService(database.GetDB(), provisioner)
	provisionScheduler := services.NewProvisionScheduler(gymService)
	if err := provisionScheduler.Start(); err != nil {
		appLogger.Errorf("Failed to start provision scheduler: %v", err)
		// 不影响主服务启动
	}
	defer provisionScheduler.Stop()

	// 设置路由
	r := router.SetupRouter(cfg, tenants)

	// 启动服务器
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// 启动服务
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalf("Failed to start server: %v", err)
		}
	}()

	appLogger.Infof("Server started on port %s", cfg.Server.Port)

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	if err := server.Close(); err != nil {
		appLogger.Error("Server forced to shutdown:", err)
	}
	appLogger.Info("Server exited")
}
