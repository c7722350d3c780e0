package router

import (
	"gymhub/internal/database"
	"gymhub/internal/handlers"
	"gymhub/internal/middleware"
	"gymhub/internal/services"
	"gymhub/internal/tenant"
	"gymhub/pkg/config"
	"gymhub/pkg/jwt"
	"gymhub/pkg/response"
	"time"

	"github.com/gin-gonic/gin"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, tenants *tenant.Manager) *gin.Engine {
	router := gin.New()

	// 中间件
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.RequestID())
	router.Use(middleware.SetupCORS())

	handlers.RegisterValidators()

	// 注册路由
	registerRoutes(router, cfg, tenants)
	return router
}

// 注册所有路由
func registerRoutes(router *gin.Engine, cfg *config.Config, tenants *tenant.Manager) {

	db := database.GetDB()
	jwtManager := jwt.GetJWTManager()

	userService := services.NewUserService(db)
	provisioner := tenant.NewProvisioner(&cfg.Tenant, tenants)
	gymService := services.NewGymService(db, provisioner)

	auth := middleware.NewAuthMiddleware(userService, jwtManager)
	tenantResolver := middleware.NewTenantMiddleware(gymService)

	// API路由组
	api := router.Group("/api/v1")
	{
		// 健康检查接口
		api.GET("/health", healthCheck)
		api.GET("/ping", ping)

		// JWT认证路由
		authHandler := handlers.NewAuthHandler(userService, jwtManager)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login) // 用户登录

			// 获取当前用户完整信息
			authGroup.GET("/me", auth.RequireLogin(), authHandler.Me)
		}

		// 平台用户路由（注册无需认证）
		userHandler := handlers.NewUserHandler(userService)
		users := api.Group("/core/users")
		{
			users.POST("", userHandler.Create)
		}

		// 场馆路由（需要登录）
		gymHandler := handlers.NewGymHandler(gymService)
		gyms := api.Group("/gyms", auth.RequireLogin())
		{
			gyms.POST("", gymHandler.Create)                 // 开通场馆（触发租户库创建）
			gyms.GET("", gymHandler.List)                    // 当前用户可访问的场馆
			gyms.POST("/:id/admins", gymHandler.AddAdmin)    // 授予管理员（仅馆主）
		}

		// 租户路由（需要登录 + 租户解析）
		tenantGroup := api.Group("/tenant", auth.RequireLogin(), tenantResolver.RequireTenant())
		{
			memberHandler := handlers.NewMemberHandler(services.NewMemberService(tenants))
			members := tenantGroup.Group("/members")
			{
				members.GET("", memberHandler.List)
				members.POST("", memberHandler.Create)
				members.GET("/:id", memberHandler.GetByID)
				members.PUT("/:id", memberHandler.Update)
				members.DELETE("/:id", memberHandler.Delete)
			}

			trainerHandler := handlers.NewTrainerHandler(services.NewTrainerService(tenants))
			trainers := tenantGroup.Group("/trainers")
			{
				trainers.GET("", trainerHandler.List)
				trainers.POST("", trainerHandler.Create)
				trainers.GET("/:id", trainerHandler.GetByID)
				trainers.PUT("/:id", trainerHandler.Update)
				trainers.DELETE("/:id", trainerHandler.Delete)
			}

			productHandler := handlers.NewProductHandler(services.NewProductService(tenants))
			products := tenantGroup.Group("/products")
			{
				products.GET("", productHandler.List)
				products.POST("", productHandler.Create)
				products.GET("/:id", productHandler.GetByID)
				products.POST("/:id/deactivate", productHandler.Deactivate)
			}

			paymentHandler := handlers.NewPaymentHandler(services.NewPaymentService(tenants))
			payments := tenantGroup.Group("/payments")
			{
				payments.GET("", paymentHandler.List)
				payments.POST("", paymentHandler.Create)
				payments.GET("/:id", paymentHandler.GetByID)
			}

			ptSessionHandler := handlers.NewPTSessionHandler(services.NewPTSessionService(tenants))
			ptSessions := tenantGroup.Group("/pt-sessions")
			{
				ptSessions.GET("", ptSessionHandler.List)
				ptSessions.POST("", ptSessionHandler.Create)
				ptSessions.PUT("/:id/status", ptSessionHandler.UpdateStatus)
			}

			attendanceHandler := handlers.NewAttendanceHandler(services.NewAttendanceService(tenants))
			attendances := tenantGroup.Group("/attendances")
			{
				attendances.GET("", attendanceHandler.List)
				attendances.POST("", attendanceHandler.Create)
			}
		}
	}
}

func healthCheck(c *gin.Context) {
	data := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now(),
		"service":   "GymHub",
		"version":   "1.0.0",
	}
	response.Success(c, data)
}

func ping(c *gin.Context) {
	response.Success(c, gin.H{"message": "pong"})
}
