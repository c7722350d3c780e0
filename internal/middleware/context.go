package middleware

import (
	"github.com/gin-gonic/gin"
)

// 请求上下文键：认证过滤器与租户解析过滤器向下游传递的契约
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUser     = "user"
	ContextKeyRole     = "role"
	ContextKeyGymID    = "gym_id"
	ContextKeyTenantDB = "tenant_db"
)

// HeaderGymID 客户端显式选择健身房时使用的请求头
const HeaderGymID = "X-Gym-ID"

// GetUserID 从上下文获取认证用户ID
func GetUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// GetTenantDB 从上下文获取已解析的租户库名
func GetTenantDB(c *gin.Context) (string, bool) {
	v, exists := c.Get(ContextKeyTenantDB)
	if !exists {
		return "", false
	}
	dbName, ok := v.(string)
	if !ok || dbName == "" {
		return "", false
	}
	return dbName, true
}

// GetGymID 从上下文获取已解析的健身房ID
func GetGymID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(ContextKeyGymID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
