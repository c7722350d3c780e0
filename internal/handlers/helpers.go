package handlers

import (
	"gymhub/internal/middleware"
	"gymhub/pkg/response"
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseIDParam 解析路径中的数字ID
func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// parseUintQuery 解析查询参数中的数字ID，缺省为0
func parseUintQuery(c *gin.Context, name string) uint {
	value := c.Query(name)
	if value == "" {
		return 0
	}
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

// requireTenantDB 获取本次请求解析出的租户库名
// 未经过租户解析的请求直接返回400，不触发任何库访问
func requireTenantDB(c *gin.Context) (string, bool) {
	dbName, ok := middleware.GetTenantDB(c)
	if !ok {
		response.BadRequest(c, "缺少租户库信息")
		return "", false
	}
	return dbName, true
}
