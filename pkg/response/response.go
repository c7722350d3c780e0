package response

import (
	"gymhub/pkg/errors"
	"gymhub/pkg/pagination"

	"github.com/gin-gonic/gin"
)

// ErrorBody 统一错误返回格式
type ErrorBody struct {
	Error string `json:"error"`
}

// ========== 基础返回方法 ==========

// Success 成功返回
func Success(c *gin.Context, data interface{}) {
	c.JSON(errors.CodeSuccess, data)
}

// Created 创建成功返回
func Created(c *gin.Context, data interface{}) {
	c.JSON(errors.CodeCreated, data)
}

// SuccessWithPage 分页成功返回
func SuccessWithPage(c *gin.Context, key string, data interface{}, pageInfo *pagination.PageInfo) {
	c.JSON(errors.CodeSuccess, gin.H{
		key:          data,
		"pagination": pageInfo,
	})
}

// Error 通用错误返回（HTTP状态码与业务码一致）
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorBody{Error: message})
}

// ========== HTTP错误快捷方法 ==========

func BadRequest(c *gin.Context, message string) {
	Error(c, errors.CodeInvalidParam, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, errors.CodeUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, errors.CodeForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, errors.CodeNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, errors.CodeConflict, message)
}

func ServerError(c *gin.Context, message string) {
	Error(c, errors.CodeServerError, message)
}
