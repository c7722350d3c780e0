package handlers

import (
	"errors"
	"gymhub/internal/services"
	"gymhub/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role"`
}

// Create 注册核心库用户
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请填写所有必填字段")
		return
	}

	user, err := h.userService.Create(req.Email, req.Password, req.Name, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailExists):
			response.Conflict(c, "邮箱已被注册")
		case errors.Is(err, services.ErrInvalidRole):
			response.BadRequest(c, "无效的用户角色")
		default:
			response.ServerError(c, "创建用户失败")
		}
		return
	}

	response.Created(c, gin.H{"user": user})
}
