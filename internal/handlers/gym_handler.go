package handlers

import (
	"errors"
	"gymhub/internal/middleware"
	"gymhub/internal/services"
	"gymhub/pkg/response"
	"strings"

	"github.com/gin-gonic/gin"
)

type GymHandler struct {
	gymService *services.GymService
}

func NewGymHandler(gymService *services.GymService) *GymHandler {
	return &GymHandler{gymService: gymService}
}

type CreateGymRequest struct {
	Name    string `json:"name" binding:"required"`
	OwnerID uint   `json:"ownerId" binding:"required"`
}

type AddGymAdminRequest struct {
	UserID uint `json:"userId" binding:"required"`
}

// Create 登记健身房并触发租户库开通
func (h *GymHandler) Create(c *gin.Context) {
	var req CreateGymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请填写健身房名称和所有者ID")
		return
	}

	gym, err := h.gymService.Create(req.Name, req.OwnerID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOwnerNotFound):
			response.BadRequest(c, "健身房所有者不存在")
		case errors.Is(err, services.ErrDBNameTaken):
			response.Conflict(c, "同名健身房已存在")
		case strings.Contains(err.Error(), "名称"):
			response.BadRequest(c, err.Error())
		default:
			// 核心行可能已写入，开通状态留在failed等待调度器重试
			response.ServerError(c, "健身房开通失败")
		}
		return
	}

	response.Success(c, gym)
}

// List 查询当前用户可访问的健身房列表
func (h *GymHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "需要认证令牌")
		return
	}

	gyms, err := h.gymService.ListForUser(userID)
	if err != nil {
		response.ServerError(c, "查询健身房列表失败")
		return
	}

	response.Success(c, gin.H{"gyms": gyms})
}

// AddAdmin 授权用户管理指定健身房
func (h *GymHandler) AddAdmin(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "需要认证令牌")
		return
	}

	gymID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "健身房ID格式错误")
		return
	}

	// 只有所有者可以授权管理员
	gym, err := h.gymService.GetByID(gymID)
	if err != nil {
		response.NotFound(c, "健身房不存在")
		return
	}
	if gym.OwnerID != userID {
		response.Forbidden(c, "只有健身房所有者可以授权管理员")
		return
	}

	var req AddGymAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请填写用户ID")
		return
	}

	admin, err := h.gymService.AddAdmin(req.UserID, gymID)
	if err != nil {
		if strings.Contains(err.Error(), "已是") {
			response.Conflict(c, err.Error())
			return
		}
		response.ServerError(c, "授权管理员失败")
		return
	}

	response.Created(c, admin)
}
