package handlers

import (
	"errors"
	"gymhub/internal/models"
	"gymhub/internal/services"
	"gymhub/pkg/pagination"
	"gymhub/pkg/response"
	"time"

	"github.com/gin-gonic/gin"
)

type PTSessionHandler struct {
	ptSessionService *services.PTSessionService
}

func NewPTSessionHandler(ptSessionService *services.PTSessionService) *PTSessionHandler {
	return &PTSessionHandler{ptSessionService: ptSessionService}
}

type CreatePTSessionRequest struct {
	MemberID    uint   `json:"memberId" binding:"required"`
	TrainerID   uint   `json:"trainerId" binding:"required"`
	ScheduledAt string `json:"scheduledAt" binding:"required"`
	Note        string `json:"note"`
}

type UpdatePTSessionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=reserved done canceled"`
}

// List PT课程查询（分页），可按会员/教练/状态过滤
func (h *PTSessionHandler) List(c *gin.Context) {
	dbName, ok := requireTenantDB(c)
	if !ok {
		return
	}

	memberID := parseUintQuery(c, "memberId")
	trainerID := parseUintQuery(c, "trainerId")
	status := c.Query("status")
	params := pagination.ParsePageParams(c)

	sessions, total, err := h.ptSessionService.GetWithFiltersAndPage(dbName, memberID, trainerID, status, params.Page, params.Limit)
	if err != nil {
		response.ServerError(c, "查询PT课程失败")
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.Limit, total)
	response.SuccessWithPage(c, "sessions", sessions, pageInfo)
}

// Create 预约PT课程
func (h *PTSessionHandler) Create(c *gin.Context) {
	dbName, ok := requireTenantDB(c)
	if !ok {
		return
	}

	var req CreatePTSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请填写会员、教练和上课时间")
		return
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		response.BadRequest(c, "上课时间格式错误")
		return
	}

	session := &models.PTSession{
		MemberID:    req.MemberID,
		TrainerID:   req.TrainerID,
		ScheduledAt: scheduledAt,
	}
	if req.Note != "" {
		session.Note = &req.Note
	}

	created, err := h.ptSessionService.Create(dbName, session)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMemberNotFound):
			response.BadRequest(c, "会员不存在")
		case errors.Is(err, services.ErrTrainerNotFound):
			response.BadRequest(c, "教练不存在")
		case errors.Is(err, services.ErrInvalidStatus):
			response.BadRequest(c, "课程状态不合法")
		default:
			response.ServerError(c, "预约PT课程失败")
		}
		return
	}

	response.Created(c, created)
}

// UpdateStatus 更新课程状态（完成/取消）
func (h *PTSessionHandler) UpdateStatus(c *gin.Context) {
	dbName, ok := requireTenantDB(c)
	if !ok {
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "课程ID格式错误")
		return
	}

	var req UpdatePTSessionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "课程状态不合法")
		return
	}

	session, err := h.ptSessionService.UpdateStatus(dbName, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			response.NotFound(c, "课程不存在")
		case errors.Is(err, services.ErrInvalidStatus):
			response.BadRequest(c, "课程状态不合法")
		default:
			response.ServerError(c, "更新课程状态失败")
		}
		return
	}

	response.Success(c, session)
}
