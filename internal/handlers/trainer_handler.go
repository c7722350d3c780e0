package handlers

import (
	"errors"
	"gymhub/internal/models"
	"gymhub/internal/services"
	"gymhub/pkg/pagination"
	"gymhub/pkg/response"

	"github.com/gin-gonic/gin"
)

type TrainerHandler struct {
	trainerService *services.TrainerService
}

func NewTrainerHandler(trainerService *services.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

type TrainerRequest struct {
	Name        string `json:"name" binding:"required"`
	Phone       string `json:"phone" binding:"required,phone"`
	Schedule    string `json:"schedule"`
	TrainerNote string `json:"trainerNote"`
}

// List 教练列表查询（搜索 + 分页）
func (h *TrainerHandler) List(c *gin.Context) {
	dbName, ok := requireTenantDB(c)
	if !ok {
		return
	}

	search := c.Query("search")
	params := pagination.ParsePageParams(c)

	trainers, total, err := h.trainerService.GetWithFiltersAndPage(dbName, search, params.Page, params.Limit)
	if err != nil {
		response.ServerError(c, "查询教练列表失败")
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.Limit, total)
	response.SuccessWithPage(c, "trainers", trainers, pageInfo)
}

// Create 登记教练
func (h *TrainerHandler) Create(c *gin.Context) {
	dbName, ok := requireTenantDB(c)
	if !ok {
		return
	}

	var req TrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "姓名和电话为必填项")
		return
	}

	trainer := &models.Trainer{
		Name:  req.Name,
		Phone: req.Phone,
	}
	if req.Schedule != "" {
		trainer.Schedule = &req.Schedule
	}
	if req.TrainerNote != "" {
		trainer.TrainerNote = &req.TrainerNote
	}

	created, err := h.trainerService.Create(dbName, trainer)
	if err != nil {
		response.ServerError(c, "登记教练失败")
		return
	}

	response.Created(c, created)
}

// GetByID 获取教练详情
func (h *TrainerHandler) GetByID(c *gin.Context) {
	dbName, ok := requireTenantDB(c)
	if !ok {
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "教练ID格式错误")
		return
	}

	trainer, err := h.trainerService.GetByID(dbName, id)
	if err != nil {
		if errors.Is(err, services.ErrTrainerNotFound) {
			response.NotFound(c, "教练不存在")
			return
		}
		response.ServerError(c, "查询教练失败")
		return
	}

	response.Success(c, trainer)
}

// Update 更新教练信息
func (h *TrainerHandler) Update(c *gin.Context) {
	dbName, ok := requireTenantDB(c)
	if !ok {
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "教练ID格式错误")
		return
	}

	trainer, err := h.trainerService.GetByID(dbName, id)
	if err != nil {
		if errors.Is(err, services.ErrTrainerNotFound) {
			response.NotFound(c, "教练不存在")
			return
		}
		response.ServerError(c, "查询教练失败")
		return
	}

	var req TrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "姓名和电话为必填项")
		return
	}

	trainer.Name = req.Name
	trainer.Phone = req.Phone
	if req.Schedule != "" {
		trainer.Schedule = &req.Schedule
	}
	if req.TrainerNote != "" {
		trainer.TrainerNote = &req.TrainerNote
	}

	if err := h.trainerService.Update(dbName, trainer); err != nil {
		response.ServerError(c, "更新教练失败")
		return
	}

	response.Success(c, trainer)
}

// Delete 删除教练
func (h *TrainerHandler) Delete(c *gin.Context) {
	dbName, ok := requireTenantDB(c)
	if !ok {
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "教练ID格式错误")
		return
	}

	if err := h.trainerService.Delete(dbName, id); err != nil {
		response.ServerError(c, "删除教练失败")
		return
	}

	response.Success(c, gin.H{"message": "删除成功"})
}
