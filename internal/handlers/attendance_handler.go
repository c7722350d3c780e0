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

type AttendanceHandler struct {
	attendanceService *services.AttendanceService
}

func NewAttendanceHandler(attendanceService *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

type CreateAttendanceRequest struct {
	MemberID uint   `json:"memberId" binding:"required"`
	Type     string `json:"type" binding:"omitempty,oneof=general pt"`
	Memo     string `json:"memo"`
}

// List 到馆记录查询（分页），可按会员/日期过滤
func (h *AttendanceHandler) List(c *gin.Context) {
	dbName, ok := requireTenantDB(c)
	if !ok {
		return
	}

	memberID := parseUintQuery(c, "memberId")

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "日期格式错误")
			return
		}
		date = &parsed
	}

	params := pagination.ParsePageParams(c)

	attendances, total, err := h.attendanceService.GetWithFiltersAndPage(dbName, memberID, date, params.Page, params.Limit)
	if err != nil {
		response.ServerError(c, "查询到馆记录失败")
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.Limit, total)
	response.SuccessWithPage(c, "attendances", attendances, pageInfo)
}

// Create 登记到馆
func (h *AttendanceHandler) Create(c *gin.Context) {
	dbName, ok := requireTenantDB(c)
	if !ok {
		return
	}

	var req CreateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请指定到馆会员")
		return
	}

	attendance := &models.Attendance{
		MemberID: req.MemberID,
		Type:     req.Type,
	}
	if req.Memo != "" {
		attendance.Memo = &req.Memo
	}

	created, err := h.attendanceService.Create(dbName, attendance)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMemberNotFound):
			response.BadRequest(c, "会员不存在")
		case errors.Is(err, services.ErrInvalidStatus):
			response.BadRequest(c, "到馆类型不合法")
		default:
			response.ServerError(c, "登记到馆失败")
		}
		return
	}

	response.Created(c, created)
}
