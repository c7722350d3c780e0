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

type MemberHandler struct {
	memberService *services.MemberService
}

func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

type CreateMemberRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required,phone"`
	Email string `json:"email" binding:"omitempty,email"`
	Birth string `json:"birth" binding:"omitempty,datetime=2006-01-02"`
	Memo  string `json:"memo"`
}

type UpdateMemberRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required,phone"`
	Email string `json:"email" binding:"omitempty,email"`
	Birth string `json:"birth" binding:"omitempty,datetime=2006-01-02"`
	Memo  string `json:"memo"`
}

// List 会员列表查询（搜索 + 分页）
func (h *MemberHandler) List(c *gin.Context) {
	dbName, ok := requireTenantDB(c)
	if !ok {
		return
	}

	search := c.Query("search")
	params := pagination.ParsePageParams(c)

	members, total, err := h.memberService.GetWithFiltersAndPage(dbName, search, params.Page, params.Limit)
	if err != nil {
		response.ServerError(c, "查询会员列表失败")
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.Limit, total)
	response.SuccessWithPage(c, "members", members, pageInfo)
}

// Create 登记会员
func (h *MemberHandler) Create(c *gin.Context) {
	dbName, ok := requireTenantDB(c)
	if !ok {
		return
	}

	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "姓名和电话为必填项")
		return
	}

	member := &models.Member{
		Name:  req.Name,
		Phone: req.Phone,
	}
	if req.Email != "" {
		member.Email = &req.Email
	}
	if req.Birth != "" {
		birth, _ := time.Parse("2006-01-02", req.Birth)
		member.Birth = &birth
	}
	if req.Memo != "" {
		member.Memo = &req.Memo
	}

	created, err := h.memberService.Create(dbName, member)
	if err != nil {
		if errors.Is(err, services.ErrMemberEmailExists) {
			response.Conflict(c, "会员邮箱已被注册")
			return
		}
		response.ServerError(c, "登记会员失败")
		return
	}

	response.Created(c, created)
}

// GetByID 获取会员详情
func (h *MemberHandler) GetByID(c *gin.Context) {
	dbName, ok := requireTenantDB(c)
	if !ok {
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "会员ID格式错误")
		return
	}

	member, err := h.memberService.GetByID(dbName, id)
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			response.NotFound(c, "会员不存在")
			return
		}
		response.ServerError(c, "查询会员失败")
		return
	}

	response.Success(c, member)
}

// Update 更新会员信息
func (h *MemberHandler) Update(c *gin.Context) {
	dbName, ok := requireTenantDB(c)
	if !ok {
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "会员ID格式错误")
		return
	}

	member, err := h.memberService.GetByID(dbName, id)
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			response.NotFound(c, "会员不存在")
			return
		}
		response.ServerError(c, "查询会员失败")
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "姓名和电话为必填项")
		return
	}

	member.Name = req.Name
	member.Phone = req.Phone
	if req.Email != "" {
		member.Email = &req.Email
	} else {
		member.Email = nil
	}
	if req.Birth != "" {
		birth, _ := time.Parse("2006-01-02", req.Birth)
		member.Birth = &birth
	}
	if req.Memo != "" {
		member.Memo = &req.Memo
	}

	if err := h.memberService.Update(dbName, member); err != nil {
		response.ServerError(c, "更新会员失败")
		return
	}

	response.Success(c, member)
}

// Delete 删除会员
func (h *MemberHandler) Delete(c *gin.Context) {
	dbName, ok := requireTenantDB(c)
	if !ok {
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "会员ID格式错误")
		return
	}

	if err := h.memberService.Delete(dbName, id); err != nil {
		response.ServerError(c, "删除会员失败")
		return
	}

	response.Success(c, gin.H{"message": "删除成功"})
}
