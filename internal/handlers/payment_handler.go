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

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

type CreatePaymentRequest struct {
	MemberID  uint   `json:"memberId" binding:"required"`
	ProductID uint   `json:"productId" binding:"required"`
	StartDate string `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" binding:"required,datetime=2006-01-02"`
	PTCount   int    `json:"ptCount" binding:"min=0"`
	Price     int    `json:"price" binding:"required,min=0"`
	Memo      string `json:"memo"`
}

// List 缴费记录查询（分页），可按会员过滤
func (h *PaymentHandler) List(c *gin.Context) {
	dbName, ok := requireTenantDB(c)
	if !ok {
		return
	}

	memberID := parseUintQuery(c, "memberId")
	params := pagination.ParsePageParams(c)

	payments, total, err := h.paymentService.GetWithFiltersAndPage(dbName, memberID, params.Page, params.Limit)
	if err != nil {
		response.ServerError(c, "查询缴费记录失败")
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.Limit, total)
	response.SuccessWithPage(c, "payments", payments, pageInfo)
}

// Create 登记缴费
func (h *PaymentHandler) Create(c *gin.Context) {
	dbName, ok := requireTenantDB(c)
	if !ok {
		return
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请填写会员、商品、起止日期和金额")
		return
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)
	if !endDate.After(startDate) {
		response.BadRequest(c, "结束日期必须晚于开始日期")
		return
	}

	payment := &models.Payment{
		MemberID:  req.MemberID,
		ProductID: req.ProductID,
		StartDate: startDate,
		EndDate:   endDate,
		PTCount:   req.PTCount,
		Price:     req.Price,
		PaidAt:    time.Now(),
	}
	if req.Memo != "" {
		payment.Memo = &req.Memo
	}

	created, err := h.paymentService.Create(dbName, payment)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMemberNotFound):
			response.BadRequest(c, "会员不存在")
		case errors.Is(err, services.ErrProductNotFound):
			response.BadRequest(c, "商品不存在")
		default:
			response.ServerError(c, "登记缴费失败")
		}
		return
	}

	response.Created(c, created)
}

// GetByID 获取缴费记录详情
func (h *PaymentHandler) GetByID(c *gin.Context) {
	dbName, ok := requireTenantDB(c)
	if !ok {
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "缴费记录ID格式错误")
		return
	}

	payment, err := h.paymentService.GetByID(dbName, id)
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			response.NotFound(c, "缴费记录不存在")
			return
		}
		response.ServerError(c, "查询缴费记录失败")
		return
	}

	response.Success(c, payment)
}
