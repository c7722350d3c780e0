package handlers

import (
	"errors"
	"gymhub/internal/models"
	"gymhub/internal/services"
	"gymhub/pkg/response"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

type ProductRequest struct {
	Name           string `json:"name" binding:"required"`
	PTCount        int    `json:"ptCount" binding:"min=0"`
	DurationMonths int    `json:"durationMonths" binding:"required,min=1"`
	Price          int    `json:"price" binding:"required,min=0"`
	Type           string `json:"type" binding:"required,oneof=pt gym combo"`
	Description    string `json:"description"`
}

// List 商品列表，active=true 时只返回上架商品
func (h *ProductHandler) List(c *gin.Context) {
	dbName, ok := requireTenantDB(c)
	if !ok {
		return
	}

	activeOnly := c.Query("active") == "true"
	products, err := h.productService.GetAll(dbName, activeOnly)
	if err != nil {
		response.ServerError(c, "查询商品列表失败")
		return
	}

	response.Success(c, gin.H{"products": products})
}

// Create 登记商品
func (h *ProductHandler) Create(c *gin.Context) {
	dbName, ok := requireTenantDB(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请填写商品名称、时长、价格和类型")
		return
	}

	product := &models.Product{
		Name:           req.Name,
		PTCount:        req.PTCount,
		DurationMonths: req.DurationMonths,
		Price:          req.Price,
		Type:           req.Type,
		IsActive:       true,
	}
	if req.Description != "" {
		product.Description = &req.Description
	}

	created, err := h.productService.Create(dbName, product)
	if err != nil {
		response.ServerError(c, "登记商品失败")
		return
	}

	response.Created(c, created)
}

// GetByID 获取商品详情
func (h *ProductHandler) GetByID(c *gin.Context) {
	dbName, ok := requireTenantDB(c)
	if !ok {
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "商品ID格式错误")
		return
	}

	product, err := h.productService.GetByID(dbName, id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			response.NotFound(c, "商品不存在")
			return
		}
		response.ServerError(c, "查询商品失败")
		return
	}

	response.Success(c, product)
}

// Deactivate 下架商品
func (h *ProductHandler) Deactivate(c *gin.Context) {
	dbName, ok := requireTenantDB(c)
	if !ok {
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "商品ID格式错误")
		return
	}

	if err := h.productService.Deactivate(dbName, id); err != nil {
		response.ServerError(c, "下架商品失败")
		return
	}

	response.Success(c, gin.H{"message": "商品已下架"})
}
