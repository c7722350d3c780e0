package services

import (
	"errors"
	"gymhub/internal/models"
	"gymhub/internal/tenant"

	"gorm.io/gorm"
)

// PaymentService 缴费服务
type PaymentService struct {
	tenants *tenant.Manager
}

func NewPaymentService(tenants *tenant.Manager) *PaymentService {
	return &PaymentService{tenants: tenants}
}

// GetWithFiltersAndPage 缴费记录查询（分页版本），可按会员过滤
func (s *PaymentService) GetWithFiltersAndPage(dbName string, memberID uint, page, limit int) ([]*models.Payment, int64, error) {
	db, err := s.tenants.Get(dbName)
	if err != nil {
		return nil, 0, err
	}

	var payments []*models.Payment
	var total int64

	query := db.Model(&models.Payment{})
	if memberID > 0 {
		query = query.Where("member_id = ?", memberID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err = query.Preload("Member").Preload("Product").
		Order("id DESC").Offset(offset).Limit(limit).Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

// Create 登记缴费，会员和商品必须存在于当前租户库
func (s *PaymentService) Create(dbName string, payment *models.Payment) (*models.Payment, error) {
	db, err := s.tenants.Get(dbName)
	if err != nil {
		return nil, err
	}

	var memberCount int64
	if err := db.Model(&models.Member{}).Where("id = ?", payment.MemberID).Count(&memberCount).Error; err != nil {
		return nil, err
	}
	if memberCount == 0 {
		return nil, ErrMemberNotFound
	}

	var productCount int64
	if err := db.Model(&models.Product{}).Where("id = ?", payment.ProductID).Count(&productCount).Error; err != nil {
		return nil, err
	}
	if productCount == 0 {
		return nil, ErrProductNotFound
	}

	if err := db.Create(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

// GetByID 根据ID获取缴费记录
func (s *PaymentService) GetByID(dbName string, id uint) (*models.Payment, error) {
	db, err := s.tenants.Get(dbName)
	if err != nil {
		return nil, err
	}

	var payment models.Payment
	err = db.Preload("Member").Preload("Product").First(&payment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}
