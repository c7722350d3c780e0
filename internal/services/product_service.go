package services

import (
	"errors"
	"gymhub/internal/models"
	"gymhub/internal/tenant"

	"gorm.io/gorm"
)

// ProductService 商品服务（会籍/PT套餐）
type ProductService struct {
	tenants *tenant.Manager
}

func NewProductService(tenants *tenant.Manager) *ProductService {
	return &ProductService{tenants: tenants}
}

// GetAll 获取商品列表，可按是否上架过滤
func (s *ProductService) GetAll(dbName string, activeOnly bool) ([]*models.Product, error) {
	db, err := s.tenants.Get(dbName)
	if err != nil {
		return nil, err
	}

	query := db.Model(&models.Product{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var products []*models.Product
	err = query.Order("id").Find(&products).Error
	return products, err
}

// Create 登记商品
func (s *ProductService) Create(dbName string, product *models.Product) (*models.Product, error) {
	if !models.IsValidProductType(product.Type) {
		return nil, ErrInvalidStatus
	}

	db, err := s.tenants.Get(dbName)
	if err != nil {
		return nil, err
	}
	if err := db.Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID 根据ID获取商品
func (s *ProductService) GetByID(dbName string, id uint) (*models.Product, error) {
	db, err := s.tenants.Get(dbName)
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Update 更新商品
func (s *ProductService) Update(dbName string, product *models.Product) error {
	db, err := s.tenants.Get(dbName)
	if err != nil {
		return err
	}
	return db.Save(product).Error
}

// Deactivate 下架商品
func (s *ProductService) Deactivate(dbName string, id uint) error {
	db, err := s.tenants.Get(dbName)
	if err != nil {
		return err
	}
	return db.Model(&models.Product{}).Where("id = ?", id).
		Update("is_active", false).Error
}
