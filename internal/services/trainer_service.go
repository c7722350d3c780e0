package services

import (
	"errors"
	"fmt"
	"gymhub/internal/models"
	"gymhub/internal/tenant"

	"gorm.io/gorm"
)

// TrainerService 教练服务
type TrainerService struct {
	tenants *tenant.Manager
}

func NewTrainerService(tenants *tenant.Manager) *TrainerService {
	return &TrainerService{tenants: tenants}
}

// GetWithFiltersAndPage 教练组合查询（分页版本）
func (s *TrainerService) GetWithFiltersAndPage(dbName, search string, page, limit int) ([]*models.Trainer, int64, error) {
	db, err := s.tenants.Get(dbName)
	if err != nil {
		return nil, 0, err
	}

	var trainers []*models.Trainer
	var total int64

	query := db.Model(&models.Trainer{})
	if search != "" {
		searchPattern := fmt.Sprintf("%%%s%%", search)
		query = query.Where("name LIKE ? OR phone LIKE ?", searchPattern, searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err = query.Order("id DESC").Offset(offset).Limit(limit).Find(&trainers).Error
	if err != nil {
		return nil, 0, err
	}

	return trainers, total, nil
}

// Create 登记教练
func (s *TrainerService) Create(dbName string, trainer *models.Trainer) (*models.Trainer, error) {
	db, err := s.tenants.Get(dbName)
	if err != nil {
		return nil, err
	}
	if err := db.Create(trainer).Error; err != nil {
		return nil, err
	}
	return trainer, nil
}

// GetByID 根据ID获取教练
func (s *TrainerService) GetByID(dbName string, id uint) (*models.Trainer, error) {
	db, err := s.tenants.Get(dbName)
	if err != nil {
		return nil, err
	}

	var trainer models.Trainer
	if err := db.First(&trainer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	return &trainer, nil
}

// Update 更新教练信息
func (s *TrainerService) Update(dbName string, trainer *models.Trainer) error {
	db, err := s.tenants.Get(dbName)
	if err != nil {
		return err
	}
	return db.Save(trainer).Error
}

// Delete 删除教练
func (s *TrainerService) Delete(dbName string, id uint) error {
	db, err := s.tenants.Get(dbName)
	if err != nil {
		return err
	}
	return db.Delete(&models.Trainer{}, id).Error
}
