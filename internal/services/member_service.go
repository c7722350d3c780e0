package services

import (
	"errors"
	"fmt"
	"gymhub/internal/models"
	"gymhub/internal/tenant"

	"gorm.io/gorm"
)

// MemberService 会员服务，操作当前请求解析出的租户库
type MemberService struct {
	tenants *tenant.Manager
}

func NewMemberService(tenants *tenant.Manager) *MemberService {
	return &MemberService{tenants: tenants}
}

// GetWithFiltersAndPage 会员组合查询（分页版本）
// search 同时匹配姓名、电话、邮箱
func (s *MemberService) GetWithFiltersAndPage(dbName, search string, page, limit int) ([]*models.Member, int64, error) {
	db, err := s.tenants.Get(dbName)
	if err != nil {
		return nil, 0, err
	}

	var members []*models.Member
	var total int64

	query := db.Model(&models.Member{})
	if search != "" {
		searchPattern := fmt.Sprintf("%%%s%%", search)
		query = query.Where("name LIKE ? OR phone LIKE ? OR email LIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err = query.Order("id DESC").Offset(offset).Limit(limit).Find(&members).Error
	if err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

// Create 登记会员
// 提供邮箱时前置查重，重复报告冲突
func (s *MemberService) Create(dbName string, member *models.Member) (*models.Member, error) {
	db, err := s.tenants.Get(dbName)
	if err != nil {
		return nil, err
	}

	if member.Email != nil && *member.Email != "" {
		var count int64
		if err := db.Model(&models.Member{}).Where("email = ?", *member.Email).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrMemberEmailExists
		}
	}

	if err := db.Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

// GetByID 根据ID获取会员
func (s *MemberService) GetByID(dbName string, id uint) (*models.Member, error) {
	db, err := s.tenants.Get(dbName)
	if err != nil {
		return nil, err
	}

	var member models.Member
	if err := db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

// Update 更新会员信息
func (s *MemberService) Update(dbName string, member *models.Member) error {
	db, err := s.tenants.Get(dbName)
	if err != nil {
		return err
	}
	return db.Save(member).Error
}

// Delete 删除会员
func (s *MemberService) Delete(dbName string, id uint) error {
	db, err := s.tenants.Get(dbName)
	if err != nil {
		return err
	}
	return db.Delete(&models.Member{}, id).Error
}
