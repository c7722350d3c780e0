package services

import (
	"errors"
	"gymhub/internal/models"

	"gorm.io/gorm"
)

// UserService 核心库用户服务
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Create 注册用户
// 邮箱重复通过前置查重报告冲突
func (s *UserService) Create(email, password, name, role string) (*models.User, error) {
	if role == "" {
		role = models.RoleAdmin
	}
	if !models.IsValidRole(role) {
		return nil, ErrInvalidRole
	}

	// 邮箱查重
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailExists
	}

	user := &models.User{
		Email: email,
		Name:  name,
		Role:  role,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID 根据ID获取用户
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail 根据邮箱获取用户
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetProfile 获取用户及其健身房关联（所有的 + 被授权管理的）
func (s *UserService) GetProfile(id uint) (*models.User, error) {
	var user models.User
	err := s.db.
		Preload("Gyms").
		Preload("GymAdmins.Gym").
		First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
