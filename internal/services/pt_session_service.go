package services

import (
	"errors"
	"gymhub/internal/models"
	"gymhub/internal/tenant"
	"time"

	"gorm.io/gorm"
)

// PTSessionService PT课程预约服务
type PTSessionService struct {
	tenants *tenant.Manager
}

func NewPTSessionService(tenants *tenant.Manager) *PTSessionService {
	return &PTSessionService{tenants: tenants}
}

// GetWithFiltersAndPage PT课程查询（分页版本），可按会员/教练/状态过滤
func (s *PTSessionService) GetWithFiltersAndPage(dbName string, memberID, trainerID uint, status string, page, limit int) ([]*models.PTSession, int64, error) {
	db, err := s.tenants.Get(dbName)
	if err != nil {
		return nil, 0, err
	}

	var sessions []*models.PTSession
	var total int64

	query := db.Model(&models.PTSession{})
	if memberID > 0 {
		query = query.Where("member_id = ?", memberID)
	}
	if trainerID > 0 {
		query = query.Where("trainer_id = ?", trainerID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err = query.Preload("Member").Preload("Trainer").
		Order("scheduled_at DESC").Offset(offset).Limit(limit).Find(&sessions).Error
	if err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

// Create 预约PT课程，会员和教练必须存在于当前租户库
func (s *PTSessionService) Create(dbName string, session *models.PTSession) (*models.PTSession, error) {
	db, err := s.tenants.Get(dbName)
	if err != nil {
		return nil, err
	}

	var memberCount int64
	if err := db.Model(&models.Member{}).Where("id = ?", session.MemberID).Count(&memberCount).Error; err != nil {
		return nil, err
	}
	if memberCount == 0 {
		return nil, ErrMemberNotFound
	}

	var trainerCount int64
	if err := db.Model(&models.Trainer{}).Where("id = ?", session.TrainerID).Count(&trainerCount).Error; err != nil {
		return nil, err
	}
	if trainerCount == 0 {
		return nil, ErrTrainerNotFound
	}

	if session.Status == "" {
		session.Status = models.PTSessionStatusReserved
	}
	if !models.IsValidPTSessionStatus(session.Status) {
		return nil, ErrInvalidStatus
	}
	if session.ScheduledAt.IsZero() {
		session.ScheduledAt = time.Now()
	}

	if err := db.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// UpdateStatus 更新课程状态（完成/取消）
func (s *PTSessionService) UpdateStatus(dbName string, id uint, status string) (*models.PTSession, error) {
	if !models.IsValidPTSessionStatus(status) {
		return nil, ErrInvalidStatus
	}

	db, err := s.tenants.Get(dbName)
	if err != nil {
		return nil, err
	}

	var session models.PTSession
	if err := db.First(&session, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	session.Status = status
	if err := db.Save(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}
