package services

import (
	"gymhub/internal/models"
	"gymhub/internal/tenant"
	"time"
)

// AttendanceService 到馆记录服务
type AttendanceService struct {
	tenants *tenant.Manager
}

func NewAttendanceService(tenants *tenant.Manager) *AttendanceService {
	return &AttendanceService{tenants: tenants}
}

// GetWithFiltersAndPage 到馆记录查询（分页版本），可按会员/日期过滤
func (s *AttendanceService) GetWithFiltersAndPage(dbName string, memberID uint, date *time.Time, page, limit int) ([]*models.Attendance, int64, error) {
	db, err := s.tenants.Get(dbName)
	if err != nil {
		return nil, 0, err
	}

	var attendances []*models.Attendance
	var total int64

	query := db.Model(&models.Attendance{})
	if memberID > 0 {
		query = query.Where("member_id = ?", memberID)
	}
	if date != nil {
		dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		query = query.Where("attended_at >= ? AND attended_at < ?", dayStart, dayStart.AddDate(0, 0, 1))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err = query.Preload("Member").
		Order("attended_at DESC").Offset(offset).Limit(limit).Find(&attendances).Error
	if err != nil {
		return nil, 0, err
	}

	return attendances, total, nil
}

// Create 登记到馆，会员必须存在于当前租户库
func (s *AttendanceService) Create(dbName string, attendance *models.Attendance) (*models.Attendance, error) {
	db, err := s.tenants.Get(dbName)
	if err != nil {
		return nil, err
	}

	var memberCount int64
	if err := db.Model(&models.Member{}).Where("id = ?", attendance.MemberID).Count(&memberCount).Error; err != nil {
		return nil, err
	}
	if memberCount == 0 {
		return nil, ErrMemberNotFound
	}

	if attendance.Type == "" {
		attendance.Type = models.AttendanceTypeGeneral
	}
	if !models.IsValidAttendanceType(attendance.Type) {
		return nil, ErrInvalidStatus
	}
	if attendance.AttendedAt.IsZero() {
		attendance.AttendedAt = time.Now()
	}

	if err := db.Create(attendance).Error; err != nil {
		return nil, err
	}
	return attendance, nil
}
