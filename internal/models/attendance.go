package models

import (
	"time"
)

// Attendance 租户库到馆记录模型
type Attendance struct {
	BaseModel
	MemberID   uint      `json:"memberId" gorm:"not null;index"`
	AttendedAt time.Time `json:"attendedAt" gorm:"not null;index"`
	Type       string    `json:"type" gorm:"not null;size:20"`
	Memo       *string   `json:"memo" gorm:"size:500"`

	// 关联
	Member *Member `json:"member,omitempty" gorm:"foreignKey:MemberID"`
}

// TableName 表名
func (a *Attendance) TableName() string {
	return "attendances"
}

// 到馆类型常量
const (
	AttendanceTypeGeneral = "general"
	AttendanceTypePT      = "pt"
)

// IsValidAttendanceType 检查到馆类型是否有效
func IsValidAttendanceType(t string) bool {
	switch t {
	case AttendanceTypeGeneral, AttendanceTypePT:
		return true
	default:
		return false
	}
}
