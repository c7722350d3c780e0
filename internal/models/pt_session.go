package models

import (
	"time"
)

// PTSession 租户库PT课程预约模型
type PTSession struct {
	BaseModel
	MemberID    uint      `json:"memberId" gorm:"not null;index"`
	TrainerID   uint      `json:"trainerId" gorm:"not null;index"`
	ScheduledAt time.Time `json:"scheduledAt" gorm:"not null;index"`
	Status      string    `json:"status" gorm:"default:'reserved';size:20"`
	Note        *string   `json:"note" gorm:"size:500"`

	// 关联
	Member  *Member  `json:"member,omitempty" gorm:"foreignKey:MemberID"`
	Trainer *Trainer `json:"trainer,omitempty" gorm:"foreignKey:TrainerID"`
}

// TableName 表名
func (s *PTSession) TableName() string {
	return "pt_sessions"
}

// PT课程状态常量
const (
	PTSessionStatusReserved = "reserved"
	PTSessionStatusDone     = "done"
	PTSessionStatusCanceled = "canceled"
)

// IsValidPTSessionStatus 检查课程状态是否有效
func IsValidPTSessionStatus(status string) bool {
	switch status {
	case PTSessionStatusReserved, PTSessionStatusDone, PTSessionStatusCanceled:
		return true
	default:
		return false
	}
}
