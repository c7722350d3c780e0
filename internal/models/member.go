package models

import (
	"time"
)

// Member 租户库会员模型
type Member struct {
	BaseModel
	Name  string     `json:"name" gorm:"not null;size:100"`
	Phone string     `json:"phone" gorm:"not null;size:20"`
	Email *string    `json:"email" gorm:"unique;size:100"`
	Birth *time.Time `json:"birth" gorm:"type:date"`
	Memo  *string    `json:"memo" gorm:"size:500"`
}

// TableName 表名
func (m *Member) TableName() string {
	return "members"
}
