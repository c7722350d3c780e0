package models

import (
	"time"
)

// Payment 租户库缴费记录模型
type Payment struct {
	BaseModel
	MemberID  uint      `json:"memberId" gorm:"not null;index"`
	ProductID uint      `json:"productId" gorm:"not null;index"`
	StartDate time.Time `json:"startDate" gorm:"type:date;not null"`
	EndDate   time.Time `json:"endDate" gorm:"type:date;not null"`
	PTCount   int       `json:"ptCount" gorm:"not null"`
	Price     int       `json:"price" gorm:"not null"`
	PaidAt    time.Time `json:"paidAt" gorm:"not null"`
	Memo      *string   `json:"memo" gorm:"size:500"`

	// 关联
	Member  *Member  `json:"member,omitempty" gorm:"foreignKey:MemberID"`
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// TableName 表名
func (p *Payment) TableName() string {
	return "payments"
}
