package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Gym 健身房模型 - 每个健身房对应一个独立的租户库
type Gym struct {
	BaseModel
	Name    string `json:"name" gorm:"not null;size:100"`
	DBName  string `json:"dbName" gorm:"unique;not null;size:100;index"`
	OwnerID uint   `json:"ownerId" gorm:"not null;index"`
	Status  string `json:"status" gorm:"default:'provisioning';size:20"`

	// ProvisionLog 记录开通过程的观测信息（最近错误、重试次数等）
	ProvisionLog datatypes.JSON `json:"provisionLog,omitempty" gorm:"type:json"`

	// 关联
	Owner  *User      `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Admins []GymAdmin `json:"admins,omitempty" gorm:"foreignKey:GymID"`
}

// TableName 表名
func (g *Gym) TableName() string {
	return "gyms"
}

// 健身房开通状态常量
const (
	GymStatusProvisioning = "provisioning"
	GymStatusReady        = "ready"
	GymStatusFailed       = "failed"
)

// GymAdmin 健身房管理员授权表（非所有者的管理权限）
type GymAdmin struct {
	BaseModel
	UserID uint `json:"userId" gorm:"not null;uniqueIndex:idx_gym_admin"`
	GymID  uint `json:"gymId" gorm:"not null;uniqueIndex:idx_gym_admin"`

	// 关联
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Gym  *Gym  `json:"gym,omitempty" gorm:"foreignKey:GymID;constraint:OnDelete:CASCADE"`
}

// TableName 表名
func (GymAdmin) TableName() string {
	return "gym_admins"
}

// AccessibleGymScope 可访问健身房的查询条件：所有者或被授权管理员
func AccessibleGymScope(userID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"owner_id = ? OR EXISTS (SELECT 1 FROM gym_admins WHERE gym_admins.gym_id = gyms.id AND gym_admins.user_id = ?)",
			userID, userID,
		)
	}
}
