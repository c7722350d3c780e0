package models

import (
	"golang.org/x/crypto/bcrypt"
)

// User 核心库用户模型（账号持有者）
type User struct {
	BaseModel
	Email        string `json:"email" gorm:"unique;not null;size:100;index"`
	PasswordHash string `json:"-" gorm:"column:password;not null;size:255"`
	Name         string `json:"name" gorm:"not null;size:100"`
	Role         string `json:"role" gorm:"default:'admin';size:20"`

	// 关联
	Gyms      []Gym      `json:"gyms,omitempty" gorm:"foreignKey:OwnerID"`
	GymAdmins []GymAdmin `json:"gymAdmins,omitempty" gorm:"foreignKey:UserID"`
}

// TableName 表名
func (u *User) TableName() string {
	return "users"
}

// 用户角色常量
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
)

// IsValidRole 检查角色是否有效
func IsValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin:
		return true
	default:
		return false
	}
}

// SetPassword 设置密码 - 数据操作方法
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword 验证密码 - 数据操作方法
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}
