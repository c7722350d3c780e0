package models

// Trainer 租户库教练模型
type Trainer struct {
	BaseModel
	Name        string  `json:"name" gorm:"not null;size:100"`
	Phone       string  `json:"phone" gorm:"not null;size:20"`
	Schedule    *string `json:"schedule" gorm:"size:255"`
	TrainerNote *string `json:"trainerNote" gorm:"size:500"`
}

// TableName 表名
func (t *Trainer) TableName() string {
	return "trainers"
}
