package models

// Product 租户库商品模型（会籍/PT套餐）
type Product struct {
	BaseModel
	Name           string  `json:"name" gorm:"not null;size:100"`
	PTCount        int     `json:"ptCount" gorm:"not null"`
	DurationMonths int     `json:"durationMonths" gorm:"not null"`
	Price          int     `json:"price" gorm:"not null"`
	Type           string  `json:"type" gorm:"not null;size:20"`
	Description    *string `json:"description" gorm:"size:500"`
	IsActive       bool    `json:"isActive" gorm:"default:true"`
}

// TableName 表名
func (p *Product) TableName() string {
	return "products"
}

// 商品类型常量
const (
	ProductTypePT    = "pt"
	ProductTypeGym   = "gym"
	ProductTypeCombo = "combo"
)

// IsValidProductType 检查商品类型是否有效
func IsValidProductType(t string) bool {
	switch t {
	case ProductTypePT, ProductTypeGym, ProductTypeCombo:
		return true
	default:
		return false
	}
}
