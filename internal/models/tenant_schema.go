package models

// TenantModels 租户库的固定表结构模板
// 所有租户库结构一致，解析器才能对任意租户做统一处理
func TenantModels() []interface{} {
	return []interface{}{
		&Member{},
		&Trainer{},
		&Product{},
		&Payment{},
		&PTSession{},
		&Attendance{},
	}
}
