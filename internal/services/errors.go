package services

import "errors"

// 业务错误定义，handler层据此映射HTTP状态码
var (
	ErrEmailExists       = errors.New("邮箱已被注册")
	ErrInvalidRole       = errors.New("无效的用户角色")
	ErrUserNotFound      = errors.New("用户不存在")
	ErrOwnerNotFound     = errors.New("健身房所有者不存在")
	ErrDBNameTaken       = errors.New("同名健身房的租户库已存在")
	ErrGymNotFound       = errors.New("健身房不存在")
	ErrNoAccessibleGym   = errors.New("没有可访问的健身房")
	ErrMemberNotFound    = errors.New("会员不存在")
	ErrMemberEmailExists = errors.New("会员邮箱已被注册")
	ErrTrainerNotFound   = errors.New("教练不存在")
	ErrProductNotFound   = errors.New("商品不存在")
	ErrPaymentNotFound   = errors.New("缴费记录不存在")
	ErrSessionNotFound   = errors.New("PT课程不存在")
	ErrInvalidStatus     = errors.New("无效的状态")
)
