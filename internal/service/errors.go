package service

import "errors"

// 业务错误哨兵：Handler 层用 errors.Is 区分并映射状态码
var (
	// ErrValidation 必填字段缺失 (trim 之后为空)
	ErrValidation = errors.New("validation error")
	// ErrConflict 唯一键冲突 (numero_dossier / username 已存在)
	ErrConflict = errors.New("conflict error")
	// ErrNotFound 引用的 id 不存在
	ErrNotFound = errors.New("not found")
	// ErrAuth 凭证错误或未登录
	ErrAuth = errors.New("auth error")
)
