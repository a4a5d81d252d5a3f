package handler

import (
	"errors"
	"net/http"

	"github.com/yousseftayari/ElectroDoc/internal/service"
)

// errStatus 业务错误 → HTTP 状态码
// Service 层只认哨兵错误，映射集中在这一处
func errStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAuth):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
