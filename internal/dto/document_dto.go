package dto

import "time"

// StateEntryReq 创建/编辑文档时提交的单条状态
// Quantity 用字符串承接表单输入：缺失或非数字一律按 1 处理
type StateEntryReq struct {
	StateType string   `json:"state_type" binding:"required"`
	SubStates []string `json:"sub_states"`
	Quantity  string   `json:"quantity"`
}

// DocumentReq 创建与编辑共用同一个请求体
type DocumentReq struct {
	NumeroDossier string          `json:"numero_dossier"`
	NumeroCarton  string          `json:"numero_carton"`
	Modele        string          `json:"modele"`
	States        []StateEntryReq `json:"states"`
}

// AddStateReq 单条加状态接口 POST /document/:id/add_state
type AddStateReq struct {
	StateType string `json:"state_type" binding:"required"`
	SubState  string `json:"sub_state"`
	Quantity  string `json:"quantity"`
}

type StateResp struct {
	ID        uint     `json:"id"`
	StateType string   `json:"state_type"`
	SubStates []string `json:"sub_states,omitempty"`
	Quantity  int      `json:"quantity"`
}

type DocumentResp struct {
	ID            uint        `json:"id"`
	NumeroDossier string      `json:"numero_dossier"`
	NumeroCarton  string      `json:"numero_carton"`
	Modele        string      `json:"modele"`
	States        []StateResp `json:"states"`
	CreatedAt     time.Time   `json:"created_at"`
}

// DocumentListResp 分页列表响应 (dashboard)
type DocumentListResp struct {
	Documents  []DocumentResp `json:"documents"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}
