package model

// DocumentState 文档的状态行
// StateType 取值: REP / HS / SWA / BRK (开放枚举，数据层不校验)
type DocumentState struct {
	BaseModel
	DocumentID uint `gorm:"index;not null" json:"document_id"`

	StateType string `gorm:"size:50;not null" json:"state_type"`

	// 子状态：仅 BRK 有意义，持久化为逗号拼接的扁平字符串
	// 业务层永远用 []string，拼接/拆分只发生在持久化边界
	SubState string `gorm:"size:255" json:"-"`

	Quantity int `gorm:"default:1" json:"quantity"`
}
