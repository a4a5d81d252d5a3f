package dto

type RegisterReq struct {
	// 空值校验放在 Service 层 (trim 之后判断)，这里不加 required
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResp struct {
	Username string `json:"username"`
	UserID   uint   `json:"user_id"`
}
