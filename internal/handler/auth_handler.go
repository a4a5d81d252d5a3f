package handler

import (
	"net/http"

	"github.com/yousseftayari/ElectroDoc/internal/dto"
	"github.com/yousseftayari/ElectroDoc/internal/middleware"
	"github.com/yousseftayari/ElectroDoc/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc service.AuthService // 依赖接口，而不是具体的结构体
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// RegisterPage GET /register
// 前后端分离后不再渲染模板，返回表单说明即可
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "POST username and password to /register"})
}

// Register POST /register
// 注册成功不自动登录，客户端自行跳转 /login
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	userID, err := h.svc.Register(req)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account created, you can now log in", "user_id": userID})
}

// LoginPage GET /login
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "POST username and password to /login"})
}

// Login POST /login
// 校验通过后把 user_id 写进 Cookie Session
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.svc.Login(req)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionUserKey, resp.UserID)
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save session"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout GET /logout
// 无条件清空 Session，未登录时调用也安全
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear session"})
		return
	}
	c.Redirect(http.StatusFound, "/login")
}
