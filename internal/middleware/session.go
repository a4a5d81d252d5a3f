package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// SessionUserKey Session 里存登录用户 id 的键
const SessionUserKey = "user_id"

// ContextUserKey 校验通过后写入 Gin Context 的键
const ContextUserKey = "userID"

// SessionAuth 登录守卫：Session 里没有 user_id 就拦下请求
// 页面类 GET 跳回登录页，其余返回 401 JSON
func SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		v := session.Get(SessionUserKey)
		if v == nil {
			if c.Request.Method == http.MethodGet {
				c.Redirect(http.StatusFound, "/login")
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
			return
		}

		// 把身份传给后面的 Handler，避免 Handler 再去摸 Session
		if id, ok := v.(uint); ok {
			c.Set(ContextUserKey, id)
		}
		c.Next()
	}
}
