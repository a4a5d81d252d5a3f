package handler

import (
	"net/http"

	"github.com/yousseftayari/ElectroDoc/internal/data"

	"github.com/gin-gonic/gin"
)

type DebugHandler struct {
	Data *data.Data
}

func NewDebugHandler(d *data.Data) *DebugHandler {
	return &DebugHandler{Data: d}
}

// Tables GET /tables
// 调试接口：列出库里的全部表名 (Migrator 跨驱动可用)
// 源系统没挂登录守卫，这里补上了，路由里走 SessionAuth
func (h *DebugHandler) Tables(c *gin.Context) {
	tables, err := h.Data.DB.Migrator().GetTables()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tables": tables})
}
