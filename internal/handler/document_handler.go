package handler

import (
	"net/http"
	"strconv"

	"github.com/yousseftayari/ElectroDoc/internal/dto"
	"github.com/yousseftayari/ElectroDoc/internal/service"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	svc *service.DocumentService
}

func NewDocumentHandler(svc *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

// Dashboard GET /dashboard?search=&page=
// 分页 + 搜索的文档列表
func (h *DocumentHandler) Dashboard(c *gin.Context) {
	search := c.Query("search")

	page := 1
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		page = p
	}

	resp, err := h.svc.List(c.Request.Context(), search, page, service.DefaultPageSize)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create POST /add
func (h *DocumentHandler) Create(c *gin.Context) {
	var req dto.DocumentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "document created", "document": resp})
}

// EditPrefill GET /edit/:id
// 编辑页回显：返回当前文档与状态行
func (h *DocumentHandler) EditPrefill(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update POST /edit/:id
// 标量覆盖 + 状态整组替换
func (h *DocumentHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req dto.DocumentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "document updated", "document": resp})
}

// Delete POST /delete/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "document deleted"})
}

// AddState POST /document/:id/add_state
// 返回 {success, message}，给前端的行内操作用
func (h *DocumentHandler) AddState(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
		return
	}

	var req dto.AddStateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body: " + err.Error()})
		return
	}

	if err := h.svc.AddState(c.Request.Context(), id, req); err != nil {
		c.JSON(errStatus(err), gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "state added"})
}

// DeleteState POST /state/:id/delete
func (h *DocumentHandler) DeleteState(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
		return
	}

	if err := h.svc.DeleteState(c.Request.Context(), id); err != nil {
		c.JSON(errStatus(err), gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "state deleted"})
}

// Stats GET /stats
func (h *DocumentHandler) Stats(c *gin.Context) {
	resp, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// APIDocuments GET /api/documents?search=
// 给独立客户端的只读接口：返回嵌套状态的文档数组
// ⚠️ 与源系统保持一致，这个接口不走登录守卫 (见 DESIGN.md)
func (h *DocumentHandler) APIDocuments(c *gin.Context) {
	docs, err := h.svc.Search(c.Request.Context(), c.Query("search"))
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, docs)
}

func parseID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	return uint(id), err
}
