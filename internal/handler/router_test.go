package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/yousseftayari/ElectroDoc/internal/data"
	"github.com/yousseftayari/ElectroDoc/internal/handler"
	"github.com/yousseftayari/ElectroDoc/internal/middleware"
	"github.com/yousseftayari/ElectroDoc/internal/model"
	"github.com/yousseftayari/ElectroDoc/internal/repository"
	"github.com/yousseftayari/ElectroDoc/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestRouter 按 main.go 的接线方式组一个最小路由
func newTestRouter(t *testing.T) (*gin.Engine, *data.Data) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Document{}, &model.DocumentState{}))

	d := &data.Data{DB: db}
	authService := service.NewAuthService(repository.NewUserRepository(d.DB))
	docService := service.NewDocumentService(d)

	authHandler := handler.NewAuthHandler(authService)
	docHandler := handler.NewDocumentHandler(docService)
	debugHandler := handler.NewDebugHandler(d)

	r := gin.New()
	r.Use(sessions.Sessions("electrodoc_session", cookie.NewStore([]byte("test_secret"))))

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/login") })
	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)
	r.POST("/register", authHandler.Register)
	r.GET("/logout", authHandler.Logout)

	protected := r.Group("/")
	protected.Use(middleware.SessionAuth())
	{
		protected.GET("/dashboard", docHandler.Dashboard)
		protected.POST("/add", docHandler.Create)
		protected.GET("/edit/:id", docHandler.EditPrefill)
		protected.POST("/edit/:id", docHandler.Update)
		protected.POST("/delete/:id", docHandler.Delete)
		protected.POST("/document/:id/add_state", docHandler.AddState)
		protected.POST("/state/:id/delete", docHandler.DeleteState)
		protected.GET("/stats", docHandler.Stats)
		protected.GET("/tables", debugHandler.Tables)
	}

	r.GET("/api/documents", docHandler.APIDocuments)

	return r, d
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// login 注册 + 登录，返回会话 Cookie
func login(t *testing.T, r *gin.Engine) []*http.Cookie {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/register", gin.H{"username": "alice", "password": "secret123"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/login", gin.H{"username": "alice", "password": "secret123"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func TestRootRedirectsToLogin(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/", nil, nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	r, _ := newTestRouter(t)

	// 页面类 GET 跳回登录页
	w := doJSON(t, r, http.MethodGet, "/dashboard", nil, nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))

	// 写操作直接 401
	w = doJSON(t, r, http.MethodPost, "/add", gin.H{"numero_dossier": "D"}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// /tables 在本版本也要登录
	w = doJSON(t, r, http.MethodGet, "/tables", nil, nil)
	require.Equal(t, http.StatusFound, w.Code)
}

func TestWrongPasswordDoesNotOpenSession(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/register", gin.H{"username": "alice", "password": "secret123"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/login", gin.H{"username": "alice", "password": "wrong"}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// 登录失败后的 Cookie (如果有) 不能放行受保护路由
	w = doJSON(t, r, http.MethodGet, "/dashboard", nil, w.Result().Cookies())
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))
}

func TestDocumentLifecycleOverHTTP(t *testing.T) {
	r, _ := newTestRouter(t)
	cookies := login(t, r)

	// 创建
	w := doJSON(t, r, http.MethodPost, "/add", gin.H{
		"numero_dossier": "Dossier001",
		"numero_carton":  "CartonA",
		"modele":         "ModelX",
		"states": []gin.H{
			{"state_type": "BRK", "sub_states": []string{"ecran", "clavier"}, "quantity": "2"},
		},
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var created struct {
		Document struct {
			ID     uint `json:"id"`
			States []struct {
				ID        uint     `json:"id"`
				SubStates []string `json:"sub_states"`
			} `json:"states"`
		} `json:"document"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.Document.ID)
	require.Equal(t, []string{"ecran", "clavier"}, created.Document.States[0].SubStates)

	// 重复的业务主键 → 409
	w = doJSON(t, r, http.MethodPost, "/add", gin.H{
		"numero_dossier": "Dossier001", "numero_carton": "B", "modele": "Y",
	}, cookies)
	require.Equal(t, http.StatusConflict, w.Code)

	// 行内加状态 → {success, message}
	w = doJSON(t, r, http.MethodPost, "/document/1/add_state", gin.H{
		"state_type": "REP", "quantity": "3",
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	var inline struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inline))
	require.True(t, inline.Success)

	// 状态行删除
	w = doJSON(t, r, http.MethodPost, "/state/9999/delete", nil, cookies)
	require.Equal(t, http.StatusNotFound, w.Code)

	// 文档删除
	w = doJSON(t, r, http.MethodPost, "/delete/1", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/edit/1", nil, cookies)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPIDocumentsIsPublic(t *testing.T) {
	r, d := newTestRouter(t)
	require.NoError(t, data.SeedSampleData(d.DB))

	// 开放接口：不带 Cookie 也能读
	w := doJSON(t, r, http.MethodGet, "/api/documents?search=Dossier00", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var docs []struct {
		NumeroDossier string `json:"numero_dossier"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &docs))
	require.Len(t, docs, 3)
}

func TestLogoutIsIdempotent(t *testing.T) {
	r, _ := newTestRouter(t)

	// 未登录时登出也安全
	w := doJSON(t, r, http.MethodGet, "/logout", nil, nil)
	require.Equal(t, http.StatusFound, w.Code)

	cookies := login(t, r)
	w = doJSON(t, r, http.MethodGet, "/logout", nil, cookies)
	require.Equal(t, http.StatusFound, w.Code)

	// 登出后的 Cookie 不再有效
	w = doJSON(t, r, http.MethodGet, "/dashboard", nil, w.Result().Cookies())
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))
}
