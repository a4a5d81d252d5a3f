package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/yousseftayari/ElectroDoc/internal/conf"
	"github.com/yousseftayari/ElectroDoc/internal/data"
	"github.com/yousseftayari/ElectroDoc/internal/handler"
	"github.com/yousseftayari/ElectroDoc/internal/middleware"
	"github.com/yousseftayari/ElectroDoc/internal/repository"
	"github.com/yousseftayari/ElectroDoc/internal/service"
)

func main() {
	// 1. 加载配置
	cfg := conf.LoadConfig()

	// 2. 初始化数据层 (SQLite 单文件 / Postgres)
	d, cleanup, err := data.NewData(cfg)
	if err != nil {
		log.Fatalf("❌ 数据层初始化失败: %v", err)
	}
	defer cleanup()

	userRepo := repository.NewUserRepository(d.DB)

	// 3. 初始化服务层
	authService := service.NewAuthService(userRepo)
	docService := service.NewDocumentService(d)

	// 4. 初始化 Handler (控制器)
	authHandler := handler.NewAuthHandler(authService)
	docHandler := handler.NewDocumentHandler(docService)
	debugHandler := handler.NewDebugHandler(d)

	// 5. 初始化 Gin Web Server
	r := gin.Default()
	r.Use(middleware.TraceMiddleware())

	// Session：Cookie 存储，密钥来自配置
	store := cookie.NewStore([]byte(cfg.App.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 3600,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions("electrodoc_session", store))

	// CORS：/api/documents 有独立客户端要跨域访问
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	// 6. 注册路由
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/login")
	})

	// 账号生命周期
	r.GET("/register", authHandler.RegisterPage)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// 受保护的路由 (Protected Routes)
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

	// 独立客户端的只读 API，沿用源系统的开放访问
	r.GET("/api/documents", docHandler.APIDocuments)

	log.Printf("🚀 ElectroDoc 后端已启动，监听端口 :%s", cfg.App.Port)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("❌ Server 启动失败: %v", err)
	}
}
