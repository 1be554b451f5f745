package httpx

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/indraprashad/Adhikari-tech-solution/internal/http/handlers"
	"github.com/indraprashad/Adhikari-tech-solution/internal/http/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Routes collects what the router mounts
type Routes struct {
	Auth      *handlers.AuthHandlers
	Public    *handlers.PublicHandlers
	Admin     *handlers.AdminHandlers
	Functions *handlers.FunctionHandlers

	Client *middleware.ClientMW
	Guard  *middleware.GuardMW
	Casbin *middleware.CasbinMW

	Heartbeat time.Duration
	Log       zerolog.Logger
}

func BuildRouter(rt Routes) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(rt.Log))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(rt.Client.Identify())

	auth := r.Group("/auth")
	auth.GET("/confirm", rt.Auth.Confirm)
	withStore := auth.Group("", rt.Client.WithStore())
	withStore.GET("/session", rt.Auth.Session)
	withStore.POST("/signin", rt.Auth.SignIn)
	withStore.POST("/signup", rt.Auth.SignUp)
	withStore.POST("/signout", rt.Auth.SignOut)
	withStore.POST("/refresh", rt.Auth.Refresh)

	api := r.Group("/api", rt.Client.PeekState(), rt.Casbin.Enforce())
	rt.Public.Register(api)

	heartbeat := rt.Heartbeat
	if heartbeat <= 0 {
		heartbeat = 15 * time.Second
	}
	admin := r.Group("/admin", rt.Client.WithStore())
	admin.GET("", rt.Guard.Screen(), rt.Admin.Page)
	admin.GET("/events", handlers.GuardEvents(heartbeat))

	adminAPI := admin.Group("/api", rt.Guard.API(), rt.Casbin.Enforce())
	rt.Admin.Register(adminAPI)

	fn := r.Group("/functions/v1", rt.Client.WithStore(), rt.Guard.API(), rt.Casbin.Enforce())
	fn.POST("/:name", rt.Functions.Invoke)

	return r
}
