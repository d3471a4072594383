package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/satriobayu/authsvc/internal/service"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Sessions       *service.SessionService
	Profiles       *service.ProfileService
	Cookie         CookieConfig
	Logger         *zap.Logger
	AllowedOrigins []string
	AvatarMaxBytes int64
}

func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(
		gin.CustomRecovery(recoverPanic),
		RequestLogger(deps.Logger),
		MetricsMiddleware(),
		CORSMiddleware(deps.AllowedOrigins, true),
	)
	router.MaxMultipartMemory = deps.AvatarMaxBytes + 1<<20

	router.GET("/", Root)
	router.GET("/ping", Ping)
	router.GET("/openapi.json", OpenAPIDoc)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := NewAuthHandler(deps.Sessions, deps.Cookie)
	userHandler := NewUserHandler(deps.Profiles, deps.AvatarMaxBytes)

	api := router.Group("/api/user")
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)
	api.POST("/refresh", authHandler.Refresh)

	protected := api.Group("", AuthMiddleware(deps.Sessions))
	protected.GET("/me", userHandler.Me)
	protected.PATCH("/username", userHandler.UpdateUsername)
	protected.PATCH("/password", userHandler.UpdatePassword)
	protected.PATCH("/avatar", userHandler.UpdateAvatar)

	return router, nil
}
