package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mstanchev/vaxtrack/internal/middleware"
	"github.com/mstanchev/vaxtrack/internal/service"
)

type RouterDeps struct {
	Auth        *AuthHandler
	Listings    *ListingHandler
	API         *APIHandler
	Sessions    *service.SessionService
	JWTSecret   []byte
	LoginWindow time.Duration
}

func RegisterRoutes(engine *gin.Engine, deps RouterDeps) {
	engine.SetHTMLTemplate(loadTemplates())

	engine.GET("/", deps.Listings.Index)
	engine.GET("/login", deps.Auth.LoginForm)
	engine.POST("/login", middleware.RateLimit(deps.LoginWindow), deps.Auth.Login)
	engine.GET("/register", deps.Auth.RegisterForm)
	engine.POST("/register", middleware.RateLimit(deps.LoginWindow), deps.Auth.Register)

	authGroup := engine.Group("")
	authGroup.Use(middleware.SessionAuth(deps.Sessions))
	authGroup.GET("/my-vaccs", deps.Listings.MyListings)
	authGroup.GET("/add", deps.Listings.AddForm)
	authGroup.POST("/add", deps.Listings.Add)
	authGroup.GET("/logout", deps.Auth.Logout)

	api := engine.Group("/api/v1")
	api.POST("/auth/register", deps.API.Register)
	api.POST("/auth/login", deps.API.Login)
	api.GET("/listings", deps.API.List)

	apiAuth := api.Group("")
	apiAuth.Use(middleware.JWTAuth(deps.JWTSecret))
	apiAuth.GET("/listings/mine", deps.API.ListMine)
	apiAuth.POST("/listings", deps.API.Create)
}
