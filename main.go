package main

import (
	"log"
	"strings"
	"time"

	"server/auth"
	"server/config"
	"server/db"
	"server/handlers"
	"server/logger"
	"server/models"
	"server/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName     = "token"
	sessionExpirationTime = 30 * 86400 // 30 days
)

func main() {
	logger.Init(config.LOG_LEVEL)
	db.Init()
	models.Init()

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(config.ALLOWED_ORIGINS, ","),
		AllowMethods:     []string{"GET", "PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))

	cookieStore := gormsessions.NewStore(db.Instance, true, []byte(config.SESSION_KEY))
	cookieStore.Options(sessions.Options{Path: "/", MaxAge: sessionExpirationTime})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression))
	}

	// Custom Auth Router for the admin surface
	authRouter := &auth.Router{Base: router}

	// Admin account handlers
	router.POST("/user/login", handlers.UserLogin)
	router.POST("/user/logout", handlers.UserLogout)
	router.GET("/user/status", handlers.UserStatus)
	router.POST("/user/create", handlers.UserCreate) // bootstrap check inside the handler

	// Public RSVP handlers
	router.POST("/api/search-invite", handlers.SearchInvite)
	router.GET("/api/invite-by-token", handlers.InviteByToken)
	router.POST("/api/confirm-guests", handlers.ConfirmGuests)
	router.GET("/api/public-settings", handlers.PublicSettings)

	// Admin invite/guest handlers
	authRouter.GET("/api/admin/invites", handlers.InviteList)
	authRouter.POST("/api/admin/create-invite", handlers.InviteCreate)
	authRouter.PUT("/api/admin/invites/:id", handlers.InviteSave)
	authRouter.DELETE("/api/admin/invites/:id", handlers.InviteDelete)
	authRouter.POST("/api/admin/invites/generate-token", handlers.InviteGenerateToken)
	authRouter.GET("/api/admin/invites/send-list", handlers.InviteSendList)
	authRouter.DELETE("/api/admin/guests/:id", handlers.GuestDelete)
	// Spreadsheet import/export
	authRouter.POST("/api/admin/upload-invites", handlers.UploadInvites)
	authRouter.GET("/api/admin/export-invites", handlers.ExportInvites)
	// Messages, settings, wipe
	authRouter.GET("/api/admin/messages", handlers.MessageList)
	authRouter.GET("/api/admin/settings", handlers.SettingsGet)
	authRouter.POST("/api/admin/settings", handlers.SettingsSave)
	authRouter.DELETE("/api/admin/delete-all-data", handlers.DeleteAllData)

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
