package main

import (
	"log"
	"strings"
	"time"

	"inviteshare/config"
	"inviteshare/db"
	"inviteshare/handlers"
	"inviteshare/models"
	"inviteshare/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

func main() {
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
		AllowOrigins:     config.Origins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/ws"})))
	}
	router.Use(utils.NoCache)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	// User collection
	router.GET("/users", handlers.UserList)
	router.GET("/users/:id", handlers.UserGet)
	router.POST("/users", handlers.UserCreate)
	router.PUT("/users/:id", handlers.UserReplace)
	router.DELETE("/users/:id", handlers.UserDelete)
	// Session collection
	router.GET("/sessions", handlers.SessionList)
	router.POST("/sessions", handlers.SessionCreate)
	router.DELETE("/sessions/:id", handlers.SessionDelete)
	// Invitation collection
	router.GET("/invitations", handlers.InvitationList)
	router.GET("/invitations/:id", handlers.InvitationGet)
	router.POST("/invitations", handlers.InvitationCreate)
	router.PUT("/invitations/:id", handlers.InvitationReplace)
	router.DELETE("/invitations/:id", handlers.InvitationDelete)
	// Change feed
	router.GET("/ws", handlers.Feed)

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
