package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"usersadmin/docs"
	"usersadmin/internal/auth"
	"usersadmin/internal/cache"
	"usersadmin/internal/config"
	"usersadmin/internal/db"
	"usersadmin/internal/handler"
	"usersadmin/internal/notify"
	"usersadmin/internal/query"
	"usersadmin/internal/repository"
	"usersadmin/internal/router"
	"usersadmin/internal/service"
	"usersadmin/internal/view"
)

// @title User Management API
// @version 1.0
// @description Role management for application users: list users with their role and change a user's role.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("%v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	store := sharedStore(pingCtx, cacheClient, cfg.RedisAddr)
	cancel()

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(gormDB)
	userRoleRepo := repository.NewUserRoleRepository(gormDB)

	// Initialize services
	queries := query.NewClient(store, cfg.UsersCacheTTL)
	userService := service.NewUserService(profileRepo, userRoleRepo, queries, service.Options{
		Atomic: cfg.RoleUpdateAtomic,
	})
	flashes := notify.NewFlashStore(store)
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Initialize handlers
	pageHandler := handler.NewPageHandler(userService, userService, flashes)
	userHandler := handler.NewUserHandler(userService, userService)

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatalf("templates: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	router.Register(e, jwtService, pageHandler, userHandler)

	if cfg.SwaggerHost != "" {
		// SwaggerHost may already include scheme (http:// or https://)
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	} else {
		docs.SwaggerInfo.Host = "localhost:" + cfg.ServerPort
	}
	log.Printf("Swagger documentation available at: http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}

// store backs both the query cache and the notification queues.
type store interface {
	query.Store
	notify.Backend
}

// sharedStore returns the Redis client when it answers, otherwise an in-process
// store so queries stay cached and notifications still reach this instance's viewers.
func sharedStore(ctx context.Context, c *cache.Client, addr string) store {
	if err := c.Ping(ctx); err != nil {
		log.Printf("Warning: redis unavailable at %s, using in-process cache: %v", addr, err)
		return query.NewMemoryStore()
	}
	return c
}
