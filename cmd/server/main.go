package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/teamspace/backend/internal/config"
	"github.com/teamspace/backend/internal/database"
	"github.com/teamspace/backend/internal/handlers"
	"github.com/teamspace/backend/internal/middleware"
	"github.com/teamspace/backend/internal/notify"
	"github.com/teamspace/backend/internal/storage"
	"github.com/teamspace/backend/internal/store"
	"github.com/teamspace/backend/pkg/logger"
	"github.com/teamspace/backend/pkg/utils"
)

func main() {
	_ = godotenv.Load()
	logger.Init()

	cfg := config.Load()

	hostPasswordHash, err := utils.HashPassword(cfg.Auth.HostPassword)
	if err != nil {
		log.Fatalf("failed hashing host password: %v", err)
	}

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	storageClient, err := storage.NewMinIOClient(cfg.MinIO)
	if err != nil {
		log.Fatalf("minio initialization failed: %v", err)
	}
	if err := storageClient.EnsureBucket(context.Background()); err != nil {
		log.Fatalf("failed ensuring minio bucket: %v", err)
	}

	notifier := notify.NewRedisNotifier(cfg.Redis)
	defer notifier.Close()

	watchCtx, cancelWatch := context.WithCancel(context.Background())
	defer cancelWatch()

	st := store.New(db, storageClient, notifier, cfg.Sync.ReloadDebounce)
	if err := st.LoadAll(watchCtx); err != nil {
		log.Fatalf("initial data load failed: %v", err)
	}
	st.Start(watchCtx)
	defer st.Close()

	authHandler := handlers.NewAuthHandler(db, hostPasswordHash)
	filesHandler := handlers.NewFilesHandler(st)
	subfoldersHandler := handlers.NewSubfoldersHandler(st)
	membersHandler := handlers.NewMembersHandler(st)
	teamsHandler := handlers.NewTeamsHandler(st)
	stateHandler := handlers.NewStateHandler(st)

	authMiddleware := middleware.NewAuthMiddleware(db)

	app := fiber.New(fiber.Config{BodyLimit: 100 * 1024 * 1024})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.SecurityLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Get("/me", authMiddleware.RequireAuth, authHandler.Me)
	authRoutes.Post("/logout", authMiddleware.RequireAuth, authHandler.Logout)

	api.Get("/state", authMiddleware.RequireAuth, stateHandler.Get)
	api.Post("/save", authMiddleware.RequireAuth, middleware.RequireHost, stateHandler.Save)

	fileRoutes := api.Group("/files", authMiddleware.RequireAuth)
	fileRoutes.Get("/", filesHandler.List)
	fileRoutes.Post("/upload", middleware.RequireHost, filesHandler.Upload)
	fileRoutes.Post("/drive-link", middleware.RequireHost, filesHandler.AddDriveLink)
	fileRoutes.Put("/:id", middleware.RequireHost, filesHandler.Update)
	fileRoutes.Delete("/:id", middleware.RequireHost, filesHandler.Delete)

	subfolderRoutes := api.Group("/subfolders", authMiddleware.RequireAuth)
	subfolderRoutes.Get("/", subfoldersHandler.List)
	subfolderRoutes.Post("/", middleware.RequireHost, subfoldersHandler.Create)
	subfolderRoutes.Put("/:id", middleware.RequireHost, subfoldersHandler.Update)
	subfolderRoutes.Delete("/:id", middleware.RequireHost, subfoldersHandler.Delete)

	memberRoutes := api.Group("/members", authMiddleware.RequireAuth)
	memberRoutes.Get("/", membersHandler.List)
	memberRoutes.Post("/", middleware.RequireHost, membersHandler.Create)
	memberRoutes.Put("/:id", middleware.RequireHost, membersHandler.Update)
	memberRoutes.Delete("/:id", middleware.RequireHost, membersHandler.Delete)

	teamRoutes := api.Group("/teams", authMiddleware.RequireAuth)
	teamRoutes.Get("/", teamsHandler.List)
	teamRoutes.Get("/breadcrumbs", teamsHandler.Breadcrumbs)
	teamRoutes.Get("/:id", teamsHandler.Get)

	listenAddr := fmt.Sprintf(":%s", cfg.Server.Port)

	logger.Info("server_starting", map[string]interface{}{
		"port":    cfg.Server.Port,
		"address": listenAddr,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(listenAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("shutting down server due to signal: %s", sig)
		shutdownDone := make(chan struct{})
		go func() {
			_ = app.Shutdown()
			close(shutdownDone)
		}()
		select {
		case <-shutdownDone:
		case <-time.After(10 * time.Second):
			log.Print("forced shutdown timeout reached")
		}
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	}
}
