package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"famboard/internal/config"
	"famboard/internal/handler"
	"famboard/internal/middleware"
	"famboard/internal/model"
	"famboard/internal/repository"
	"famboard/internal/taskboard"
	"famboard/migrations"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("❌ failed to run migrations: %w", err)
	}
	log.Println("✅ Migrations applied")

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	householdRepo := repository.NewHouseholdRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// One board engine per member, sharing the gorm repository as the
	// persistence port. Events feed the server log so board activity is
	// visible without a front end attached.
	boards := taskboard.NewBoards(taskRepo, taskboard.Events{
		TaskAdded: func(t model.Task) {
			log.Printf("task %s added for %s", t.ID, t.AssigneeID)
		},
		TaskDeleted: func(t model.Task) {
			log.Printf("task %s deleted for %s", t.ID, t.AssigneeID)
		},
		TaskToggled: func(t model.Task) {
			log.Printf("task %s toggled, open=%v", t.ID, t.IsOpen)
		},
		TaskMoved: func(g taskboard.Group, list []model.Task) {
			log.Printf("%s list reordered, %d tasks", g, len(list))
		},
		RecurringTaskSpawned: func(t model.Task) {
			log.Printf("recurring task %s spawned (%s)", t.ID, t.Recurrence)
		},
	})

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo)
	householdHandler := handler.NewHouseholdHandler(householdRepo)
	memberHandler := handler.NewMemberHandler(memberRepo, householdRepo, boards)
	taskHandler := handler.NewTaskHandler(boards, taskRepo, memberRepo, userRepo)

	// Public routes
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// Household routes
		authorized.POST("/households", householdHandler.Create)
		authorized.GET("/households/:id/members", memberHandler.GetByHousehold)

		// Member routes
		authorized.POST("/members", memberHandler.Create)
		authorized.GET("/members/:id", memberHandler.GetByID)
		authorized.PUT("/members/:id", memberHandler.Update)
		authorized.DELETE("/members/:id", memberHandler.Delete)

		// Task board routes
		authorized.GET("/members/:id/tasks", taskHandler.GetBoard)
		authorized.POST("/members/:id/tasks/undo", taskHandler.Undo)
		authorized.GET("/tasks", taskHandler.HouseholdTasks)
		authorized.POST("/tasks", taskHandler.Create)
		authorized.PUT("/tasks/:id", taskHandler.Update)
		authorized.DELETE("/tasks/:id", taskHandler.Delete)
		authorized.POST("/tasks/:id/toggle", taskHandler.Toggle)
		authorized.POST("/tasks/:id/move", taskHandler.Move)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func runMigrations(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return err
	}
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
