package main

import (
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"github.com/figu920/flowops/internal/config"
	"github.com/figu920/flowops/internal/constants"
	"github.com/figu920/flowops/internal/database"
	"github.com/figu920/flowops/internal/handlers"
	"github.com/figu920/flowops/internal/logger"
	"github.com/figu920/flowops/internal/middleware"
	"github.com/figu920/flowops/internal/repository"
	"github.com/figu920/flowops/internal/services"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.GinMode, cfg.LogLevel)

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	db := database.GetDB()

	r := gin.Default()

	// Sessions live in Redis so that restarts don't log everyone out.
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(10, "tcp", redisAddr, "", "", []byte(cfg.SessionSecret))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Redis session store")
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	checklistRepo := repository.NewChecklistRepository(db)
	weeklyTaskRepo := repository.NewWeeklyTaskRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	timelineRepo := repository.NewTimelineRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	chatRepo := repository.NewChatRepository(db)

	// Services
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo, timelineRepo, notificationRepo)
	inventoryService := services.NewInventoryService(inventoryRepo, timelineRepo)
	equipmentService := services.NewEquipmentService(equipmentRepo, timelineRepo)
	checklistService := services.NewChecklistService(checklistRepo, timelineRepo)
	weeklyTaskService := services.NewWeeklyTaskService(weeklyTaskRepo, timelineRepo)
	menuService := services.NewMenuService(menuRepo, inventoryRepo, timelineRepo)
	saleService := services.NewSaleService(saleRepo, menuRepo, log)
	timelineService := services.NewTimelineService(timelineRepo)
	notificationService := services.NewNotificationService(notificationRepo)
	chatService := services.NewChatService(chatRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	equipmentHandler := handlers.NewEquipmentHandler(equipmentService)
	checklistHandler := handlers.NewChecklistHandler(checklistService)
	weeklyTaskHandler := handlers.NewWeeklyTaskHandler(weeklyTaskService)
	menuHandler := handlers.NewMenuHandler(menuService)
	saleHandler := handlers.NewSaleHandler(saleService)
	timelineHandler := handlers.NewTimelineHandler(timelineService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	chatHandler := handlers.NewChatHandler(chatService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "FlowOps API is running",
		})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		users := api.Group("/users")
		users.Use(middleware.RequireAuth())
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", middleware.RequireUserManager(), userHandler.CreateUser)
			users.POST("/:id/approve", userHandler.ApproveUser)
			users.POST("/:id/reject", userHandler.RejectUser)
			users.DELETE("/:id", middleware.RequireUserManager(), userHandler.DeactivateUser)
		}

		inventory := api.Group("/inventory")
		inventory.Use(middleware.RequireAuth())
		{
			inventory.GET("", inventoryHandler.ListItems)
			inventory.POST("", inventoryHandler.CreateItem)
			inventory.PATCH("/:id", inventoryHandler.UpdateItem)
			inventory.DELETE("/:id", inventoryHandler.DeleteItem)
		}

		equipment := api.Group("/equipment")
		equipment.Use(middleware.RequireAuth())
		{
			equipment.GET("", equipmentHandler.ListEquipment)
			equipment.POST("", equipmentHandler.CreateEquipment)
			equipment.PATCH("/:id", equipmentHandler.UpdateEquipment)
			equipment.DELETE("/:id", equipmentHandler.DeleteEquipment)
		}

		checklists := api.Group("/checklists")
		checklists.Use(middleware.RequireAuth())
		{
			checklists.GET("", checklistHandler.ListItems)
			checklists.POST("", checklistHandler.CreateItem)
			checklists.PATCH("/:id", checklistHandler.UpdateItem)
			checklists.DELETE("/:id", checklistHandler.DeleteItem)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", weeklyTaskHandler.ListTasks)
			tasks.POST("", weeklyTaskHandler.CreateTask)
			tasks.PATCH("/:id", weeklyTaskHandler.UpdateTask)
			tasks.DELETE("/:id", weeklyTaskHandler.DeleteTask)
			tasks.POST("/:id/complete", weeklyTaskHandler.CompleteTask)
			tasks.GET("/:id/completions", weeklyTaskHandler.ListCompletions)
		}

		menu := api.Group("/menu")
		menu.Use(middleware.RequireAuth())
		{
			menu.GET("", menuHandler.ListItems)
			menu.POST("", menuHandler.CreateItem)
			menu.GET("/:id", menuHandler.GetItem)
			menu.POST("/:id/ingredients", menuHandler.AddIngredient)
		}

		sales := api.Group("/sales")
		sales.Use(middleware.RequireAuth())
		{
			sales.GET("", saleHandler.ListSales)
			sales.POST("", saleHandler.RecordSale)
		}

		timeline := api.Group("/timeline")
		timeline.Use(middleware.RequireAuth())
		{
			timeline.GET("", timelineHandler.ListEvents)
		}

		notifications := api.Group("/notifications")
		notifications.Use(middleware.RequireAuth())
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.POST("/:id/read", notificationHandler.MarkRead)
		}

		chat := api.Group("/chat")
		chat.Use(middleware.RequireAuth())
		{
			chat.GET("", chatHandler.ListMessages)
			chat.POST("", chatHandler.PostMessage)
		}
	}

	log.Info().Str("addr", cfg.ListenAddr).Msg("server starting")
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
