package server

import (
	"expenseml-server/confs"
	"expenseml-server/db"
	"expenseml-server/handlers"
	httpHandler "expenseml-server/handlers/http"
	"expenseml-server/repositories"
	"expenseml-server/services"
	"expenseml-server/usecases"
	"expenseml-server/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	app *gin.Engine
	db  db.Database
}

func NewServer(database db.Database) *Server {
	return &Server{
		app: gin.Default(),
		db:  database,
	}
}

func (s *Server) Start() {
	// Setup CORS middleware
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true // Allow all origins for development
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	s.app.Use(cors.New(config))

	// Setup healthcheck route
	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "OK",
		})
	})

	jwtSecret := confs.JWTSecret()

	// Initialize repositories
	userRepo := repositories.NewUserPgRepository(s.db)
	expenseRepo := repositories.NewExpensePgRepository(s.db)
	budgetRepo := repositories.NewBudgetPgRepository(s.db)
	reminderRepo := repositories.NewReminderPgRepository(s.db)
	roomRepo := repositories.NewRoomPgRepository(s.db)
	settlementRepo := repositories.NewSettlementPgRepository(s.db)
	marketRepo := repositories.NewMarketPgRepository(s.db)

	// External services
	mlClient := services.NewMLClient(confs.MLServiceURL())
	chatService := services.NewChatService(confs.GeminiAPIKey(), confs.OpenAIAPIKey())
	govClient := services.NewGovMarketClient(confs.GovAPIKey())
	mailer := services.NewMailerFromEnv()

	// Price buffer flushes synced market prices to Postgres in batches
	priceProcessor := services.NewPriceProcessor(marketRepo)
	priceProcessor.Start()

	// Initialize use cases
	authUseCase := usecases.NewAuthUseCase(userRepo, mailer, jwtSecret)
	expenseUseCase := usecases.NewExpenseUseCase(expenseRepo, mlClient)
	budgetUseCase := usecases.NewBudgetUseCase(budgetRepo, expenseRepo)
	reminderUseCase := usecases.NewReminderUseCase(reminderRepo)
	insightsUseCase := usecases.NewInsightsUseCase(expenseRepo, budgetRepo, reminderRepo, mlClient)
	roomUseCase := usecases.NewRoomUseCase(roomRepo, userRepo, settlementRepo, mlClient)
	marketUseCase := usecases.NewMarketUseCase(marketRepo, govClient, mlClient, priceProcessor)
	chatUseCase := usecases.NewChatUseCase(expenseRepo, budgetRepo, reminderRepo, chatService)

	// WebSocket manager and handler
	manager := ws.NewManager()
	wsHandler := handlers.NewRoomWSHandler(manager, jwtSecret)

	// Initialize handlers
	authHandler := httpHandler.NewAuthHandler(authUseCase)
	expenseHandler := httpHandler.NewExpenseHandler(expenseUseCase, insightsUseCase)
	budgetHandler := httpHandler.NewBudgetHandler(budgetUseCase)
	reminderHandler := httpHandler.NewReminderHandler(reminderUseCase)
	roomHandler := httpHandler.NewRoomHandler(roomUseCase, manager)
	marketHandler := httpHandler.NewMarketHandler(marketUseCase)
	chatHandler := httpHandler.NewChatHandler(chatUseCase, authUseCase)

	requireAuth := httpHandler.AuthMiddleware(jwtSecret)

	// Setup API routes
	api := s.app.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/verify-email", authHandler.VerifyEmail)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", requireAuth, authHandler.Me)
		}

		// Expense routes
		expenses := api.Group("/expenses", requireAuth)
		{
			expenses.GET("", expenseHandler.List)
			expenses.POST("", expenseHandler.Create)
			expenses.GET("/prediction", expenseHandler.Prediction) // Next-month spend forecast
			expenses.GET("/insights", expenseHandler.Insights)     // Full financial analysis
			expenses.POST("/predict", expenseHandler.PredictCategory)
			expenses.DELETE("/:id", expenseHandler.Delete)
		}

		// Budget routes
		budgets := api.Group("/budgets", requireAuth)
		{
			budgets.GET("", budgetHandler.List)
			budgets.POST("", budgetHandler.Set)
			budgets.DELETE("/:id", budgetHandler.Delete)
		}

		// Reminder routes
		reminders := api.Group("/reminders", requireAuth)
		{
			reminders.GET("", reminderHandler.List)
			reminders.POST("", reminderHandler.Create)
			reminders.PUT("/:id", reminderHandler.Update)
			reminders.DELETE("/:id", reminderHandler.Delete)
		}

		// Shared room routes
		rooms := api.Group("/rooms", requireAuth)
		{
			rooms.POST("", roomHandler.Create)
			rooms.POST("/join", roomHandler.Join)
			rooms.GET("/myroom", roomHandler.MyRoom)
			rooms.GET("/online", roomHandler.Online)
			rooms.POST("/expenses", roomHandler.AddExpense)
			rooms.GET("/predict", roomHandler.Predict)
			rooms.POST("/settlements", roomHandler.RecordSettlement)
			rooms.GET("/settlements", roomHandler.ListSettlements)
			rooms.PUT("/settlements/:id", roomHandler.MarkSettled)
		}

		// Market routes
		market := api.Group("/market", requireAuth)
		{
			market.GET("/products", marketHandler.Products)
			market.GET("/history/:id", marketHandler.History)
			market.GET("/predict/:id", marketHandler.Predict)
			market.POST("/seed", marketHandler.Seed)
			market.POST("/sync", marketHandler.Sync)
			market.GET("/buffer", marketHandler.BufferStats) // Pending price buffer stats
		}

		// AI assistant route
		api.POST("/chat", requireAuth, chatHandler.Chat)
	}

	s.app.GET("/ws", wsHandler.HandleRoomWS)

	if err := s.app.Run(confs.ServerAddr()); err != nil {
		panic(err)
	}
}
