package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"quizlearn-backend/handlers"
	"quizlearn-backend/middleware"
	"quizlearn-backend/models"
	"quizlearn-backend/services"
	"quizlearn-backend/utils"
	"quizlearn-backend/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 50 * 1024 * 1024, // story illustrations and badge images
	})

	// Only Gateway requests allowed — no exceptions.
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		log.Println("ALLOWED_ORIGINS not set, using default: http://localhost:3000")
		allowedOrigins = "http://localhost:3000"
	}
	origins := strings.Split(allowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-User-ID, X-User-Roles",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Learner{},
		&models.Subject{},
		&models.SubjectPoints{},
		&models.Question{},
		&models.ExamPaper{},
		&models.FavoriteQuestion{},
		&models.Result{},
		&models.Badge{},
		&models.LearnerBadge{},
		&models.DailyGoalStreak{},
		&models.DailyUsage{},
		&models.Story{},
		&models.StoryChapter{},
		&models.DeviceToken{},
		&models.NotificationLog{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	notificationService := services.NewNotificationService(db)
	checkAnswerService := services.NewCheckAnswerService(db)
	badgeService := services.NewBadgeService(db, models.DefaultSubjectMasteryRules, notificationService)
	streakService := services.NewLearnerStreakService(db)
	usageService := services.NewUsageService(db)
	questionService := services.NewQuestionService(db)
	storyService := services.NewStoryService(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notificationWorker := workers.NewNotificationWorker(db,
		os.Getenv("PUSH_GATEWAY_URL"), os.Getenv("PUSH_GATEWAY_KEY"),
		os.Getenv("SMS_GATEWAY_URL"), os.Getenv("SMS_GATEWAY_KEY"),
	)
	notificationWorker.Start(ctx)

	services.StartSchedulers(storyService, questionService, badgeService, notificationService)

	handlers.SetupAnswerRoutes(app, checkAnswerService)
	handlers.SetupStreakRoutes(app, streakService, usageService)
	handlers.SetupBadgeRoutes(app, db, badgeService)
	handlers.SetupQuestionRoutes(app, questionService)
	handlers.SetupStoryRoutes(app, storyService)
	handlers.SetupDeviceRoutes(app, db, notificationService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("server error: %v", err)
		}
	}()

	log.Printf("server running on http://localhost:%s", port)
	log.Println("notification worker running")
	log.Println("schedulers running (publish, badge sweep, reminders)")

	<-ctx.Done()
	log.Println("shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
