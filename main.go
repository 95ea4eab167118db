package main

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/beridzemate00/nieghbornews/auth"
	"github.com/beridzemate00/nieghbornews/cache"
	"github.com/beridzemate00/nieghbornews/model"
	"github.com/beridzemate00/nieghbornews/routes"
)

func initDB() *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	} else {
		path := getEnv("SQLITE_PATH", "neighbornews.db")
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	}
	if err != nil {
		log.Fatal("failed to connect database:", err)
	}

	if err := db.AutoMigrate(&model.User{}, &model.NewsPost{}); err != nil {
		log.Fatal("failed to migrate:", err)
	}

	return db
}

// seedAdmin creates the bootstrap admin account on first boot.
func seedAdmin(db *gorm.DB) {
	email := getEnv("SEED_ADMIN_EMAIL", "admin@neighbornews.local")

	var admin model.User
	if err := db.Where("email = ?", email).First(&admin).Error; err == nil {
		return
	}

	admin = model.User{
		Name:  "Admin",
		Email: email,
		Role:  model.RoleAdmin,
	}
	if err := admin.SetPassword(getEnv("SEED_ADMIN_PASSWORD", "admin123")); err != nil {
		log.Fatal("failed to hash admin password:", err)
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("failed to seed admin user:", err)
	}
	log.Println("Admin user created:", email)
}

func main() {
	godotenv.Load()

	db := initDB()
	seedAdmin(db)

	tokenTTL, err := time.ParseDuration(getEnv("TOKEN_TTL", "168h"))
	if err != nil {
		log.Fatal("invalid TOKEN_TTL:", err)
	}
	tokens := auth.NewTokenService(getEnv("JWT_SECRET", "jwt-secret-key-change-in-production"), tokenTTL)

	cch := cache.Connect(os.Getenv("REDIS_ADDR"))

	uploadDir := getEnv("UPLOAD_DIR", "static/uploads")
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		log.Fatal("failed to create upload dir:", err)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 16 * 1024 * 1024,
	})
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "neighbornews running",
			"version": "1.0.0",
		})
	})
	app.Static("/static/uploads", uploadDir)

	routes.Register(app, db, tokens, cch, uploadDir)

	port := getEnv("PORT", "5000")
	log.Println("HTTP server running on :" + port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}
