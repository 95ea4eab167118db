package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/beridzemate00/nieghbornews/auth"
	"github.com/beridzemate00/nieghbornews/cache"
	"github.com/beridzemate00/nieghbornews/controller"
	"github.com/beridzemate00/nieghbornews/middleware"
	"github.com/beridzemate00/nieghbornews/model"
)

// Register wires every API route onto the app.
func Register(app *fiber.App, db *gorm.DB, tokens *auth.TokenService, cch *cache.Cache, uploadDir string) {
	authCtl := controller.NewAuthController(db, tokens)
	newsCtl := controller.NewNewsController(db, uploadDir, cch)
	adminCtl := controller.NewAdminController(db, cch)
	metaCtl := controller.NewMetaController(db, cch)

	authRequired := middleware.AuthRequired(db, tokens)
	adminOnly := middleware.RoleRequired(model.RoleAdmin)

	api := app.Group("/api")

	a := api.Group("/auth")
	a.Post("/register", authCtl.Register)
	a.Post("/login", authCtl.Login)
	a.Get("/me", authRequired, authCtl.Me)

	n := api.Group("/news")
	n.Get("/", newsCtl.List)
	n.Post("/", authRequired, newsCtl.Create)
	n.Get("/:id", newsCtl.Get)
	n.Put("/:id", authRequired, newsCtl.Update)
	n.Delete("/:id", authRequired, newsCtl.Delete)

	adm := api.Group("/admin", authRequired, adminOnly)
	adm.Get("/pending", adminCtl.Pending)
	adm.Post("/verify/:id", adminCtl.Verify)
	adm.Post("/reject/:id", adminCtl.Reject)
	adm.Get("/stats", adminCtl.Stats)

	api.Get("/districts", metaCtl.Districts)
	api.Get("/categories", metaCtl.Categories)
}
