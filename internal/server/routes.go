package server

import (
	"strings"

	"github.com/rizkyab/partkatalog/internal/auth"
	"github.com/rizkyab/partkatalog/internal/catalog"
	"github.com/rizkyab/partkatalog/internal/config"
	"github.com/rizkyab/partkatalog/internal/estimate"
	"github.com/rizkyab/partkatalog/internal/meta"
	"github.com/rizkyab/partkatalog/internal/part"
	"github.com/rizkyab/partkatalog/internal/upload"
	"github.com/rizkyab/partkatalog/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App, cfg *config.Config) {
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ", "),
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	sessions := auth.New(cfg)
	sheets := catalog.NewHandler(cfg)

	api := app.Group("/api")

	// Session authority
	api.Post("/login", sessions.LoginHandler)
	api.Get("/me", sessions.RequireAuth(), sessions.MeHandler)
	api.Post("/logout", sessions.LogoutHandler)

	api.Post("/upload", sessions.RequireAuth(), upload.UploadHandler)

	// Catalog reads are public; the viewer runs without a session.
	api.Get("/catalog", sheets.CatalogHandler)
	api.Get("/illustrations", sheets.ListIllustrationsHandler)
	api.Get("/illustrations/iid/:iid", sheets.GetIllustrationHandler)
	api.Post("/illustrations", sessions.RequireAuth(), sheets.CreateIllustrationHandler)
	api.Put("/illustrations/iid/:iid", sessions.RequireAuth(), sheets.UpdateIllustrationHandler)
	api.Delete("/illustrations/iid/:iid", sessions.RequireAuth(), sheets.DeleteIllustrationHandler)
	api.Put("/illustrations/iid/:iid/structure", sessions.RequireAuth(), sheets.ReplaceStructureHandler)
	api.Post("/illustrations/iid/:iid/parts", sessions.RequireAuth(), sheets.AddPartHandler)
	api.Delete("/illustrations/iid/:iid/parts/:pid", sessions.RequireAuth(), sheets.RemovePartHandler)

	api.Get("/parts", part.ListPartsHandler)
	api.Post("/parts", sessions.RequireAuth(), part.CreatePartHandler)
	api.Put("/parts/:id", sessions.RequireAuth(), part.UpdatePartHandler)
	api.Delete("/parts/:id", sessions.RequireAuth(), part.DeletePartHandler)

	api.Get("/meta/illustrations/jenis-enum", meta.EnumHandler(cfg.JenisAllowed))
	api.Get("/meta/illustrations/posisi-enum", meta.EnumHandler(cfg.PosisiAllowed))

	users := api.Group("/users", sessions.RequireAuth(), auth.RequireAdmin())
	users.Get("/", user.ListUsersHandler)
	users.Post("/", user.CreateUserHandler)
	users.Put("/:id", user.UpdateUserHandler)
	users.Delete("/:id", user.DeleteUserHandler)

	estimates := api.Group("/estimates", sessions.RequireAuth())
	estimates.Post("/", estimate.CreateEstimateHandler)
	estimates.Get("/", estimate.ListEstimatesHandler)
	estimates.Get("/:id", estimate.GetEstimateHandler)
	estimates.Delete("/:id", estimate.DeleteEstimateHandler)
}
