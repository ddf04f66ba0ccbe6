package routes

import (
	"Food-Tracker/internal/api/handlers"
	"Food-Tracker/internal/middleware"
	"Food-Tracker/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	App          *fiber.App
	FoodHandler  handlers.FoodHandler
	VoiceHandler handlers.VoiceHandler
	Middleware   middleware.Middleware
	JWTService   jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.FoodItems()
	c.Voice()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

func (c *Config) FoodItems() {
	foodItems := c.App.Group("/api/v1/food-items", c.Middleware.AuthMiddleware(c.JWTService))
	foodItems.Get("/stats", c.FoodHandler.GetStats)

	foodItems.Post("", c.FoodHandler.AddFoodItem)
	foodItems.Get("", c.FoodHandler.GetFoodItems)
	foodItems.Get("/:id", c.FoodHandler.GetFoodItemDetails)
	foodItems.Put("/:id", c.FoodHandler.UpdateFoodItem)
	foodItems.Delete("/:id", c.FoodHandler.DeleteFoodItem)
}

func (c *Config) Voice() {
	voice := c.App.Group("/api/v1/voice", c.Middleware.AuthMiddleware(c.JWTService))
	voice.Get("/test", c.VoiceHandler.VoiceTest)
	voice.Post("/transcript", c.VoiceHandler.HandleTranscript)
	voice.Post("/assistant", c.VoiceHandler.HandleAudio)
}
