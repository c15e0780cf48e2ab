package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"tripweaver/cmd/fx/city_fx"
	"tripweaver/cmd/fx/controllers_fx"
	"tripweaver/cmd/fx/db_fx"
	"tripweaver/cmd/fx/discovery_fx"
	"tripweaver/cmd/fx/engine_fx"
	"tripweaver/cmd/fx/itinerary_fx"
	"tripweaver/cmd/fx/matching_fx"
	"tripweaver/cmd/fx/memcache_fx"
	"tripweaver/cmd/fx/taxonomy_fx"
	"tripweaver/internal/api/controllers"
	"tripweaver/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment directly")
	}

	app := fx.New(
		db_fx.Module,
		memcache_fx.Module,
		taxonomy_fx.Module,
		engine_fx.Module,
		city_fx.Module,
		discovery_fx.Module,
		itinerary_fx.Module,
		matching_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	itinerariesController *controllers.ItinerariesController,
	citiesController *controllers.CitiesController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, itinerariesController, citiesController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	itinerariesController *controllers.ItinerariesController,
	citiesController *controllers.CitiesController) {

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	itinerariesGroup := r.Group("/itineraries")
	itinerariesGroup.POST("/generate", itinerariesController.Generate)
	itinerariesGroup.GET("/:itineraryId", itinerariesController.GetByID)
	itinerariesGroup.POST("", middleware.JWTAuthMiddleware(), itinerariesController.Save)

	citiesGroup := r.Group("/cities")
	citiesGroup.GET("/:slug", citiesController.GetBySlug)
	citiesGroup.GET("/:slug/itineraries", itinerariesController.ListByCity)
}
