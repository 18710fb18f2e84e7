package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"tripiki/cmd/fx/account_fx"
	"tripiki/cmd/fx/controllers_fx"
	"tripiki/cmd/fx/db_fx"
	"tripiki/cmd/fx/journey_fx"
	"tripiki/cmd/fx/logger_fx"
	"tripiki/cmd/fx/tags_fx"
	"tripiki/internal/api/controllers"
	"tripiki/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fx.New(
		logger_fx.Module,
		db_fx.Module,
		account_fx.Module,
		journey_fx.Module,
		tags_fx.Module,
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
				log.Println("Starting HTTP server at ${PORT}")
				if err := engine.Run(":" + os.Getenv("PORT")); err != nil {
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
	journeyController *controllers.JourneyController,
	accountController *controllers.AccountController,
	tagsController *controllers.TagController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, journeyController, accountController, tagsController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	journeyController *controllers.JourneyController,
	accountController *controllers.AccountController,
	tagsController *controllers.TagController) {

	accountsGroup := r.Group("/accounts")
	accountsGroup.POST("/register", accountController.Register)
	accountsGroup.POST("/login", accountController.Login)

	tagsGroup := r.Group("/tags")
	tagsGroup.GET("/default-tags", tagsController.ListDefaultTagsHandler)

	journeysGroup := r.Group("/journeys")
	journeysGroup.Use(middleware.JWTAuthMiddleware())
	journeysGroup.POST("/create-journey", journeyController.CreateJourney)
	journeysGroup.POST("/add-participant", journeyController.AddParticipant)
	journeysGroup.POST("/remove-participant", journeyController.RemoveParticipant)
	journeysGroup.POST("/set-tags", journeyController.SetTags)
	journeysGroup.POST("/add-pikmi", journeyController.AddPikmi)
	journeysGroup.POST("/like-pikmi", journeyController.LikePikmi)
	journeysGroup.POST("/unlike-pikmi", journeyController.UnlikePikmi)
	journeysGroup.POST("/schedule-day", journeyController.ScheduleDay)
	journeysGroup.GET("/get-journey-by-id/:journeyId", journeyController.GetJourneyById)
	journeysGroup.GET("/get-journey-by-userid", journeyController.GetJourneyByUserId)
}
