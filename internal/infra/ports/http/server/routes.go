package server

import (
	"github.com/labstack/echo/v4"

	"github.com/meetu-app/meetu-server/internal/application/config"
	"github.com/meetu-app/meetu-server/internal/infra/adapters/postgres/repository"
	"github.com/meetu-app/meetu-server/internal/infra/ports/http/handlers"
	"github.com/meetu-app/meetu-server/internal/infra/ports/http/middleware"
)

func New(
	cfg *config.Config,
	userRepo repository.UserRepository,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	roomHandler *handlers.RoomHandler,
	reportHandler *handlers.ReportHandler,
	adminHandler *handlers.AdminHandler,
) *echo.Echo {
	e := echo.New()

	e.HideBanner = true

	e.Use(middleware.SlogLogger())
	e.Use(middleware.PrometheusMiddleware())

	api := e.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		v1 := api.Group("/v1")
		v1.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
		{
			v1.GET("/me", authHandler.GetMe)
			v1.POST("/me/verification", authHandler.SubmitStudentCard)

			v1.GET("/me/profile", profileHandler.GetProfileHandler)
			v1.PUT("/me/profile", profileHandler.UpsertProfileHandler)
			v1.GET("/me/preference", profileHandler.GetPreferenceHandler)
			v1.PUT("/me/preference", profileHandler.UpsertPreferenceHandler)

			v1.GET("/rooms", roomHandler.ListRoomsHandler)
			v1.POST("/rooms", roomHandler.CreateRoomHandler)
			v1.GET("/rooms/mine", roomHandler.ListMyRoomsHandler)
			v1.GET("/rooms/:id", roomHandler.GetRoomHandler)
			v1.DELETE("/rooms/:id", roomHandler.CloseRoomHandler)
			v1.POST("/rooms/:id/join", roomHandler.JoinRoomHandler)
			v1.POST("/rooms/:id/exit", roomHandler.ExitRoomHandler)
			v1.POST("/rooms/:id/handover", roomHandler.HandoverRoomHandler)

			v1.POST("/reports", reportHandler.CreateReportHandler)

			admin := v1.Group("/admin")
			admin.Use(middleware.AdminOnly(userRepo))
			{
				admin.GET("/verifications", adminHandler.ListVerificationsHandler)
				admin.POST("/verifications/:user_id", adminHandler.ReviewVerificationHandler)
				admin.GET("/reports", adminHandler.ListReportsHandler)
			}
		}
	}

	return e
}
