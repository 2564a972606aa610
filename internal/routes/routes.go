package routes

import (
	"github.com/gin-gonic/gin"

	"accountd/internal/handlers"
	"accountd/internal/middleware"
	"accountd/internal/services"
)

func SetupRoutes(
	r *gin.Engine,
	auth services.AuthService,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	verifyHandler *handlers.VerifyHandler,
) *gin.Engine {

	// ---- public
	r.POST("/register", userHandler.Register)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)
	r.POST("/refresh", authHandler.Refresh)
	r.POST("/verify", verifyHandler.Verify)
	r.POST("/verify/resend", verifyHandler.Resend)

	// USERS
	users := r.Group("/users")
	{
		// token-gated: audience claim must match the requested id
		users.GET("/:id", middleware.RequireAuth(auth), userHandler.GetInfo)

		users.PATCH("/:id/password", userHandler.UpdatePassword)
		users.PATCH("/:id/image", userHandler.UpdateImage)
		users.DELETE("/:id", userHandler.Delete)
	}

	return r
}
