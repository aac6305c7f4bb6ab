package routes

import (
	"gearguard/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runAuthRouter(api *echo.Group, authCtrl *controllers.AuthController) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", authCtrl.Signup)
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/forgot_password", authCtrl.ForgotPassword)
		authGroup.POST("/reset_password", authCtrl.ResetPassword)
	}
}
