package routes

import (
	"gearguard/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runRequestRouter(group *echo.Group, requestCtrl *controllers.RequestController) {
	group.GET("/requests", requestCtrl.GetRequests)
	group.POST("/requests", requestCtrl.CreateRequest)
	group.PUT("/requests/:id/status", requestCtrl.UpdateStatus)
	group.PUT("/requests/:id/assign", requestCtrl.AssignTechnician)
	group.DELETE("/requests/:id", requestCtrl.DeleteRequest)
}
