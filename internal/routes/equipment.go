package routes

import (
	"gearguard/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runEquipmentRouter(group *echo.Group, equipmentCtrl *controllers.EquipmentController) {
	group.GET("/equipment", equipmentCtrl.GetEquipments)
	group.GET("/equipment/export", equipmentCtrl.ExportRegister)
	group.GET("/equipment/:id", equipmentCtrl.FindEquipment)
	group.GET("/equipment/:id/prediction", equipmentCtrl.PredictFailure)
	group.POST("/equipment", equipmentCtrl.CreateEquipment)
	group.PUT("/equipment/:id/status", equipmentCtrl.UpdateStatus)
	group.DELETE("/equipment/:id", equipmentCtrl.DeleteEquipment)
}
