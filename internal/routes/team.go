package routes

import (
	"gearguard/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runTeamRouter(group *echo.Group, teamCtrl *controllers.TeamController) {
	group.GET("/teams", teamCtrl.GetTeams)
	group.POST("/teams", teamCtrl.CreateTeam)
	group.DELETE("/teams/:id", teamCtrl.DeleteTeam)
}
