package httpv1

import (
	"github.com/Egor213/LogParser/internal/service"
	"github.com/labstack/echo/v4"
)

func ConfigureRouter(handler *echo.Echo, services *service.Services) {
	handler.GET("/logs", NewLogController(services.Querier).GetLogs)
}
