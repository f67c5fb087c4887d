package api

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func CreateWebserver() *echo.Echo {
	webserver := echo.New()
	webserver.HideBanner = true
	webserver.HidePort = true

	// Root level middleware
	webserver.Pre(middleware.AddTrailingSlash())

	webserver.Use(middleware.Secure())
	webserver.Use(middleware.Recover())
	// requests only carry small JSON bodies (speed, sensor values)
	webserver.Use(middleware.BodyLimit("64K"))

	return webserver
}
