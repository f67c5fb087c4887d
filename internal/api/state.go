package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/steer2go/internal/configuration"
	"github.com/qdm12/reprint"
)

func registerStateEndpoints(rest *echo.Echo, ctrl Controller) {
	rest.GET("/state/", func(c echo.Context) error {
		return getState(c, ctrl)
	})
}

func getState(c echo.Context, ctrl Controller) error {
	data := reprint.This(ctrl.Snapshot())
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func registerConfigEndpoints(rest *echo.Echo) {
	rest.GET("/config/", getConfig)
}

func getConfig(c echo.Context) error {
	data := reprint.This(configuration.CurrentConfig)
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}
