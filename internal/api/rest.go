package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/markusressel/steer2go/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	urlParamId      = "id"
	indentationChar = "  "
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

// Controller is the part of controller.SteeringController used by the API
type Controller interface {
	Snapshot() controller.VehicleState
	Submit(event controller.Event) bool
}

// CreateRestService creates the REST API, request metrics are registered with the given registerer
func CreateRestService(ctrl Controller, registerer prometheus.Registerer) *echo.Echo {
	echoRest := CreateWebserver()

	echoRest.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "api",
		Registerer: registerer,
	}))

	echoRest.GET("/alive/", isAlive)

	registerStateEndpoints(echoRest, ctrl)
	registerDriveEndpoints(echoRest, ctrl)
	registerSensorEndpoints(echoRest)
	registerConfigEndpoints(echoRest)

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// return a "not found" message
func returnNotFound(c echo.Context, id string) (err error) {
	return c.JSONPretty(http.StatusNotFound, &Result{
		Name:    "Not found",
		Message: "No item with id '" + id + "' found",
	}, indentationChar)
}

// return a "bad request" message
func returnBadRequest(c echo.Context, e error) (err error) {
	return c.JSONPretty(http.StatusBadRequest, &Result{
		Name:    "Bad Request",
		Message: e.Error(),
	}, indentationChar)
}

// return the error message of an error
func returnError(c echo.Context, status int, name string, e error) (err error) {
	return c.JSONPretty(status, &Result{
		Name:    name,
		Message: e.Error(),
	}, indentationChar)
}
