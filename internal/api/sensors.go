package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/steer2go/internal/sensors"
	"github.com/qdm12/reprint"
)

type sensorValuesRequest struct {
	Values []float64 `json:"values"`
}

func registerSensorEndpoints(rest *echo.Echo) {
	group := rest.Group("/sensor")

	group.GET("/", getSensors)
	group.GET("/:"+urlParamId+"/", getSensor)
	group.POST("/:"+urlParamId+"/", setSensorValues)
}

func getSensors(c echo.Context) error {
	result := map[string][]float64{}
	for id, sensor := range sensors.SensorMap.Items() {
		values, _ := sensor.GetValues()
		result[id] = values
	}
	data := reprint.This(result)
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getSensor(c echo.Context) error {
	id := c.Param(urlParamId)

	sensor, exists := sensors.SensorMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}
	values, err := sensor.GetValues()
	if err != nil {
		return returnError(c, http.StatusInternalServerError, "Unknown Error", err)
	}
	return c.JSONPretty(http.StatusOK, &sensorValuesRequest{Values: values}, indentationChar)
}

// setSensorValues replaces the reading of a virtual sensor, an empty list clears it
func setSensorValues(c echo.Context) error {
	id := c.Param(urlParamId)

	sensor, exists := sensors.SensorMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}
	virtual, ok := sensor.(*sensors.VirtualSensor)
	if !ok {
		return returnBadRequest(c, errors.New("only virtual sensors can be written"))
	}

	var request sensorValuesRequest
	if err := c.Bind(&request); err != nil {
		return returnBadRequest(c, err)
	}
	virtual.SetValues(request.Values...)
	return c.JSONPretty(http.StatusOK, &request, indentationChar)
}
