package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/steer2go/internal/configuration"
	"github.com/markusressel/steer2go/internal/controller"
	"github.com/markusressel/steer2go/internal/sensors"
	"github.com/markusressel/steer2go/internal/steering"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeController applies events immediately
type fakeController struct {
	state  controller.VehicleState
	events []controller.Event
	full   bool
}

func (f *fakeController) Snapshot() controller.VehicleState {
	return f.state
}

func (f *fakeController) Submit(event controller.Event) bool {
	if f.full {
		return false
	}
	f.events = append(f.events, event)
	var err error
	switch event.Type {
	case controller.RequestAuto:
		err = steering.ErrNoLaneSource
	case controller.SpeedUp:
		f.state.Speed += 5
	case controller.SetSpeed:
		f.state.Speed = event.Value
	}
	event.Reply <- err
	return true
}

func request(t *testing.T, ctrl Controller, method string, path string, body string) *httptest.ResponseRecorder {
	e := CreateRestService(ctrl, prometheus.NewRegistry())
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	t.Logf("%s %s -> %d %s", method, path, rec.Code, rec.Body.String())
	return rec
}

func TestApi_Alive(t *testing.T) {
	// WHEN
	rec := request(t, &fakeController{}, http.MethodGet, "/alive", "")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestApi_GetState(t *testing.T) {
	// GIVEN
	ctrl := &fakeController{state: controller.VehicleState{Mode: "auto", Speed: 50, SteeringAngle: 0.1}}

	// WHEN
	rec := request(t, ctrl, http.MethodGet, "/state/", "")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var state controller.VehicleState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, ctrl.state, state)
}

func TestApi_SpeedUp(t *testing.T) {
	// GIVEN
	ctrl := &fakeController{state: controller.VehicleState{Speed: 50}}

	// WHEN
	rec := request(t, ctrl, http.MethodPost, "/speed/up/", "")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, controller.SpeedUp, ctrl.events[0].Type)
	assert.Contains(t, rec.Body.String(), `"speed": 55`)
}

func TestApi_SetSpeed(t *testing.T) {
	// GIVEN
	ctrl := &fakeController{}

	// WHEN
	rec := request(t, ctrl, http.MethodPut, "/speed/", `{"speed": 80}`)

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 80.0, ctrl.state.Speed)
}

func TestApi_SetSpeed_MissingValue(t *testing.T) {
	// WHEN
	rec := request(t, &fakeController{}, http.MethodPut, "/speed/", `{}`)

	// THEN
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApi_Steer(t *testing.T) {
	// GIVEN
	ctrl := &fakeController{}

	// WHEN
	request(t, ctrl, http.MethodPost, "/steer/left/", "")
	request(t, ctrl, http.MethodPost, "/steer/right/", "")

	// THEN
	require.Len(t, ctrl.events, 2)
	assert.Equal(t, controller.SteerLeft, ctrl.events[0].Type)
	assert.Equal(t, controller.SteerRight, ctrl.events[1].Type)
}

func TestApi_AutoModeRejected(t *testing.T) {
	// WHEN
	rec := request(t, &fakeController{}, http.MethodPost, "/mode/auto/", "")

	// THEN
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), steering.ErrNoLaneSource.Error())
}

func TestApi_QueueFull(t *testing.T) {
	// WHEN
	rec := request(t, &fakeController{full: true}, http.MethodPost, "/speed/down/", "")

	// THEN
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestApi_SensorValues(t *testing.T) {
	// GIVEN
	sensor := sensors.NewVirtualSensor(configuration.ProviderConfig{ID: "api-lidar"})
	sensors.SensorMap.Set(sensor.GetId(), sensor)
	defer sensors.SensorMap.Remove(sensor.GetId())

	// WHEN
	rec := request(t, &fakeController{}, http.MethodPost, "/sensor/api-lidar/", `{"values": [0.1, 2.5]}`)

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	values, _ := sensor.GetValues()
	assert.Equal(t, []float64{0.1, 2.5}, values)

	// WHEN
	rec = request(t, &fakeController{}, http.MethodGet, "/sensor/api-lidar/", "")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "2.5")
}

func TestApi_SensorNotFound(t *testing.T) {
	// WHEN
	rec := request(t, &fakeController{}, http.MethodGet, "/sensor/missing/", "")

	// THEN
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
