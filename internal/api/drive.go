package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/steer2go/internal/controller"
	"github.com/markusressel/steer2go/internal/steering"
)

const (
	// upper bound for waiting on the control loop to apply an event
	eventReplyTimeout = 1 * time.Second
)

type speedRequest struct {
	Speed *float64 `json:"speed"`
}

func registerDriveEndpoints(rest *echo.Echo, ctrl Controller) {
	submit := func(eventType controller.EventType) echo.HandlerFunc {
		return func(c echo.Context) error {
			return submitEvent(c, ctrl, controller.NewEvent(eventType))
		}
	}

	rest.POST("/mode/auto/", submit(controller.RequestAuto))

	group := rest.Group("/speed")
	group.POST("/up/", submit(controller.SpeedUp))
	group.POST("/down/", submit(controller.SpeedDown))
	group.PUT("/", func(c echo.Context) error {
		var request speedRequest
		if err := c.Bind(&request); err != nil {
			return returnBadRequest(c, err)
		}
		if request.Speed == nil {
			return returnBadRequest(c, errors.New("missing field 'speed'"))
		}
		return submitEvent(c, ctrl, controller.Event{Type: controller.SetSpeed, Value: *request.Speed})
	})

	group = rest.Group("/steer")
	group.POST("/left/", submit(controller.SteerLeft))
	group.POST("/right/", submit(controller.SteerRight))
}

// submitEvent hands the event to the control loop and waits for it to be applied
func submitEvent(c echo.Context, ctrl Controller, event controller.Event) error {
	event = event.WithReply()
	if !ctrl.Submit(event) {
		return returnError(c, http.StatusServiceUnavailable, "Busy", controller.ErrEventQueueFull)
	}

	select {
	case err := <-event.Reply:
		switch {
		case errors.Is(err, steering.ErrNoLaneSource):
			return returnError(c, http.StatusConflict, "Rejected", err)
		case err != nil:
			return returnError(c, http.StatusInternalServerError, "Unknown Error", err)
		}
	case <-time.After(eventReplyTimeout):
		return returnError(c, http.StatusGatewayTimeout, "Timeout", errors.New("control loop did not respond"))
	case <-c.Request().Context().Done():
		return c.Request().Context().Err()
	}

	return getState(c, ctrl)
}
