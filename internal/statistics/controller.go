package statistics

import (
	"github.com/markusressel/steer2go/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const controllerSubsystem = "controller"

// StateProvider is implemented by controller.SteeringController
type StateProvider interface {
	Snapshot() controller.VehicleState
}

type ControllerCollector struct {
	controller StateProvider

	auto          *prometheus.Desc
	steeringAngle *prometheus.Desc
	trimStep      *prometheus.Desc
	speedSetpoint *prometheus.Desc
	brake         *prometheus.Desc
	speed         *prometheus.Desc
	pidIntegral   *prometheus.Desc
	ticks         *prometheus.Desc
	branchTicks   *prometheus.Desc
	sensorErrors  *prometheus.Desc
	eventsDropped *prometheus.Desc
}

func NewControllerCollector(controller StateProvider) *ControllerCollector {
	return &ControllerCollector{
		controller: controller,
		auto: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "auto_mode"),
			"1 if the controller is in auto mode, 0 in manual mode",
			nil, nil,
		),
		steeringAngle: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "steering_angle_radians"),
			"Committed steering angle",
			nil, nil,
		),
		trimStep: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "trim_step"),
			"Current manual steering trim step",
			nil, nil,
		),
		speedSetpoint: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "speed_setpoint_kph"),
			"Commanded cruising speed",
			nil, nil,
		),
		brake: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "brake_intensity"),
			"Commanded brake intensity",
			nil, nil,
		),
		speed: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "speed_mps"),
			"Measured vehicle speed",
			nil, nil,
		),
		pidIntegral: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "pid_integral"),
			"Integral accumulator of the lane following PID loop",
			nil, nil,
		),
		ticks: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "ticks_total"),
			"Number of control loop ticks",
			nil, nil,
		),
		branchTicks: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "branch_ticks_total"),
			"Number of sensor samples per arbitration branch",
			[]string{"branch"}, nil,
		),
		sensorErrors: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "sensor_errors_total"),
			"Number of invalid sensor readings",
			nil, nil,
		),
		eventsDropped: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "events_dropped_total"),
			"Number of operator events dropped due to a full queue",
			nil, nil,
		),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.auto
	ch <- collector.steeringAngle
	ch <- collector.trimStep
	ch <- collector.speedSetpoint
	ch <- collector.brake
	ch <- collector.speed
	ch <- collector.pidIntegral
	ch <- collector.ticks
	ch <- collector.branchTicks
	ch <- collector.sensorErrors
	ch <- collector.eventsDropped
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	state := collector.controller.Snapshot()

	auto := 0.0
	if state.Mode == "auto" {
		auto = 1
	}
	ch <- prometheus.MustNewConstMetric(collector.auto, prometheus.GaugeValue, auto)
	ch <- prometheus.MustNewConstMetric(collector.steeringAngle, prometheus.GaugeValue, state.SteeringAngle)
	ch <- prometheus.MustNewConstMetric(collector.trimStep, prometheus.GaugeValue, float64(state.TrimStep))
	ch <- prometheus.MustNewConstMetric(collector.speedSetpoint, prometheus.GaugeValue, state.Speed)
	ch <- prometheus.MustNewConstMetric(collector.brake, prometheus.GaugeValue, state.Brake)
	ch <- prometheus.MustNewConstMetric(collector.speed, prometheus.GaugeValue, state.Pose.SpeedMps)
	ch <- prometheus.MustNewConstMetric(collector.pidIntegral, prometheus.GaugeValue, state.Pid.Integral)
	ch <- prometheus.MustNewConstMetric(collector.ticks, prometheus.CounterValue, float64(state.Ticks))
	ch <- prometheus.MustNewConstMetric(collector.branchTicks, prometheus.CounterValue, float64(state.AvoidTicks), "avoid")
	ch <- prometheus.MustNewConstMetric(collector.branchTicks, prometheus.CounterValue, float64(state.FollowTicks), "follow")
	ch <- prometheus.MustNewConstMetric(collector.branchTicks, prometheus.CounterValue, float64(state.BlindTicks), "blind")
	ch <- prometheus.MustNewConstMetric(collector.sensorErrors, prometheus.CounterValue, float64(state.SensorErrors))
	ch <- prometheus.MustNewConstMetric(collector.eventsDropped, prometheus.CounterValue, float64(state.EventsDropped))
}
