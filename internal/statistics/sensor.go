package statistics

import (
	"strconv"

	"github.com/markusressel/steer2go/internal/sensors"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemSensor = "sensor"

type SensorCollector struct {
	sensors []sensors.Sensor
	value   *prometheus.Desc
}

func NewSensorCollector(sensors []sensors.Sensor) *SensorCollector {
	return &SensorCollector{
		sensors: sensors,
		value: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "value"),
			"Current values of the sensor, missing if there is no reading",
			[]string{"id", "index"}, nil,
		),
	}
}

func (collector *SensorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.value
}

// Collect implements required collect function for all prometheus collectors
func (collector *SensorCollector) Collect(ch chan<- prometheus.Metric) {
	for _, sensor := range collector.sensors {
		sensorId := sensor.GetId()
		values, err := sensor.GetValues()
		if err != nil {
			continue
		}
		for i, value := range values {
			ch <- prometheus.MustNewConstMetric(collector.value, prometheus.GaugeValue, value, sensorId, strconv.Itoa(i))
		}
	}
}
