package statistics

import (
	"github.com/markusressel/steer2go/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
)

const telemetrySubsystem = "telemetry"

type TelemetryCollector struct {
	publisher *telemetry.Publisher

	subscribers *prometheus.Desc
	frames      *prometheus.Desc
	dropped     *prometheus.Desc
}

func NewTelemetryCollector(publisher *telemetry.Publisher) *TelemetryCollector {
	return &TelemetryCollector{
		publisher: publisher,
		subscribers: prometheus.NewDesc(prometheus.BuildFQName(namespace, telemetrySubsystem, "subscribers"),
			"Number of connected telemetry subscribers",
			nil, nil,
		),
		frames: prometheus.NewDesc(prometheus.BuildFQName(namespace, telemetrySubsystem, "frames_published_total"),
			"Number of telemetry frames broadcast",
			nil, nil,
		),
		dropped: prometheus.NewDesc(prometheus.BuildFQName(namespace, telemetrySubsystem, "subscribers_dropped_total"),
			"Number of subscribers removed after a failed write or falling behind",
			nil, nil,
		),
	}
}

func (collector *TelemetryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.subscribers
	ch <- collector.frames
	ch <- collector.dropped
}

// Collect implements required collect function for all prometheus collectors
func (collector *TelemetryCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(collector.subscribers, prometheus.GaugeValue, float64(collector.publisher.SubscriberCount()))
	ch <- prometheus.MustNewConstMetric(collector.frames, prometheus.CounterValue, float64(collector.publisher.FramesPublished()))
	ch <- prometheus.MustNewConstMetric(collector.dropped, prometheus.CounterValue, float64(collector.publisher.SubscribersDropped()))
}
