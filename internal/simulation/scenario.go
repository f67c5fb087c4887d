package simulation

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/markusressel/steer2go/internal/controller"
	"gopkg.in/yaml.v3"
)

// Scenario describes the sensor readings and operator inputs of a simulated drive
type Scenario struct {
	Name     string        `yaml:"name"`
	Duration time.Duration `yaml:"duration"`
	// Simulation step, the configured control loop step is used if empty
	Step time.Duration `yaml:"step,omitempty"`

	Segments []Segment       `yaml:"segments"`
	Events   []ScenarioEvent `yaml:"events,omitempty"`
}

// Segment defines the sensor readings from its start time until the next segment starts
type Segment struct {
	From time.Duration `yaml:"from"`
	// Lane angle (rad), missing means no lane detected
	Lane *float64 `yaml:"lane,omitempty"`
	// Obstacle reading, missing means no obstacle detected
	Obstacle *ObstacleReading `yaml:"obstacle,omitempty"`
}

type ObstacleReading struct {
	Bearing  float64 `yaml:"bearing"`
	Distance float64 `yaml:"distance"`
}

type ScenarioEvent struct {
	At    time.Duration `yaml:"at"`
	Type  string        `yaml:"type"`
	Value float64       `yaml:"value,omitempty"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	scenario.sort()
	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if s.Duration <= 0 {
		return errors.New("scenario: duration must be > 0")
	}
	if s.Step < 0 {
		return errors.New("scenario: step must not be negative")
	}
	for i, segment := range s.Segments {
		if segment.From < 0 {
			return fmt.Errorf("scenario: segment %d starts before 0s", i)
		}
		if segment.Obstacle != nil && segment.Obstacle.Distance < 0 {
			return fmt.Errorf("scenario: segment %d has a negative obstacle distance", i)
		}
	}
	for _, event := range s.Events {
		if _, err := controller.ParseEventType(event.Type); err != nil {
			return fmt.Errorf("scenario: event at %s: %w", event.At, err)
		}
	}
	return nil
}

func (s *Scenario) sort() {
	sort.SliceStable(s.Segments, func(i, j int) bool {
		return s.Segments[i].From < s.Segments[j].From
	})
	sort.SliceStable(s.Events, func(i, j int) bool {
		return s.Events[i].At < s.Events[j].At
	})
}

// segmentAt returns the segment active at the given time
func (s *Scenario) segmentAt(t time.Duration) (Segment, bool) {
	var result Segment
	found := false
	for _, segment := range s.Segments {
		if segment.From > t {
			break
		}
		result = segment
		found = true
	}
	return result, found
}
