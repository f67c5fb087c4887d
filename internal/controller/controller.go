package controller

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/markusressel/steer2go/internal/configuration"
	"github.com/markusressel/steer2go/internal/control_loop"
	"github.com/markusressel/steer2go/internal/filter"
	"github.com/markusressel/steer2go/internal/persistence"
	"github.com/markusressel/steer2go/internal/sensors"
	"github.com/markusressel/steer2go/internal/steering"
	"github.com/markusressel/steer2go/internal/telemetry"
	"github.com/markusressel/steer2go/internal/ui"
	"github.com/markusressel/steer2go/internal/util"
	"github.com/markusressel/steer2go/internal/vehicle"
	"github.com/oklog/run"
)

const (
	// interval in which a changed drive state is written to persistence
	stateSaveInterval = 5 * time.Second
)

var ErrEventQueueFull = errors.New("event queue is full")

// Collaborators are the external components the controller reads from and writes to.
// Sensors, Publisher, Recorder and Persistence are optional.
type Collaborators struct {
	Lane     sensors.Sensor
	Obstacle sensors.Sensor
	Pose     sensors.Sensor

	Vehicle vehicle.Vehicle

	Publisher   *telemetry.Publisher
	Recorder    *telemetry.Recorder
	Persistence persistence.Persistence
}

// SteeringController runs the control loop: it samples the sensors, arbitrates between
// line following and obstacle avoidance, drives the actuators and publishes telemetry.
//
// All control state is owned by the goroutine calling Tick (or Run),
// other goroutines interact with it through Submit and Snapshot.
type SteeringController struct {
	config        configuration.Configuration
	collaborators Collaborators

	filter   *filter.AngleFilter
	pid      *control_loop.PidControlLoop
	arbiter  *steering.Arbiter
	actuator *steering.Actuator
	mode     *steering.ModeController

	events chan Event
	now    func() time.Time

	sensorEveryN   uint64
	stepCount      uint64
	telemetryTimer time.Duration

	state    VehicleState
	stateMu  sync.RWMutex
	dirty    atomic.Bool
	dropped  atomic.Uint64
	lastPose sensors.Pose
}

func NewSteeringController(config configuration.Configuration, collaborators Collaborators) *SteeringController {
	pid := control_loop.NewPidControlLoop(config.Pid.P, config.Pid.I, config.Pid.D, config.Pid.IntegralLimit)
	hasLaneSource := collaborators.Lane != nil

	queueSize := config.ControlLoop.EventQueueSize
	if queueSize <= 0 {
		queueSize = 1
	}

	sensorEveryN := uint64(1)
	if config.ControlLoop.StepInterval > 0 {
		sensorEveryN = uint64(max(1, config.ControlLoop.SensorInterval/config.ControlLoop.StepInterval))
	}

	c := &SteeringController{
		config:        config,
		collaborators: collaborators,
		filter:        filter.NewAngleFilter(config.Filter.WindowSize),
		pid:           pid,
		arbiter: steering.NewArbiter(
			pid,
			steering.NewObstacleAvoidance(config.Obstacle),
			config.Braking.BlindIntensity,
		),
		actuator:     steering.NewActuator(config.Steering, collaborators.Vehicle),
		mode:         steering.NewModeController(hasLaneSource, config.Trim, config.ControlLoop.MaxSpeed, collaborators.Vehicle),
		events:       make(chan Event, queueSize),
		now:          time.Now,
		sensorEveryN: sensorEveryN,
	}

	if c.mode.Mode() == steering.Auto {
		c.mode.SetSpeed(config.ControlLoop.InitialSpeed)
	} else {
		ui.Warning("No lane source configured, starting in manual mode")
	}
	c.updateState(steering.Decision{Branch: steering.BranchBlind}, false)

	return c
}

// SetClock replaces the time source used for telemetry timestamps
func (c *SteeringController) SetClock(now func() time.Time) {
	c.now = now
}

// RestoreState applies the drive state saved by a previous run, if any
func (c *SteeringController) RestoreState() {
	p := c.collaborators.Persistence
	if p == nil {
		return
	}
	saved, err := p.LoadDriveState(persistence.DefaultVehicleId)
	if err != nil {
		ui.Debug("No drive state to restore: %v", err)
		return
	}
	mode, err := steering.ParseMode(saved.Mode)
	if err != nil {
		ui.Warning("Ignoring saved drive state: %v", err)
		return
	}
	c.mode.Restore(mode, saved.TrimStep, saved.Speed)
	if c.mode.Mode() == steering.Manual {
		c.actuator.Apply(c.mode.TrimAngle())
	}
	ui.Info("Restored drive state: mode %s, speed %.0f km/h, trim %d", c.mode.Mode(), c.mode.Speed(), c.mode.TrimStep())
	c.updateState(steering.Decision{Branch: steering.BranchBlind}, false)
}

// SaveState writes the current drive state to persistence
func (c *SteeringController) SaveState() error {
	p := c.collaborators.Persistence
	if p == nil {
		return nil
	}
	snapshot := c.Snapshot()
	err := p.SaveDriveState(persistence.DefaultVehicleId, persistence.DriveState{
		Mode:     snapshot.Mode,
		TrimStep: snapshot.TrimStep,
		Speed:    snapshot.Speed,
		SavedAt:  c.now(),
	})
	if err == nil {
		c.dirty.Store(false)
	}
	return err
}

// Run drives the control loop in real time until ctx is done
func (c *SteeringController) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ui.Info("Starting control loop (step %s, mode %s)", c.config.ControlLoop.StepInterval, c.mode.Mode())

	var g run.Group
	{
		g.Add(func() error {
			ticker := time.NewTicker(c.config.ControlLoop.StepInterval)
			defer ticker.Stop()
			last := time.Now()
			for {
				select {
				case <-ctx.Done():
					return nil
				case now := <-ticker.C:
					c.Tick(now.Sub(last))
					last = now
				}
			}
		}, func(err error) {
			cancel()
		})
	}
	if c.collaborators.Persistence != nil {
		g.Add(func() error {
			ticker := time.NewTicker(stateSaveInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					if !c.dirty.Load() {
						continue
					}
					if err := c.SaveState(); err != nil {
						ui.Warning("Error saving drive state: %v", err)
					}
				}
			}
		}, func(err error) {
			cancel()
		})
	}

	err := g.Run()

	if saveErr := c.SaveState(); saveErr != nil {
		ui.Warning("Error saving drive state: %v", saveErr)
	}
	return err
}

// Submit enqueues an operator event, which is applied at the start of the next tick.
// Returns false if the queue is full and the event was dropped.
func (c *SteeringController) Submit(event Event) bool {
	select {
	case c.events <- event:
		return true
	default:
		c.dropped.Add(1)
		ui.Warning("Event queue full, dropping %s event", event.Type)
		event.reply(ErrEventQueueFull)
		return false
	}
}

// Snapshot returns a copy of the state after the last tick, safe for concurrent use
func (c *SteeringController) Snapshot() VehicleState {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	state := c.state
	state.EventsDropped = c.dropped.Load()
	if c.collaborators.Publisher != nil {
		state.Subscribers = c.collaborators.Publisher.SubscriberCount()
	}
	return state
}

// Tick advances the controller by a single simulation step of length dt
func (c *SteeringController) Tick(dt time.Duration) {
	c.applyEvents()

	var decision steering.Decision
	sampled := false
	if c.stepCount%c.sensorEveryN == 0 {
		decision = c.sample()
		sampled = true
	}
	c.stepCount++

	if simulated, ok := c.collaborators.Vehicle.(vehicle.Simulated); ok {
		simulated.Step(dt)
	}
	c.lastPose = c.readPose()

	c.telemetryTimer += dt
	if c.telemetryTimer >= c.config.ControlLoop.PublishInterval {
		c.telemetryTimer = 0
		c.publish(telemetry.NewFrame(c.lastPose, c.now()))
	}

	c.updateState(decision, sampled)
}

func (c *SteeringController) applyEvents() {
	for {
		select {
		case event := <-c.events:
			event.reply(c.apply(event))
		default:
			return
		}
	}
}

func (c *SteeringController) apply(event Event) error {
	c.dirty.Store(true)
	switch event.Type {
	case SpeedUp:
		c.mode.AdjustSpeed(c.config.ControlLoop.SpeedIncrement)
	case SpeedDown:
		c.mode.AdjustSpeed(-c.config.ControlLoop.SpeedIncrement)
	case SetSpeed:
		c.mode.SetSpeed(event.Value)
	case SteerLeft, SteerRight:
		step := 1
		if event.Type == SteerLeft {
			step = -1
		}
		if angle, ok := c.mode.Trim(step); ok {
			c.actuator.Apply(angle)
		} else {
			ui.Debug("Steering trim limit reached: %d", c.mode.TrimStep())
		}
	case RequestAuto:
		if err := c.mode.RequestAuto(); err != nil {
			ui.Warning("%v", err)
			return err
		}
		ui.Info("Auto-drive ON")
	default:
		return ErrUnknownEvent
	}
	return nil
}

// sample reads all sensors and, in auto mode, steers according to the arbitration result
func (c *SteeringController) sample() steering.Decision {
	rawLane := util.None[float64]()
	lane := util.None[float64]()
	if c.collaborators.Lane != nil {
		var err error
		rawLane, err = sensors.ReadLane(c.collaborators.Lane)
		if err != nil {
			c.sensorError(err)
		}
		lane = c.filter.Update(rawLane)
	}

	obstacle := util.None[sensors.Obstacle]()
	if c.collaborators.Obstacle != nil {
		var err error
		obstacle, err = sensors.ReadObstacle(c.collaborators.Obstacle)
		if err != nil {
			c.sensorError(err)
		}
	}

	c.stateMu.Lock()
	c.state.RawLane = rawLane.Ptr()
	c.state.Lane = lane.Ptr()
	c.state.Obstacle = obstacle.Ptr()
	c.stateMu.Unlock()

	if c.mode.Mode() != steering.Auto || c.collaborators.Lane == nil {
		return steering.Decision{}
	}

	decision := c.arbiter.Decide(lane, obstacle, c.actuator.Current())
	if c.collaborators.Vehicle != nil {
		if err := c.collaborators.Vehicle.SetBrakeIntensity(decision.Brake); err != nil {
			ui.Warning("Error forwarding brake intensity %.2f: %v", decision.Brake, err)
		}
	}
	if target, ok := decision.Steering.Get(); ok {
		c.actuator.Apply(target)
	}
	return decision
}

func (c *SteeringController) readPose() sensors.Pose {
	if c.collaborators.Pose != nil {
		pose, ok, err := sensors.ReadPose(c.collaborators.Pose)
		if err != nil {
			c.sensorError(err)
		}
		if ok {
			return pose
		}
		return c.lastPose
	}
	if c.collaborators.Vehicle != nil {
		if pose, ok := c.collaborators.Vehicle.GetPose(); ok {
			return pose
		}
	}
	return c.lastPose
}

func (c *SteeringController) publish(frame telemetry.Frame) {
	if c.collaborators.Recorder != nil {
		c.collaborators.Recorder.Record(frame)
	}
	if c.collaborators.Publisher != nil {
		if err := c.collaborators.Publisher.Publish(frame); err != nil {
			ui.Warning("Error publishing telemetry: %v", err)
		}
	}
}

func (c *SteeringController) sensorError(err error) {
	ui.Debug("Error reading sensor: %v", err)
	c.stateMu.Lock()
	c.state.SensorErrors++
	c.stateMu.Unlock()
}

func (c *SteeringController) updateState(decision steering.Decision, sampled bool) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()

	s := &c.state
	s.Mode = c.mode.Mode().String()
	s.SteeringAngle = c.actuator.Current()
	s.TrimStep = c.mode.TrimStep()
	s.Speed = c.mode.Speed()
	s.Pose = c.lastPose
	s.Pid = c.pid.State()
	s.Ticks = c.stepCount

	if !sampled {
		return
	}
	s.SensorSamples++
	if c.mode.Mode() != steering.Auto || c.collaborators.Lane == nil {
		s.Branch = ""
		s.SteeringTarget = nil
		s.AvoidanceBias = nil
		s.LineCorrection = nil
		return
	}
	s.Branch = decision.Branch.String()
	s.Brake = decision.Brake
	s.SteeringTarget = decision.Steering.Ptr()
	s.AvoidanceBias = decision.Avoidance.Ptr()
	s.LineCorrection = decision.Line.Ptr()
	switch decision.Branch {
	case steering.BranchAvoid:
		s.AvoidTicks++
	case steering.BranchFollow:
		s.FollowTicks++
	case steering.BranchBlind:
		s.BlindTicks++
	}
}
