package telemetry

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/markusressel/steer2go/internal/configuration"
	"github.com/markusressel/steer2go/internal/util"
)

var recorderHeader = []string{"session", "ts", "speed_mps", "speed_mph", "speed_kph", "pos_x", "pos_z"}

// Recorder keeps the most recent frames of a session in memory and exports them as CSV
type Recorder struct {
	config    configuration.RecorderConfig
	sessionId string

	mu     sync.Mutex
	frames []Frame
}

func NewRecorder(config configuration.RecorderConfig) *Recorder {
	return &Recorder{
		config:    config,
		sessionId: uuid.NewString(),
	}
}

func (r *Recorder) SessionId() string {
	return r.sessionId
}

// Record appends a frame, dropping the oldest one if maxFrames is exceeded
func (r *Recorder) Record(frame Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, frame)
	if r.config.MaxFrames > 0 && len(r.frames) > r.config.MaxFrames {
		r.frames = r.frames[len(r.frames)-r.config.MaxFrames:]
	}
}

// Frames returns a copy of all recorded frames
func (r *Recorder) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]Frame, len(r.frames))
	copy(result, r.frames)
	return result
}

// Export writes all recorded frames to the configured path
func (r *Recorder) Export() error {
	return r.ExportTo(r.config.Path)
}

// ExportTo writes all recorded frames to the given path, replacing the file atomically
func (r *Recorder) ExportTo(path string) error {
	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)
	if err := writer.Write(recorderHeader); err != nil {
		return err
	}
	for _, frame := range r.Frames() {
		err := writer.Write([]string{
			r.sessionId,
			formatFloat(frame.Ts),
			formatFloat(frame.SpeedMps),
			formatFloat(frame.SpeedMph),
			formatFloat(frame.SpeedKph),
			formatFloat(frame.PosX),
			formatFloat(frame.PosZ),
		})
		if err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return util.WriteFileAtomic(path, &buffer)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
