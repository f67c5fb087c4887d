package state

import (
	"github.com/markusressel/steer2go/internal/persistence"
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func TestStateRow(t *testing.T) {
	// GIVEN
	state := persistence.DriveState{
		Mode:     "manual",
		TrimStep: -3,
		Speed:    42.5,
		SavedAt:  time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
	}

	// WHEN
	row := stateRow("vehicle", state)

	// THEN
	assert.Equal(t, []string{"vehicle", "manual", "-3", "42.5 kph", "2024-05-01T12:30:00Z"}, row)
}
