package simulate

import (
	"github.com/markusressel/steer2go/internal/controller"
	"github.com/markusressel/steer2go/internal/simulation"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestBranchRows(t *testing.T) {
	// GIVEN
	result := simulation.Result{
		Samples: []simulation.Sample{
			{Branch: ""},
			{Branch: "follow"},
			{Branch: "follow"},
			{Branch: "avoid"},
			{Branch: "follow"},
		},
	}

	// WHEN
	rows := branchRows(result)

	// THEN
	assert.Equal(t, [][]string{
		{"manual", "1"},
		{"follow", "3"},
		{"avoid", "1"},
	}, rows)
}

func TestSummary(t *testing.T) {
	// GIVEN
	result := simulation.Result{
		Scenario: "curve",
		Samples:  make([]simulation.Sample, 200),
		Final: controller.VehicleState{
			Mode:          "auto",
			Speed:         55,
			SteeringAngle: 0.0256,
			Brake:         0.4,
		},
	}

	// WHEN
	row := summary(result)

	// THEN
	assert.Equal(t, []string{"curve", "200", "0", "auto", "55.0 kph", "0.0256", "0.40"}, row)
}

func TestSteeringRow(t *testing.T) {
	// GIVEN
	result := simulation.Result{
		Samples: []simulation.Sample{
			{Steering: -0.1},
			{Steering: 0.05},
			{Steering: 0.2},
		},
	}

	// WHEN
	row := steeringRow(result)

	// THEN
	assert.Equal(t, []string{"-0.1000", "0.0500", "0.2000"}, row)
}
