package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReduceStatusesPicksMostSevere(t *testing.T) {
	cases := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"red wins over everything", []Status{StatusGreen, StatusRed, StatusTBC}, StatusRed},
		{"intermediate collapses to amber", []Status{StatusGreen, StatusAmberRed, StatusGreenAmber}, StatusAmber},
		{"green over tbc", []Status{StatusTBC, StatusGreen}, StatusGreen},
		{"all tbc", []Status{StatusTBC, StatusTBC}, StatusTBC},
		{"single value", []Status{StatusGreenAmber}, StatusAmber},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ReduceStatuses(tc.statuses))
		})
	}
}

func TestReduceStatusesEmptyInput(t *testing.T) {
	assert.Equal(t, StatusNotUpdated, ReduceStatuses(nil))
	assert.Equal(t, StatusNotUpdated, ReduceStatuses([]Status{}))
}

func TestReduceStatusesOrderIndependent(t *testing.T) {
	forward := []Status{StatusGreen, StatusAmberRed, StatusTBC, StatusRed}
	backward := []Status{StatusRed, StatusTBC, StatusAmberRed, StatusGreen}

	assert.Equal(t, ReduceStatuses(forward), ReduceStatuses(backward))
	assert.Equal(t, StatusRed, ReduceStatuses(forward))
}

func TestReduceStatusesUnknownValueSortsLast(t *testing.T) {
	// An unrecognized status never wins over a known one. Validation
	// upstream should have rejected it, but the reducer stays total.
	assert.Equal(t, StatusTBC, ReduceStatuses([]Status{Status("PURPLE"), StatusTBC}))
	assert.Equal(t, Status("PURPLE"), ReduceStatuses([]Status{Status("PURPLE")}))
}

func TestCollapse(t *testing.T) {
	assert.Equal(t, StatusAmber, StatusAmberRed.Collapse())
	assert.Equal(t, StatusAmber, StatusGreenAmber.Collapse())
	assert.Equal(t, StatusRed, StatusRed.Collapse())
	assert.Equal(t, StatusGreen, StatusGreen.Collapse())
	assert.Equal(t, StatusTBC, StatusTBC.Collapse())
}

func TestValidStatusHelpers(t *testing.T) {
	assert.True(t, ValidProjectStatus(StatusAmber))
	assert.False(t, ValidProjectStatus(StatusAmberRed))
	assert.True(t, ValidAssessmentStatus(StatusAmberRed))
	assert.False(t, ValidAssessmentStatus(Status("PURPLE")))
	assert.False(t, ValidProjectStatus(StatusNotUpdated))
}
