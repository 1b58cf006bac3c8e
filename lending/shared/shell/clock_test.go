package shell_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iguene/Bibliovirtuelle/eventstore"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
	"github.com/iguene/Bibliovirtuelle/lending/shared/shell"
)

func Test_ManualClock(t *testing.T) {
	// arrange
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	clock := shell.NewManualClock(start)

	// act
	clock.Advance(36 * time.Hour)

	// assert
	assert.Equal(t, start.Add(36*time.Hour), clock.Now())

	// act
	clock.Set(start)

	// assert
	assert.Equal(t, start, clock.Now())
}

func Test_CommandStatusOf(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "success", err: nil, expected: shell.StatusSuccess},
		{name: "business rejection", err: core.ErrNoUnitAvailable, expected: shell.StatusRejected},
		{name: "over-release", err: core.ErrReleaseExceedsQuantity, expected: shell.StatusError},
		{name: "conflict on append", err: eventstore.ErrConcurrencyConflict, expected: shell.StatusConcurrencyConflict},
		{name: "timeout", err: context.DeadlineExceeded, expected: shell.StatusTimeout},
		{name: "infrastructure", err: errors.New("disk on fire"), expected: shell.StatusError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, shell.CommandStatusOf(tc.err))
		})
	}
}
