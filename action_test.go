package reagent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAction_WithObservation(t *testing.T) {
	type input struct {
		action      Action
		observation string
	}

	type expected struct {
		observation string
		observed    bool
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "attaches observation",
			input: input{
				action:      Action{Tool: "search", Input: "query: go"},
				observation: "3 results",
			},
			expected: expected{observation: "3 results", observed: true},
		},
		{
			name: "empty observation still counts as observed",
			input: input{
				action:      Action{Tool: "noop"},
				observation: "",
			},
			expected: expected{observation: "", observed: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			completed := tc.input.action.WithObservation(tc.input.observation)

			obs, ok := completed.Observation()
			assert.Equal(t, tc.expected.observation, obs)
			assert.Equal(t, tc.expected.observed, ok)
			assert.False(t, completed.Pending())
		})
	}
}

func TestAction_WithObservationDoesNotMutateOriginal(t *testing.T) {
	original := Action{Tool: "search", Input: "query: go"}

	completed := original.WithObservation("found it")

	assert.True(t, original.Pending())
	_, ok := original.Observation()
	assert.False(t, ok)

	assert.False(t, completed.Pending())
	obs, ok := completed.Observation()
	assert.True(t, ok)
	assert.Equal(t, "found it", obs)
}

func TestAction_PendingByDefault(t *testing.T) {
	action := Action{Tool: "search"}

	assert.True(t, action.Pending())
	obs, ok := action.Observation()
	assert.False(t, ok)
	assert.Equal(t, "", obs)
}
