// Package cli — check_test.go contains unit tests for the pure formatting
// helper used by the lookup output. These tests verify the user-facing
// line without requiring a network or a real API key.
package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmr-tortoise/breachwatch/internal/model"
)

// TestFormatResultLine verifies the one-line summary for clean and
// breached addresses, including the property that a 404 and a
// 200-with-empty-array render identically.
func TestFormatResultLine(t *testing.T) {
	tests := []struct {
		name   string
		result model.LookupResult
		want   string
	}{
		{
			name: "clean address via 404",
			result: model.LookupResult{
				QueriedAddress: "clean@example.com",
				Breached:       false,
				BreachNames:    []string{},
				RawStatusCode:  404,
			},
			want: "No breaches found for clean@example.com",
		},
		{
			name: "clean address via empty array",
			result: model.LookupResult{
				QueriedAddress: "clean@example.com",
				Breached:       false,
				BreachNames:    []string{},
				RawStatusCode:  200,
			},
			want: "No breaches found for clean@example.com",
		},
		{
			name: "single breach",
			result: model.LookupResult{
				QueriedAddress: "user@example.com",
				Breached:       true,
				BreachNames:    []string{"Adobe"},
				RawStatusCode:  200,
			},
			want: "user@example.com found in 1 breach(es): Adobe",
		},
		{
			name: "multiple breaches keep API order",
			result: model.LookupResult{
				QueriedAddress: "user@example.com",
				Breached:       true,
				BreachNames:    []string{"Adobe", "LinkedIn"},
				RawStatusCode:  200,
			},
			want: "user@example.com found in 2 breach(es): Adobe, LinkedIn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatResultLine(&tt.result))
		})
	}
}

// TestCleanResultsRenderIdentically pins the 404 vs. empty-array property
// directly: the raw status never leaks into the text output.
func TestCleanResultsRenderIdentically(t *testing.T) {
	from404 := model.LookupResult{QueriedAddress: "x@y.com", BreachNames: []string{}, RawStatusCode: 404}
	from200 := model.LookupResult{QueriedAddress: "x@y.com", BreachNames: []string{}, RawStatusCode: 200}

	assert.Equal(t, FormatResultLine(&from404), FormatResultLine(&from200))
}
