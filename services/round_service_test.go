package services

import (
	"context"
	"errors"
	"testing"
)

// Score validation runs before any lookup, so the service needs no backing
// repositories for these cases.
func TestRecordResultScoreValidation(t *testing.T) {
	tests := []struct {
		name   string
		scoreA int
		scoreB int
	}{
		{name: "negative score A", scoreA: -1, scoreB: 11},
		{name: "negative score B", scoreA: 11, scoreB: -3},
		{name: "tied score", scoreA: 10, scoreB: 10},
		{name: "zero all", scoreA: 0, scoreB: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &roundService{}

			_, err := svc.RecordResult(context.Background(), 1, 1, RecordResultInput{
				ScoreA: tt.scoreA,
				ScoreB: tt.scoreB,
			})
			if !errors.Is(err, ErrGameInvalidScore) {
				t.Fatalf("err = %v, want ErrGameInvalidScore", err)
			}
		})
	}
}
