package brackets

import (
	"testing"

	"github.com/Dosada05/tournament-engine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func knockoutMatch(next string) *models.Match {
	return &models.Match{
		ID:      1,
		TeamAID: intPtr(10),
		TeamBID: intPtr(20),
		Bracket: &models.BracketLink{NodeID: "R1M1", NextNodeID: next, NextSlot: models.SlotA},
	}
}

func TestResolveWinner(t *testing.T) {
	league := &models.Match{ID: 2, TeamAID: intPtr(10), TeamBID: intPtr(20)}

	tests := []struct {
		name       string
		match      *models.Match
		scoreA     int
		scoreB     int
		wantWinner *int
		wantErr    error
	}{
		{name: "team A wins", match: knockoutMatch("R2M1"), scoreA: 3, scoreB: 1, wantWinner: intPtr(10)},
		{name: "team B wins", match: knockoutMatch("R2M1"), scoreA: 0, scoreB: 2, wantWinner: intPtr(20)},
		{name: "knockout draw", match: knockoutMatch("R2M1"), scoreA: 2, scoreB: 2, wantErr: ErrDrawNotAllowed},
		{name: "final draw", match: knockoutMatch(models.FinalSentinel), scoreA: 1, scoreB: 1, wantErr: ErrDrawNotAllowed},
		{name: "league draw", match: league, scoreA: 2, scoreB: 2},
		{name: "league win", match: league, scoreA: 1, scoreB: 4, wantWinner: intPtr(20)},
		{name: "negative score", match: league, scoreA: -1, scoreB: 0, wantErr: ErrNegativeScore},
		{name: "empty slot", match: &models.Match{ID: 3, TeamAID: intPtr(10)}, scoreA: 1, scoreB: 0, wantErr: ErrMatchNotReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			winner, err := ResolveWinner(tt.match, tt.scoreA, tt.scoreB)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantWinner, winner)
		})
	}
}

func TestSameWinner(t *testing.T) {
	assert.True(t, SameWinner(nil, nil))
	assert.True(t, SameWinner(intPtr(1), intPtr(1)))
	assert.False(t, SameWinner(intPtr(1), intPtr(2)))
	assert.False(t, SameWinner(intPtr(1), nil))
	assert.False(t, SameWinner(nil, intPtr(1)))
}

func TestFillFirstEmptySlot(t *testing.T) {
	tests := []struct {
		name     string
		teamA    *int
		teamB    *int
		winner   int
		wantSlot models.Slot
		wantA    *int
		wantB    *int
		wantErr  error
	}{
		{name: "empty node", winner: 7, wantSlot: models.SlotA, wantA: intPtr(7)},
		{name: "slot A taken", teamA: intPtr(5), winner: 7, wantSlot: models.SlotB, wantA: intPtr(5), wantB: intPtr(7)},
		{name: "winner already in A", teamA: intPtr(7), winner: 7, wantSlot: "", wantA: intPtr(7)},
		{name: "winner already in B", teamA: intPtr(5), teamB: intPtr(7), winner: 7, wantSlot: "", wantA: intPtr(5), wantB: intPtr(7)},
		{name: "both taken", teamA: intPtr(5), teamB: intPtr(6), winner: 7, wantErr: ErrSlotsOccupied, wantA: intPtr(5), wantB: intPtr(6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := &models.Match{TeamAID: tt.teamA, TeamBID: tt.teamB, Bracket: &models.BracketLink{NodeID: "R2M1"}}

			slot, err := FillFirstEmptySlot(next, tt.winner)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantSlot, slot)
			}
			assert.Equal(t, tt.wantA, next.TeamAID)
			assert.Equal(t, tt.wantB, next.TeamBID)
		})
	}
}
