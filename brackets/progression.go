package brackets

import (
	"fmt"

	"github.com/Dosada05/tournament-engine/models"
)

// ResolveWinner returns the team that won m with the given final score, or
// nil for a league draw. Knockout matches cannot be drawn, the final included:
// the caller has to supply a deciding score (penalties, extra time).
func ResolveWinner(m *models.Match, scoreA, scoreB int) (*int, error) {
	if scoreA < 0 || scoreB < 0 {
		return nil, ErrNegativeScore
	}
	if m.TeamAID == nil || m.TeamBID == nil {
		return nil, fmt.Errorf("%w: match %d", ErrMatchNotReady, m.ID)
	}

	switch {
	case scoreA > scoreB:
		return intPtr(*m.TeamAID), nil
	case scoreB > scoreA:
		return intPtr(*m.TeamBID), nil
	case m.IsKnockout():
		return nil, fmt.Errorf("%w: match %d ended %d-%d", ErrDrawNotAllowed, m.ID, scoreA, scoreB)
	default:
		return nil, nil
	}
}

// SameWinner compares two nullable winner references.
func SameWinner(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// FillFirstEmptySlot places winnerID into next, slot A first. It returns the
// filled slot, or "" when winnerID already occupies one of the slots. Neither
// slot is ever overwritten.
func FillFirstEmptySlot(next *models.Match, winnerID int) (models.Slot, error) {
	if (next.TeamAID != nil && *next.TeamAID == winnerID) || (next.TeamBID != nil && *next.TeamBID == winnerID) {
		return "", nil
	}
	if next.TeamAID == nil {
		next.TeamAID = intPtr(winnerID)
		return models.SlotA, nil
	}
	if next.TeamBID == nil {
		next.TeamBID = intPtr(winnerID)
		return models.SlotB, nil
	}
	return "", fmt.Errorf("%w: node %s", ErrSlotsOccupied, nodeOf(next))
}

func nodeOf(m *models.Match) string {
	if m.Bracket == nil {
		return fmt.Sprintf("match %d", m.ID)
	}
	return m.Bracket.NodeID
}
