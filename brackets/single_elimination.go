package brackets

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/tournament-engine/models"
)

// DaysBetweenRounds spaces knockout rounds so earlier rounds are played first.
const DaysBetweenRounds = 2

type SingleEliminationGenerator struct {
}

func NewSingleEliminationGenerator() BracketGenerator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) GetName() string {
	return "SingleElimination"
}

// GenerateBracket builds the elimination tree bottom-up: round 1 holds the
// real teams paired in list order, every later round holds placeholders that
// are filled as winners advance. Match m of round r feeds match m/2 of round
// r+1, slot A for even m and B for odd m.
func (g *SingleEliminationGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*BracketMatch, error) {
	teams := params.TeamIDs
	if err := validateTeams(teams); err != nil {
		return nil, err
	}
	n := len(teams)
	if !isPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: got %d teams", ErrInvalidTeamCount, n)
	}

	numRounds := 0
	for size := n; size > 1; size /= 2 {
		numRounds++
	}

	paramsLogger(params).DebugContext(ctx, "generating knockout bracket", slog.Int("teams", n), slog.Int("rounds", numRounds))

	rng := paramsRand(params)
	used := NewUsedSlots()
	allGeneratedMatches := make([]*BracketMatch, 0, n-1)

	matchesInRound := n / 2
	for r := 1; r <= numRounds; r++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		label := RoundLabel(r, matchesInRound)
		for m := 0; m < matchesInRound; m++ {
			bm := &BracketMatch{
				UID:          NodeID(r, m+1),
				Round:        r,
				OrderInRound: m + 1,
				RoundLabel:   label,
			}

			if r == 1 {
				bm.TeamAID = intPtr(teams[2*m])
				bm.TeamBID = intPtr(teams[2*m+1])
			}

			if r == numRounds {
				bm.NextUID = models.FinalSentinel
			} else {
				bm.NextUID = NodeID(r+1, m/2+1)
				bm.NextSlot = models.SlotA
				if m%2 == 1 {
					bm.NextSlot = models.SlotB
				}
			}

			bm.Logistics, used = AllocateSlot(rng, used, params.StartDate, (r-1)*DaysBetweenRounds, params.Venues)
			allGeneratedMatches = append(allGeneratedMatches, bm)
		}
		matchesInRound /= 2
	}

	return allGeneratedMatches, nil
}

// NodeID is the bracket position of match order (1-based) in round r.
func NodeID(round, order int) string {
	return fmt.Sprintf("R%dM%d", round, order)
}

// RoundLabel names a round by its size; larger rounds are numbered from round 1.
func RoundLabel(round, matchesInRound int) string {
	switch matchesInRound {
	case 1:
		return "Final"
	case 2:
		return "Semi-Final"
	case 4:
		return "Quarter-Final"
	default:
		return fmt.Sprintf("Round %d", round)
	}
}

func isPowerOfTwo(n int) bool {
	return n >= 2 && n&(n-1) == 0
}
