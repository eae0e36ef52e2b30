package brackets

import (
	"context"
	"fmt"
	"log/slog"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() BracketGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// GenerateBracket creates one match per unordered pair of teams, grouped into
// matchdays by the circle method so no team plays twice on the same day.
// With two legs every pair plays a second match with the slots swapped.
func (g *RoundRobinGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*BracketMatch, error) {
	teams := params.TeamIDs
	if err := validateTeams(teams); err != nil {
		return nil, err
	}

	legs := 1
	if params.Tournament != nil {
		legs = params.Tournament.LegCount()
	}

	rounds := circleRounds(teams)
	n := len(teams)
	paramsLogger(params).DebugContext(ctx, "generating league fixtures",
		slog.Int("teams", n), slog.Int("legs", legs), slog.Int("matchdays", len(rounds)*legs))
	matches := make([]*BracketMatch, 0, n*(n-1)/2*legs)

	rng := paramsRand(params)
	used := NewUsedSlots()

	index := 0
	for leg := 1; leg <= legs; leg++ {
		for r, pairs := range rounds {
			matchday := (leg-1)*len(rounds) + r
			for order, pair := range pairs {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				home, away := pair[0], pair[1]
				if leg == 2 {
					home, away = away, home
				}

				var logistics Logistics
				logistics, used = AllocateSlot(rng, used, params.StartDate, matchday, params.Venues)

				matches = append(matches, &BracketMatch{
					UID:          fmt.Sprintf("L%dM%d", leg, index+1),
					Round:        matchday + 1,
					OrderInRound: order + 1,
					RoundLabel:   fmt.Sprintf("Week %d", index/2+1),
					TeamAID:      intPtr(home),
					TeamBID:      intPtr(away),
					Logistics:    logistics,
				})
				index++
			}
		}
	}

	return matches, nil
}

// circleRounds splits the roster into matchdays. The first team stays fixed
// while the rest rotate; the fixed team alternates home and away.
func circleRounds(teams []int) [][][2]int {
	size := len(teams)
	if size%2 == 1 {
		size++ // позиция size-1 - пропуск тура
	}
	ring := make([]int, size)
	for i := range ring {
		ring[i] = i
	}

	rounds := make([][][2]int, 0, size-1)
	for r := 0; r < size-1; r++ {
		pairs := make([][2]int, 0, size/2)
		for i := 0; i < size/2; i++ {
			home, away := ring[i], ring[size-1-i]
			if home >= len(teams) || away >= len(teams) {
				continue
			}
			if i == 0 && r%2 == 1 {
				home, away = away, home
			}
			pairs = append(pairs, [2]int{teams[home], teams[away]})
		}
		rounds = append(rounds, pairs)

		last := ring[size-1]
		copy(ring[2:], ring[1:size-1])
		ring[1] = last
	}
	return rounds
}

func validateTeams(teams []int) error {
	if len(teams) < 2 {
		return fmt.Errorf("%w (found %d)", ErrInsufficientTeams, len(teams))
	}
	seen := make(map[int]struct{}, len(teams))
	for _, id := range teams {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: team %d", ErrDuplicateTeam, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
