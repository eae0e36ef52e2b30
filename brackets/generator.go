package brackets

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/Dosada05/tournament-engine/models"
)

type GenerateBracketParams struct {
	Tournament *models.Tournament
	TeamIDs    []int
	StartDate  time.Time
	Venues     []models.Venue
	// Rand drives the slot allocator. A nil Rand uses a time-seeded source.
	Rand       *rand.Rand
	Logger     *slog.Logger
}

type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*BracketMatch, error)

	GetName() string
}

// BracketMatch is a generated match before it is persisted.
type BracketMatch struct {
	UID          string
	Round        int
	OrderInRound int
	RoundLabel   string

	TeamAID *int
	TeamBID *int

	// NextUID is empty for league matches and models.FinalSentinel for the final.
	NextUID  string
	NextSlot models.Slot

	Logistics Logistics
}

// ToMatch converts a generated match into the persisted shape.
func (bm *BracketMatch) ToMatch(tournamentID int) *models.Match {
	m := &models.Match{
		TournamentID: tournamentID,
		TeamAID:      bm.TeamAID,
		TeamBID:      bm.TeamBID,
		Status:       models.MatchStatusScheduled,
		Round:        bm.Round,
		OrderInRound: bm.OrderInRound,
		RoundLabel:   bm.RoundLabel,
		Venue:        bm.Logistics.Venue,
		MatchDate:    bm.Logistics.Date,
		TimeLabel:    bm.Logistics.Time,
	}
	if bm.NextUID != "" {
		m.Bracket = &models.BracketLink{
			NodeID:     bm.UID,
			NextNodeID: bm.NextUID,
			NextSlot:   bm.NextSlot,
		}
	}
	return m
}

// NewGenerator returns the generator for a tournament format.
func NewGenerator(format models.TournamentFormat) (BracketGenerator, error) {
	switch format {
	case models.FormatKnockout:
		return NewSingleEliminationGenerator(), nil
	case models.FormatLeague:
		return NewRoundRobinGenerator(), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

func paramsRand(params GenerateBracketParams) *rand.Rand {
	if params.Rand != nil {
		return params.Rand
	}
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed>>1))
}

func paramsLogger(params GenerateBracketParams) *slog.Logger {
	if params.Logger != nil {
		return params.Logger
	}
	return slog.Default()
}

func intPtr(v int) *int {
	return &v
}
