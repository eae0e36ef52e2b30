package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/tournament-engine/brackets"
	"github.com/Dosada05/tournament-engine/models"
	"github.com/Dosada05/tournament-engine/repositories"
	"github.com/Dosada05/tournament-engine/storage"
)

// fakeTx runs fn without a real transaction and restores the match store on error.
type fakeTx struct {
	matches *fakeMatchRepo
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	snapshot := f.matches.snapshot()
	if err := fn(nil); err != nil {
		f.matches.restore(snapshot)
		return err
	}
	return nil
}

type fakeMatchRepo struct {
	mu        sync.Mutex
	matches   map[int]*models.Match
	nextID    int
	locks     int
	createErr error
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[int]*models.Match), nextID: 1}
}

func cloneMatch(m *models.Match) *models.Match {
	c := *m
	if m.Bracket != nil {
		b := *m.Bracket
		c.Bracket = &b
	}
	copyInt := func(p *int) *int {
		if p == nil {
			return nil
		}
		v := *p
		return &v
	}
	c.TeamAID, c.TeamBID = copyInt(m.TeamAID), copyInt(m.TeamBID)
	c.ScoreA, c.ScoreB = copyInt(m.ScoreA), copyInt(m.ScoreB)
	c.WinnerID = copyInt(m.WinnerID)
	if m.CompletedAt != nil {
		t := *m.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

func (r *fakeMatchRepo) snapshot() map[int]*models.Match {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[int]*models.Match, len(r.matches))
	for id, m := range r.matches {
		out[id] = cloneMatch(m)
	}
	return out
}

func (r *fakeMatchRepo) restore(snapshot map[int]*models.Match) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matches = snapshot
}

// add stores m as is and returns its ID.
func (r *fakeMatchRepo) add(m *models.Match) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = r.nextID
	r.nextID++
	r.matches[m.ID] = cloneMatch(m)
	return m.ID
}

func (r *fakeMatchRepo) get(id int) *models.Match {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return nil
	}
	return cloneMatch(m)
}

func (r *fakeMatchRepo) byNode(tournamentID int, nodeID string) *models.Match {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.matches {
		if m.TournamentID == tournamentID && m.Bracket != nil && m.Bracket.NodeID == nodeID {
			return cloneMatch(m)
		}
	}
	return nil
}

func (r *fakeMatchRepo) count(tournamentID int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.matches {
		if m.TournamentID == tournamentID {
			n++
		}
	}
	return n
}

func (r *fakeMatchRepo) LockTournamentSchedule(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locks++
	return nil
}

func (r *fakeMatchRepo) BulkCreate(ctx context.Context, exec repositories.SQLExecutor, matches []*models.Match) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range matches {
		m.ID = r.nextID
		r.nextID++
		r.matches[m.ID] = cloneMatch(m)
	}
	return nil
}

func (r *fakeMatchRepo) DeleteByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, m := range r.matches {
		if m.TournamentID == tournamentID {
			delete(r.matches, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeMatchRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Match, error) {
	if m := r.get(id); m != nil {
		return m, nil
	}
	return nil, repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) GetByIDForUpdate(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Match, error) {
	return r.GetByID(ctx, exec, id)
}

func (r *fakeMatchRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, statuses []models.MatchStatus) ([]*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Match, 0)
	for _, m := range r.matches {
		if m.TournamentID != tournamentID {
			continue
		}
		if len(statuses) > 0 {
			matched := false
			for _, s := range statuses {
				if m.Status == s {
					matched = true
				}
			}
			if !matched {
				continue
			}
		}
		out = append(out, cloneMatch(m))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Round != out[j].Round {
			return out[i].Round < out[j].Round
		}
		if out[i].OrderInRound != out[j].OrderInRound {
			return out[i].OrderInRound < out[j].OrderInRound
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *fakeMatchRepo) UpdateResult(ctx context.Context, exec repositories.SQLExecutor, id int, scoreA, scoreB int, status models.MatchStatus, winnerID *int, completedAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.ScoreA, m.ScoreB = &scoreA, &scoreB
	m.Status = status
	m.WinnerID = winnerID
	m.CompletedAt = completedAt
	return nil
}

func (r *fakeMatchRepo) UpdateLiveScore(ctx context.Context, exec repositories.SQLExecutor, id int, scoreA, scoreB int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	if m.Status.IsTerminal() {
		return repositories.ErrMatchAlreadyTerminal
	}
	m.ScoreA, m.ScoreB = &scoreA, &scoreB
	m.Status = models.MatchStatusLive
	return nil
}

func (r *fakeMatchRepo) FillNextSlot(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, nodeID string, teamID int) (models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.matches {
		if m.TournamentID == tournamentID && m.Bracket != nil && m.Bracket.NodeID == nodeID {
			return brackets.FillFirstEmptySlot(m, teamID)
		}
	}
	return "", fmt.Errorf("%w: %s", repositories.ErrBracketNodeNotFound, nodeID)
}

type fakeTournamentRepo struct {
	tournaments map[int]*models.Tournament
}

func (r *fakeTournamentRepo) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	c := *t
	return &c, nil
}

type fakeTeamRepo struct {
	rosters map[int][]*models.Team
}

func (r *fakeTeamRepo) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error) {
	return r.rosters[tournamentID], nil
}

type fakeVenueRepo struct {
	venues []models.Venue
	err    error
}

func (r *fakeVenueRepo) List(ctx context.Context) ([]models.Venue, error) {
	return r.venues, r.err
}

type fakeEventRepo struct {
	events []*models.MatchEvent
}

func (r *fakeEventRepo) ListGoalsByMatchIDs(ctx context.Context, matchIDs []int) ([]*models.MatchEvent, error) {
	wanted := make(map[int]bool, len(matchIDs))
	for _, id := range matchIDs {
		wanted[id] = true
	}
	out := make([]*models.MatchEvent, 0)
	for _, ev := range r.events {
		if wanted[ev.MatchID] && ev.Type == models.EventTypeGoal {
			out = append(out, ev)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []brackets.WebSocketMessage
}

func (n *fakeNotifier) BroadcastToRoom(roomID string, message interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if msg, ok := message.(brackets.WebSocketMessage); ok {
		n.messages = append(n.messages, msg)
	}
}

func (n *fakeNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.messages))
	for i, m := range n.messages {
		out[i] = m.Type
	}
	return out
}

type fakeArchive struct {
	archived  map[string]int
	discarded []string
	err       error
}

func newFakeArchive() *fakeArchive {
	return &fakeArchive{archived: make(map[string]int)}
}

func (a *fakeArchive) Archive(ctx context.Context, tournamentID int, matches []*models.Match, at time.Time) (*storage.UploadResult, error) {
	if a.err != nil {
		return nil, a.err
	}
	key := storage.ScheduleArchiveKey(tournamentID, at)
	a.archived[key] = len(matches)
	return &storage.UploadResult{Key: key, Location: "https://archive.test/" + key}, nil
}

func (a *fakeArchive) Discard(ctx context.Context, key string) error {
	a.discarded = append(a.discarded, key)
	return nil
}

var errBoom = errors.New("boom")

func intPtr(v int) *int {
	return &v
}
