package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Dosada05/tournament-engine/models"
)

// ScheduleArchive keeps a copy of a match set before regeneration replaces it.
type ScheduleArchive interface {
	Archive(ctx context.Context, tournamentID int, matches []*models.Match, at time.Time) (*UploadResult, error)
	Discard(ctx context.Context, key string) error
}

type archivedSchedule struct {
	TournamentID int             `json:"tournament_id"`
	ArchivedAt   time.Time       `json:"archived_at"`
	Matches      []*models.Match `json:"matches"`
}

type uploaderScheduleArchive struct {
	uploader FileUploader
}

func NewScheduleArchive(uploader FileUploader) ScheduleArchive {
	return &uploaderScheduleArchive{uploader: uploader}
}

// ScheduleArchiveKey is the object key of a snapshot taken at the given time.
func ScheduleArchiveKey(tournamentID int, at time.Time) string {
	return fmt.Sprintf("schedules/tournament_%d/%s.json", tournamentID, at.UTC().Format("20060102T150405.000Z"))
}

func (a *uploaderScheduleArchive) Archive(ctx context.Context, tournamentID int, matches []*models.Match, at time.Time) (*UploadResult, error) {
	body, err := json.Marshal(archivedSchedule{TournamentID: tournamentID, ArchivedAt: at.UTC(), Matches: matches})
	if err != nil {
		return nil, fmt.Errorf("failed to encode schedule of tournament %d: %w", tournamentID, err)
	}
	return a.uploader.Upload(ctx, ScheduleArchiveKey(tournamentID, at), "application/json", bytes.NewReader(body))
}

func (a *uploaderScheduleArchive) Discard(ctx context.Context, key string) error {
	return a.uploader.Delete(ctx, key)
}
