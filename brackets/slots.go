package brackets

import (
	"math/rand/v2"
	"time"

	"github.com/Dosada05/tournament-engine/models"
)

const (
	// maxSlotAttempts bounds the randomized search for a free (venue, time) pair.
	maxSlotAttempts = 40

	FallbackVenue = "TBD"
	FallbackTime  = "12:00"
)

// TimeLabels are the kick-off times a day is split into.
var TimeLabels = []string{"10:00", "12:00", "14:00", "16:00", "18:00", "20:00"}

// Logistics is where and when a match is played.
type Logistics struct {
	Venue string
	Time  string
	Date  time.Time
}

type slotKey struct {
	date  string
	time  string
	venue string
}

// UsedSlots records the triples taken during one generation run.
type UsedSlots map[slotKey]struct{}

func NewUsedSlots() UsedSlots {
	return make(UsedSlots)
}

// Taken reports whether the venue is already booked at that date and time.
func (u UsedSlots) Taken(date time.Time, timeLabel, venue string) bool {
	_, ok := u[slotKey{date: date.Format(time.DateOnly), time: timeLabel, venue: venue}]
	return ok
}

// AllocateSlot picks a random free (venue, time) on start+dayOffset days.
// The returned set includes the chosen triple. When no free combination is
// found within maxSlotAttempts it falls back to TBD / 12:00, which may collide.
func AllocateSlot(rng *rand.Rand, used UsedSlots, start time.Time, dayOffset int, venues []models.Venue) (Logistics, UsedSlots) {
	if used == nil {
		used = NewUsedSlots()
	}
	if len(venues) == 0 {
		venues = []models.Venue{{Name: FallbackVenue}}
	}

	date := startOfDay(start).AddDate(0, 0, dayOffset)
	day := date.Format(time.DateOnly)

	for attempt := 0; attempt < maxSlotAttempts; attempt++ {
		venue := venues[rng.IntN(len(venues))].Name
		label := TimeLabels[rng.IntN(len(TimeLabels))]
		key := slotKey{date: day, time: label, venue: venue}
		if _, taken := used[key]; taken {
			continue
		}
		used[key] = struct{}{}
		return Logistics{Venue: venue, Time: label, Date: date}, used
	}

	used[slotKey{date: day, time: FallbackTime, venue: FallbackVenue}] = struct{}{}
	return Logistics{Venue: FallbackVenue, Time: FallbackTime, Date: date}, used
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
