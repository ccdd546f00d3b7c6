package alerts

import (
	"time"

	"github.com/llm-case-studies/whowhe2wha/internal/model"
	"github.com/llm-case-studies/whowhe2wha/internal/timeline"
)

// Upcoming builds alerts for every occurrence starting in (now, now+horizon].
// Occurrences that have already started are excluded, so scheduling the
// result never fires an alert immediately.
func Upcoming(events []model.Event, now time.Time, horizon time.Duration) ([]Alert, error) {
	occs, err := timeline.Expand(events, now, now.Add(horizon))
	if err != nil {
		return nil, err
	}

	out := make([]Alert, 0, len(occs))
	for _, occ := range occs {
		if !occ.Start.At.After(now) {
			continue
		}
		out = append(out, Alert{
			EventID: occ.EventID,
			Name:    occ.Name,
			At:      occ.Start.At,
		})
	}
	return out, nil
}
