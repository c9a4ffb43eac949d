package badges

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/cbsetutor/internal/store"
)

// Award is a badge granted to a learner.
type Award struct {
	Badge     Badge
	UserID    string
	AttemptID string
	AwardedAt time.Time
}

// Service records badge awards in the event log.
type Service struct {
	eventRepo store.EventRepo
}

// NewService creates a badge Service. eventRepo may be nil, in which case
// awards are returned but not persisted.
func NewService(eventRepo store.EventRepo) *Service {
	return &Service{eventRepo: eventRepo}
}

// Award persists each badge for the user and returns the awards.
// It stops at the first persistence failure and returns what was recorded.
func (s *Service) Award(ctx context.Context, userID, attemptID string, earned []Badge) ([]Award, error) {
	awards := make([]Award, 0, len(earned))
	for _, b := range earned {
		a := Award{Badge: b, UserID: userID, AttemptID: attemptID, AwardedAt: time.Now()}
		if s.eventRepo != nil {
			err := s.eventRepo.AppendBadgeEvent(ctx, store.BadgeEventData{
				UserID:    userID,
				BadgeID:   b.ID,
				Rarity:    string(b.Rarity),
				AttemptID: attemptID,
				Reason:    b.Description,
			})
			if err != nil {
				return awards, fmt.Errorf("award badge %s: %w", b.ID, err)
			}
		}
		awards = append(awards, a)
	}
	return awards, nil
}

// Earned returns the IDs of badges already awarded to the user.
func (s *Service) Earned(ctx context.Context, userID string) (map[string]bool, error) {
	out := make(map[string]bool)
	if s.eventRepo == nil {
		return out, nil
	}
	records, err := s.eventRepo.QueryBadgeEvents(ctx, userID, store.QueryOpts{})
	if err != nil {
		return nil, fmt.Errorf("query badges: %w", err)
	}
	for _, r := range records {
		out[r.BadgeID] = true
	}
	return out, nil
}
