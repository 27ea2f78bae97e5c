package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mbrandall/survivor-pool/internal/domain/entry"
	"github.com/mbrandall/survivor-pool/internal/domain/scoring"
	"github.com/mbrandall/survivor-pool/internal/platform/logging"
	"github.com/sourcegraph/conc/iter"
)

// LeaderboardRow is one ranked entry with its per-pick point breakdown.
type LeaderboardRow struct {
	Rank      int
	EntryID   string
	EntryName string
	Paid      bool
	Total     int
	CreatedAt time.Time
	Picks     []LeaderboardPick
}

// LeaderboardPick is one pick annotated with its season total.
type LeaderboardPick struct {
	PlayerID   string
	PlayerName string
	Position   string
	Team       string
	Points     int
}

type LeaderboardService struct {
	entryRepo entry.Repository
	scoreRepo scoring.Repository
	logger    *logging.Logger
}

func NewLeaderboardService(
	entryRepo entry.Repository,
	scoreRepo scoring.Repository,
	logger *logging.Logger,
) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeaderboardService{
		entryRepo: entryRepo,
		scoreRepo: scoreRepo,
		logger:    logger,
	}
}

// Leaderboard sums every entry's pick scores and ranks the field: total
// descending, earliest created-at first on ties.
func (s *LeaderboardService) Leaderboard(ctx context.Context) ([]LeaderboardRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Leaderboard")
	defer span.End()

	entries, err := s.entryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	scores, err := s.scoreRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	scoreByPlayer := scoring.MapByPlayerID(scores)

	rows := iter.Map(entries, func(e *entry.Entry) LeaderboardRow {
		row := LeaderboardRow{
			EntryID:   e.ID,
			EntryName: e.Name,
			Paid:      e.Paid,
			CreatedAt: e.CreatedAt,
			Picks:     make([]LeaderboardPick, 0, len(e.Picks)),
		}
		for _, pick := range e.Picks {
			// Absent score rows count as zero across every round.
			points := scoreByPlayer[pick.PlayerID].Total()
			row.Total += points
			row.Picks = append(row.Picks, LeaderboardPick{
				PlayerID:   pick.PlayerID,
				PlayerName: pick.PlayerName,
				Position:   string(pick.Position),
				Team:       pick.Team,
				Points:     points,
			})
		}
		return row
	})

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return rows[i].CreatedAt.Before(rows[j].CreatedAt)
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}

	return rows, nil
}
