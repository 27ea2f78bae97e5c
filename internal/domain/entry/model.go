package entry

import (
	"errors"
	"fmt"
	"time"

	"github.com/mbrandall/survivor-pool/internal/domain/pool"
)

// RosterSize is the number of picks every entry carries.
const RosterSize = 14

// Pick is one selected player. The catalog fields are copied at submission
// time so stored entries survive later catalog regeneration.
type Pick struct {
	PlayerID   string
	PlayerName string
	Position   pool.Position
	Team       string
}

// Entry is one participant's full submission.
type Entry struct {
	ID        string
	Name      string
	Email     string
	Paid      bool
	Notes     string
	Picks     []Pick
	CreatedAt time.Time
}

// ErrQuotaExceeded is returned when an email already holds the maximum
// number of entries.
var ErrQuotaExceeded = errors.New("entry limit reached for this email")

func (e Entry) ValidateBasic() error {
	if e.ID == "" {
		return fmt.Errorf("entry id is required")
	}
	if e.Name == "" {
		return fmt.Errorf("entry name is required")
	}
	if e.Email == "" {
		return fmt.Errorf("email is required")
	}
	if len(e.Picks) != RosterSize {
		return fmt.Errorf("entry must carry exactly %d picks, got %d", RosterSize, len(e.Picks))
	}

	return nil
}
