package entry

import "context"

// Repository describes entry persistence needs from use cases.
//
// CreateWithQuota runs the per-email count check, the display-name
// disambiguation (base name for the first entry, base-2/-3/... afterwards)
// and the 1+RosterSize row insert as one atomic unit; under SQL it is a
// serializable transaction so the quota holds under concurrent submissions.
// It returns ErrQuotaExceeded when the email already holds maxPerEmail
// entries. Create persists an entry verbatim (admin import path).
type Repository interface {
	CreateWithQuota(ctx context.Context, e Entry, maxPerEmail int) (Entry, error)
	Create(ctx context.Context, e Entry) (Entry, error)
	CountByEmail(ctx context.Context, email string) (int, error)
	List(ctx context.Context) ([]Entry, error)
	UpdatePayment(ctx context.Context, entryID string, paid bool, notes string) (bool, error)
	DeleteAll(ctx context.Context) error
}
