package report

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Reason represents the category of a report
type Reason string

const (
	ReasonFraud         Reason = "fraud"
	ReasonInappropriate Reason = "inappropriate"
	ReasonSpam          Reason = "spam"
	ReasonOther         Reason = "other"
)

// Status represents the status of a report. A report starts pending and
// only moves forward through the transition table; resolved and dismissed
// are terminal.
type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "under_review"
	StatusResolved    Status = "resolved"
	StatusDismissed   Status = "dismissed"
)

// IsTerminal reports whether the status accepts no further review actions
func (s Status) IsTerminal() bool {
	return s == StatusResolved || s == StatusDismissed
}

// Report represents a user-submitted complaint against a cagnotte
type Report struct {
	ID          uuid.UUID `db:"id" json:"id"`
	CagnotteID  uuid.UUID `db:"cagnotte_id" json:"cagnotte_id"`
	Reason      Reason    `db:"reason" json:"reason"`
	Description string    `db:"description" json:"description"`

	// Submitter identity: denormalized from the account for authenticated
	// reporters, self-declared (unverified) for anonymous ones.
	ReporterName  string `db:"reporter_name" json:"reporter_name"`
	ReporterEmail string `db:"reporter_email" json:"reporter_email,omitempty"`

	Status     Status         `db:"status" json:"status"`
	AdminNotes sql.NullString `db:"admin_notes" json:"admin_notes,omitempty"`
	AdminID    uuid.NullUUID  `db:"admin_id" json:"admin_id,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
