package report

import (
	"github.com/google/uuid"

	"github.com/cagnotte/cagnotte-api/internal/domain/cagnotte"
)

// CreateReportRequest represents a public report submission
type CreateReportRequest struct {
	CagnotteID  uuid.UUID `json:"cagnotte_id" validate:"required"`
	Reason      Reason    `json:"reason" validate:"required,report_reason"`
	Description string    `json:"description" validate:"required,min=10,max=1000"`

	// Self-declared identity for anonymous submitters; ignored when the
	// request carries a valid token.
	ReporterName  string `json:"reporter_name" validate:"max=100"`
	ReporterEmail string `json:"reporter_email" validate:"omitempty,email"`
}

// ActionRequest represents the body of investigate/reject/block/delete
type ActionRequest struct {
	AdminNotes string `json:"admin_notes" validate:"max=1000"`
}

// ResolveRequest represents the resolve body; the cagnotte action defaults
// to NONE when absent.
type ResolveRequest struct {
	AdminNotes     string     `json:"admin_notes" validate:"max=1000"`
	CagnotteAction SideEffect `json:"cagnotte_action" validate:"cagnotte_action"`
}

// Detail is the full report view: the report plus a snapshot of the
// reported campaign (nil once the campaign has been removed).
type Detail struct {
	Report   *Report            `json:"report"`
	Cagnotte *cagnotte.Cagnotte `json:"cagnotte,omitempty"`
}

// ListFilter filters the admin report listing
type ListFilter struct {
	Status Status
	Search string
	Page   int
	Limit  int
}

// Stats carries per-status report counts for the admin dashboard
type Stats struct {
	Total       int `json:"total"`
	Pending     int `json:"pending"`
	UnderReview int `json:"under_review"`
	Resolved    int `json:"resolved"`
	Dismissed   int `json:"dismissed"`
}

// ListResult bundles the admin listing payload
type ListResult struct {
	Reports []*Report `json:"reports"`
	Stats   Stats     `json:"stats"`
	Total   int       `json:"-"`
}
