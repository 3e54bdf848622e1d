package donation

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Donation represents a recorded contribution to a cagnotte.
// Payment processing happens upstream; only the resulting record is stored.
type Donation struct {
	ID         uuid.UUID      `db:"id" json:"id"`
	CagnotteID uuid.UUID      `db:"cagnotte_id" json:"cagnotte_id"`
	DonorID    uuid.NullUUID  `db:"donor_id" json:"donor_id,omitempty"`
	DonorName  string         `db:"donor_name" json:"donor_name"`
	Amount     float64        `db:"amount" json:"amount"`
	Message    sql.NullString `db:"message" json:"message,omitempty"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
}
