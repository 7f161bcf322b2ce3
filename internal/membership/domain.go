// internal/membership/domain.go
package membership

import (
	"time"

	"libdesk/internal/fault"
)

// Member represents a library member. Members are never deleted; only the
// pending fine accumulator changes after registration, when a return
// accrues a fine.
type Member struct {
	MembershipID   string    `db:"membership_id" json:"membership_id"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       string    `db:"last_name" json:"last_name"`
	ContactNumber  string    `db:"contact_number" json:"contact_number"`
	ContactAddress string    `db:"contact_address" json:"contact_address"`
	AadharCardNo   string    `db:"aadhar_card_no" json:"aadhar_card_no"`
	StartDate      time.Time `db:"start_date" json:"start_date"`
	EndDate        time.Time `db:"end_date" json:"end_date"`
	Status         string    `db:"status" json:"status"`
	PendingFine    float64   `db:"pending_fine" json:"pending_fine"`
}

// StatusActive is the status a fresh membership starts in.
const StatusActive = "Active"

// Duration is the membership term selected at registration.
type Duration string

const (
	SixMonths Duration = "6_months"
	OneYear   Duration = "1_year"
	TwoYears  Duration = "2_years"
)

// EndOf computes the membership end date as calendar-day arithmetic:
// 180, 365, or 730 days after start. Month-accurate terms are deliberately
// not used; the day counts are the contract.
func EndOf(start time.Time, d Duration) (time.Time, error) {
	switch d {
	case SixMonths:
		return start.AddDate(0, 0, 180), nil
	case OneYear:
		return start.AddDate(0, 0, 365), nil
	case TwoYears:
		return start.AddDate(0, 0, 730), nil
	default:
		return time.Time{}, fault.Newf(fault.Validation, "unknown membership duration %q", d)
	}
}
