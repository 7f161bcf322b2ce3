// internal/circulation/domain.go
package circulation

import (
	"database/sql"
	"time"
)

// Issue statuses. An issue is Active from the moment the item leaves the
// shelf until the return transaction flips it to Returned, exactly once.
const (
	StatusActive   = "Active"
	StatusReturned = "Returned"
)

// LoanPeriodDays is the default loan term applied when an item is issued.
const LoanPeriodDays = 14

// Issue is a loan record: one copy of an item lent to a member.
type Issue struct {
	ID               int64        `db:"id" json:"id"`
	SerialNo         string       `db:"serial_no" json:"serial_no"`
	MembershipID     string       `db:"membership_id" json:"membership_id"`
	IssueDate        time.Time    `db:"issue_date" json:"issue_date"`
	ReturnDateDue    time.Time    `db:"return_date_due" json:"return_date_due"`
	ReturnDateActual sql.NullTime `db:"return_date_actual" json:"return_date_actual,omitempty"`
	FineAmount       float64      `db:"fine_amount" json:"fine_amount"`
	FinePaid         bool         `db:"fine_paid" json:"fine_paid"`
	Status           string       `db:"status" json:"status"`
}

// Action selects between a dry-run fine check and an actual return.
type Action string

const (
	ActionCheck  Action = "check"
	ActionReturn Action = "return"
)

// ReturnRequest carries the externally supplied return form fields.
// ActualReturnDate is an ISO YYYY-MM-DD string.
type ReturnRequest struct {
	SerialNo         string `json:"serial_no"`
	MembershipID     string `json:"membership_id"`
	ActualReturnDate string `json:"return_date_actual"`
	Action           Action `json:"action"`
}

// ReturnResult reports the outcome of a check or return.
type ReturnResult struct {
	SerialNo     string  `json:"serial_no"`
	MembershipID string  `json:"membership_id"`
	Action       Action  `json:"action"`
	OverdueDays  int     `json:"overdue_days"`
	Fine         float64 `json:"fine"`
	Returned     bool    `json:"returned"`
	Message      string  `json:"message"`
}
