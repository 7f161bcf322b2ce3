// internal/membership/implementation.go
package membership

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"libdesk/internal/fault"
	"libdesk/internal/idgen"
)

// maxIDAttempts bounds the generate-then-insert retry loop that closes the
// identifier generator's read-then-write race.
const maxIDAttempts = 3

const dateLayout = "2006-01-02"

// service implements the Service interface.
type service struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewService creates a new membership service instance.
func NewService(db *sqlx.DB) Service {
	return &service{db: db, now: time.Now}
}

// Register validates the form, computes the end date from the selected
// term, and inserts the member under a freshly generated membership ID.
// A duplicate ID from a concurrent registration triggers regeneration.
func (s *service) Register(ctx context.Context, reg Registration) (*Member, error) {
	if reg.FirstName == "" || reg.LastName == "" || reg.ContactNumber == "" ||
		reg.ContactAddress == "" || reg.AadharCardNo == "" ||
		reg.StartDate == "" || reg.Duration == "" {
		return nil, fault.New(fault.Validation, "all fields are mandatory")
	}

	start, err := time.Parse(dateLayout, reg.StartDate)
	if err != nil {
		return nil, fault.New(fault.Validation, "invalid date format")
	}

	end, err := EndOf(start, Duration(reg.Duration))
	if err != nil {
		return nil, err
	}

	member := &Member{
		FirstName:      reg.FirstName,
		LastName:       reg.LastName,
		ContactNumber:  reg.ContactNumber,
		ContactAddress: reg.ContactAddress,
		AadharCardNo:   reg.AadharCardNo,
		StartDate:      start,
		EndDate:        end,
		Status:         StatusActive,
		PendingFine:    0,
	}

	query := `
		INSERT INTO memberships
		(membership_id, first_name, last_name, contact_number, contact_address, aadhar_card_no, start_date, end_date, status, pending_fine)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := idgen.Next(ctx, s.db, idgen.KindMembership, s.now())
		if err != nil {
			return nil, fault.Wrap(fault.Storage, "could not generate membership id", err)
		}

		_, err = s.db.ExecContext(ctx, query,
			id, member.FirstName, member.LastName, member.ContactNumber, member.ContactAddress,
			member.AadharCardNo, member.StartDate, member.EndDate, member.Status, member.PendingFine)
		if idgen.IsUniqueViolation(err) {
			continue
		}
		if err != nil {
			return nil, fault.Wrap(fault.Storage, "could not add membership", err)
		}

		member.MembershipID = id
		return member, nil
	}

	return nil, fault.New(fault.Conflict, "could not allocate a membership id, please retry")
}

// GetMember retrieves a member by their membership ID.
func (s *service) GetMember(ctx context.Context, membershipID string) (*Member, error) {
	query := `
		SELECT membership_id, first_name, last_name, contact_number, contact_address,
		       aadhar_card_no, start_date, end_date, status, pending_fine
		FROM memberships
		WHERE membership_id = $1
	`
	member := &Member{}
	err := s.db.GetContext(ctx, member, query, membershipID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fault.Newf(fault.NotFound, "membership %s not found", membershipID)
	}
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "could not load membership", err)
	}
	return member, nil
}
