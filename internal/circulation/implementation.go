// internal/circulation/implementation.go
package circulation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"libdesk/internal/fault"
	"libdesk/internal/idgen"
)

const dateLayout = "2006-01-02"

// service implements the Service interface.
type service struct {
	db     *sqlx.DB
	tracer trace.Tracer
}

// NewService creates a new circulation service instance.
func NewService(db *sqlx.DB) Service {
	return &service{
		db:     db,
		tracer: otel.Tracer("libdesk/circulation"),
	}
}

// IssueItem lends one copy of an item to a member: the member must be
// Active, the item must have a copy on the shelf, and the member must not
// already hold an active issue for the same item. The copy decrement and
// the issue insert commit together.
func (s *service) IssueItem(ctx context.Context, serialNo, membershipID string, issueDate time.Time) (*Issue, error) {
	ctx, span := s.tracer.Start(ctx, "circulation.issue",
		trace.WithAttributes(
			attribute.String("item.serial_no", serialNo),
			attribute.String("membership.id", membershipID),
		),
	)
	defer span.End()

	if serialNo == "" || membershipID == "" {
		return nil, fault.New(fault.Validation, "serial no and membership id are mandatory")
	}

	var memberStatus string
	err := s.db.GetContext(ctx, &memberStatus,
		`SELECT status FROM memberships WHERE membership_id = $1`, membershipID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fault.Newf(fault.NotFound, "membership %s not found", membershipID)
	}
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "could not load membership", err)
	}
	if memberStatus != "Active" {
		return nil, fault.Newf(fault.Validation, "membership %s is not active", membershipID)
	}

	issue := &Issue{
		SerialNo:      serialNo,
		MembershipID:  membershipID,
		IssueDate:     issueDate,
		ReturnDateDue: issueDate.AddDate(0, 0, LoanPeriodDays),
		Status:        StatusActive,
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "could not begin transaction", err)
	}
	defer tx.Rollback()

	// Guarded decrement: zero rows affected means no copy on the shelf
	// (or an unknown serial), without ever driving the count negative.
	res, err := tx.ExecContext(ctx,
		`UPDATE items SET available_copies = available_copies - 1
		 WHERE serial_no = $1 AND available_copies > 0`, serialNo)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "could not update item copies", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "could not update item copies", err)
	}
	if affected == 0 {
		// Zero rows covers both a missing item and an empty shelf;
		// look the row up to report the right condition.
		var available int
		err := tx.GetContext(ctx, &available,
			`SELECT available_copies FROM items WHERE serial_no = $1`, serialNo)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fault.Newf(fault.NotFound, "item %s not found", serialNo)
		}
		if err != nil {
			return nil, fault.Wrap(fault.Storage, "could not load item", err)
		}
		return nil, fault.Newf(fault.Conflict, "item %s is not available", serialNo)
	}

	err = tx.QueryRowxContext(ctx,
		`INSERT INTO issues (serial_no, membership_id, issue_date, return_date_due, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		issue.SerialNo, issue.MembershipID, issue.IssueDate, issue.ReturnDateDue, issue.Status,
	).Scan(&issue.ID)
	if idgen.IsUniqueViolation(err) {
		return nil, fault.Newf(fault.Conflict, "membership %s already holds item %s", membershipID, serialNo)
	}
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "could not record issue", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fault.Wrap(fault.Storage, "could not commit issue", err)
	}

	span.SetAttributes(attribute.Int64("issue.id", issue.ID))
	return issue, nil
}

// ProcessReturn handles the check/return workflow. check is a pure dry run;
// return applies the three mutations (issue record, item copies, member
// fine) in a single transaction, all-or-nothing. The Active-status filter
// in the lookup is the sole double-return guard: a second return finds no
// active issue and fails without touching the copy count again.
func (s *service) ProcessReturn(ctx context.Context, req ReturnRequest) (*ReturnResult, error) {
	ctx, span := s.tracer.Start(ctx, "circulation.return",
		trace.WithAttributes(
			attribute.String("item.serial_no", req.SerialNo),
			attribute.String("membership.id", req.MembershipID),
			attribute.String("return.action", string(req.Action)),
		),
	)
	defer span.End()

	if req.SerialNo == "" || req.MembershipID == "" {
		return nil, fault.New(fault.Validation, "serial no and membership id are mandatory")
	}
	if req.Action != ActionCheck && req.Action != ActionReturn {
		return nil, fault.Newf(fault.Validation, "unknown action %q", req.Action)
	}
	actual, err := time.Parse(dateLayout, req.ActualReturnDate)
	if err != nil {
		return nil, fault.New(fault.Validation, "invalid date format")
	}

	issue := &Issue{}
	err = s.db.GetContext(ctx, issue,
		`SELECT id, serial_no, membership_id, issue_date, return_date_due, fine_amount, fine_paid, status
		 FROM issues
		 WHERE serial_no = $1 AND membership_id = $2 AND status = $3`,
		req.SerialNo, req.MembershipID, StatusActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fault.New(fault.NotFound, "no active issue found")
	}
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "could not load issue", err)
	}

	overdueDays, fine := Fine(issue.ReturnDateDue, actual)
	span.SetAttributes(
		attribute.Int("fine.overdue_days", overdueDays),
		attribute.Float64("fine.amount", fine),
	)

	result := &ReturnResult{
		SerialNo:     req.SerialNo,
		MembershipID: req.MembershipID,
		Action:       req.Action,
		OverdueDays:  overdueDays,
		Fine:         fine,
	}

	if req.Action == ActionCheck {
		if overdueDays > 0 {
			result.Message = fmt.Sprintf("item is %d days overdue", overdueDays)
		} else {
			result.Message = "item is on time"
		}
		return result, nil
	}

	if err := s.applyReturn(ctx, issue, actual, fine); err != nil {
		return nil, err
	}

	result.Returned = true
	if fine > 0 {
		result.Message = fmt.Sprintf("returned, fine: %.2f", fine)
	} else {
		result.Message = "returned successfully"
	}
	return result, nil
}

// applyReturn commits the three return mutations atomically: close the
// issue record, put the copy back on the shelf, and accrue the fine on the
// member. Any failure rolls all of them back.
func (s *service) applyReturn(ctx context.Context, issue *Issue, actual time.Time, fine float64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fault.Wrap(fault.Storage, "could not begin transaction", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE issues
		 SET return_date_actual = $1, fine_amount = $2, fine_paid = FALSE, status = $3
		 WHERE id = $4 AND status = $5`,
		actual, fine, StatusReturned, issue.ID, StatusActive)
	if err != nil {
		return fault.Wrap(fault.Storage, "could not update issue", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fault.Wrap(fault.Storage, "could not update issue", err)
	}
	if affected == 0 {
		// Lost the race against a concurrent return of the same issue.
		return fault.New(fault.NotFound, "no active issue found")
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE items SET available_copies = available_copies + 1 WHERE serial_no = $1`,
		issue.SerialNo); err != nil {
		return fault.Wrap(fault.Storage, "could not update item copies", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE memberships SET pending_fine = pending_fine + $1 WHERE membership_id = $2`,
		fine, issue.MembershipID); err != nil {
		return fault.Wrap(fault.Storage, "could not update pending fine", err)
	}

	if err := tx.Commit(); err != nil {
		return fault.Wrap(fault.Storage, "could not commit return", err)
	}
	return nil
}

// OpenIssues lists a member's active issues.
func (s *service) OpenIssues(ctx context.Context, membershipID string) ([]*Issue, error) {
	var issues []*Issue
	err := s.db.SelectContext(ctx, &issues,
		`SELECT id, serial_no, membership_id, issue_date, return_date_due, return_date_actual,
		        fine_amount, fine_paid, status
		 FROM issues
		 WHERE membership_id = $1 AND status = $2
		 ORDER BY issue_date`,
		membershipID, StatusActive)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "could not list issues", err)
	}
	return issues, nil
}
