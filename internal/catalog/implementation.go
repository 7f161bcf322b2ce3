// internal/catalog/implementation.go
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"libdesk/internal/fault"
	"libdesk/internal/idgen"
)

const maxIDAttempts = 3

const dateLayout = "2006-01-02"

// service implements the Service interface.
type service struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewService creates a new catalog service instance.
func NewService(db *sqlx.DB) Service {
	return &service{db: db, now: time.Now}
}

// AddItem validates the form and inserts a catalog entry under a freshly
// generated serial number. Books and movies draw from distinct prefixes, so
// the sequence counters never collide.
func (s *service) AddItem(ctx context.Context, in NewItem) (*Item, error) {
	if in.Name == "" || in.AuthorName == "" || in.Category == "" ||
		in.Cost == "" || in.ProcurementDate == "" || in.Quantity == "" {
		return nil, fault.New(fault.Validation, "all fields are mandatory")
	}

	var kind idgen.Kind
	switch ItemType(in.Type) {
	case TypeBook, "":
		kind = idgen.KindBook
		in.Type = string(TypeBook)
	case TypeMovie:
		kind = idgen.KindMovie
	default:
		return nil, fault.Newf(fault.Validation, "unknown item type %q", in.Type)
	}

	cost, err := strconv.ParseFloat(in.Cost, 64)
	if err != nil || cost < 0 {
		return nil, fault.New(fault.Validation, "invalid number format for cost or quantity")
	}
	quantity, err := strconv.Atoi(in.Quantity)
	if err != nil || quantity < 1 {
		return nil, fault.New(fault.Validation, "invalid number format for cost or quantity")
	}
	procured, err := time.Parse(dateLayout, in.ProcurementDate)
	if err != nil {
		return nil, fault.New(fault.Validation, "invalid date format")
	}

	item := &Item{
		Name:            in.Name,
		AuthorName:      in.AuthorName,
		Category:        in.Category,
		Type:            ItemType(in.Type),
		Cost:            cost,
		ProcurementDate: procured,
		TotalCopies:     quantity,
		AvailableCopies: quantity,
		CurrentStatus:   StatusAvailable,
	}

	query := `
		INSERT INTO items
		(serial_no, name, author_name, category, type, cost, procurement_date, total_copies, available_copies, current_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		serial, err := idgen.Next(ctx, s.db, kind, s.now())
		if err != nil {
			return nil, fault.Wrap(fault.Storage, "could not generate serial number", err)
		}

		_, err = s.db.ExecContext(ctx, query,
			serial, item.Name, item.AuthorName, item.Category, item.Type, item.Cost,
			item.ProcurementDate, item.TotalCopies, item.AvailableCopies, item.CurrentStatus)
		if idgen.IsUniqueViolation(err) {
			continue
		}
		if err != nil {
			return nil, fault.Wrap(fault.Storage, "could not add item", err)
		}

		item.SerialNo = serial
		return item, nil
	}

	return nil, fault.New(fault.Conflict, "could not allocate a serial number, please retry")
}

// GetItem retrieves a catalog entry by its serial number.
func (s *service) GetItem(ctx context.Context, serialNo string) (*Item, error) {
	query := `
		SELECT serial_no, name, author_name, category, type, cost, procurement_date,
		       total_copies, available_copies, current_status
		FROM items
		WHERE serial_no = $1
	`
	item := &Item{}
	err := s.db.GetContext(ctx, item, query, serialNo)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fault.Newf(fault.NotFound, "item %s not found", serialNo)
	}
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "could not load item", err)
	}
	return item, nil
}

// Availability returns the distinct names and authors in the catalog.
func (s *service) Availability(ctx context.Context) (*Availability, error) {
	av := &Availability{}

	if err := s.db.SelectContext(ctx, &av.Names,
		`SELECT DISTINCT name FROM items ORDER BY name`); err != nil {
		return nil, fault.Wrap(fault.Storage, "could not retrieve item lists", err)
	}
	if err := s.db.SelectContext(ctx, &av.Authors,
		`SELECT DISTINCT author_name FROM items ORDER BY author_name`); err != nil {
		return nil, fault.Wrap(fault.Storage, "could not retrieve item lists", err)
	}

	return av, nil
}
