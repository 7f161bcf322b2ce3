// internal/catalog/domain.go
package catalog

import "time"

// ItemType distinguishes the two stocked media kinds.
type ItemType string

const (
	TypeBook  ItemType = "Book"
	TypeMovie ItemType = "Movie"
)

// StatusAvailable is the status a fresh catalog entry starts in.
const StatusAvailable = "Available"

// Item represents a catalog entry for one title, tracking how many copies
// the library owns and how many are currently on the shelf.
// 0 <= AvailableCopies <= TotalCopies holds at all times; the schema
// enforces it with a check constraint.
type Item struct {
	SerialNo        string    `db:"serial_no" json:"serial_no"`
	Name            string    `db:"name" json:"name"`
	AuthorName      string    `db:"author_name" json:"author_name"`
	Category        string    `db:"category" json:"category"`
	Type            ItemType  `db:"type" json:"type"`
	Cost            float64   `db:"cost" json:"cost"`
	ProcurementDate time.Time `db:"procurement_date" json:"procurement_date"`
	TotalCopies     int       `db:"total_copies" json:"total_copies"`
	AvailableCopies int       `db:"available_copies" json:"available_copies"`
	CurrentStatus   string    `db:"current_status" json:"current_status"`
}

// Availability lists the distinct titles and authors held in the catalog,
// used to populate the availability lookup form.
type Availability struct {
	Names   []string `json:"names"`
	Authors []string `json:"authors"`
}
