// internal/catalog/service.go
package catalog

import "context"

// NewItem carries the form fields for a catalog entry. Cost and Quantity
// arrive as externally supplied strings and are validated by the service.
type NewItem struct {
	Type            string `json:"item_type"`
	Name            string `json:"name"`
	AuthorName      string `json:"author_director"`
	Category        string `json:"category"`
	Cost            string `json:"cost"`
	ProcurementDate string `json:"procurement_date"`
	Quantity        string `json:"quantity"`
}

// Service defines the interface for the catalog service.
type Service interface {
	AddItem(ctx context.Context, in NewItem) (*Item, error)
	GetItem(ctx context.Context, serialNo string) (*Item, error)
	Availability(ctx context.Context) (*Availability, error)
}
