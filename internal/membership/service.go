// internal/membership/service.go
package membership

import "context"

// Registration carries the form fields for a new membership. StartDate and
// Duration are the externally supplied strings; the service validates them.
type Registration struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	ContactNumber  string `json:"contact_number"`
	ContactAddress string `json:"contact_address"`
	AadharCardNo   string `json:"aadhar_card_no"`
	StartDate      string `json:"start_date"`
	Duration       string `json:"membership_duration"`
}

// Service defines the interface for the membership service.
type Service interface {
	Register(ctx context.Context, reg Registration) (*Member, error)
	GetMember(ctx context.Context, membershipID string) (*Member, error)
}
