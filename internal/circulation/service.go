// internal/circulation/service.go
package circulation

import (
	"context"
	"time"
)

// Service defines the interface for the circulation service.
type Service interface {
	IssueItem(ctx context.Context, serialNo, membershipID string, issueDate time.Time) (*Issue, error)
	ProcessReturn(ctx context.Context, req ReturnRequest) (*ReturnResult, error)
	OpenIssues(ctx context.Context, membershipID string) ([]*Issue, error)
}
