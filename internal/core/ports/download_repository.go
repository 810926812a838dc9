package ports

import (
	"context"

	"github.com/myne7x/store-api/internal/core/domain"
)

// DownloadRepository defines persistence operations for the entitlement
// ledger.
type DownloadRepository interface {
	// Grant inserts the entitlement and increments the product's
	// downloads_count in one transaction. A pre-existing (user, product)
	// entitlement makes the call an idempotent no-op: created is false and
	// the counter is untouched.
	Grant(ctx context.Context, d *domain.UserDownload) (created bool, err error)
	Exists(ctx context.Context, userID, productID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.UserDownload, error)
}
