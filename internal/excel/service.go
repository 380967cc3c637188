package excel

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/arontec/scm-backend/pkg/db"
)

// Service exposes spreadsheet bulk operations. All of them are admin-only at
// the routing layer.
type Service interface {
	// Import ingests a partner product sheet. Row failures are reported, not
	// fatal: the remaining rows still commit.
	Import(ctx context.Context, r io.Reader) (*ImportResult, error)

	// Data repair utilities for sheets ingested before the price columns were
	// normalized. Every rule is idempotent; FixAll runs all four in a single
	// transaction.
	SwapPrices(ctx context.Context) (int64, error)
	SyncSupplyPrices(ctx context.Context) (int64, error)
	RescaleShippingFees(ctx context.Context) (int64, error)
	SyncShippingFees(ctx context.Context) (int64, error)
	FixAll(ctx context.Context) (*FixResult, error)

	// Export renders the whole catalog as a marketplace bulk-upload workbook.
	Export(ctx context.Context) (*excelize.File, error)
}

// ImportResult aggregates one import run.
type ImportResult struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

// FixResult reports per-rule affected row counts from a combined repair run.
type FixResult struct {
	Swapped        int64 `json:"swapped"`
	SyncedSupply   int64 `json:"syncedSupply"`
	FixedShipping  int64 `json:"fixedShipping"`
	SyncedShipping int64 `json:"syncedShipping"`
}

type service struct {
	db *db.Client
}

// NewService constructs an excel service instance.
func NewService(client *db.Client) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client is required")
	}
	return &service{db: client}, nil
}
