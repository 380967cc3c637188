package excel

import (
	"context"

	"gorm.io/gorm"

	pkgerrors "github.com/arontec/scm-backend/pkg/errors"
)

// Repair statements for catalogs ingested before the import pipeline
// normalized the price columns. All are single UPDATEs whose WHERE clauses
// exclude already-repaired rows, so re-running them affects nothing.

// swapPricesSQL undoes sheets that had the consumer and B2B columns reversed.
// Simultaneous assignment reads the pre-update values on both sides.
const swapPricesSQL = `
UPDATE products
SET b2b_price = consumer_price, consumer_price = b2b_price
WHERE b2b_price > consumer_price AND consumer_price > 0`

const syncSupplySQL = `
UPDATE products
SET supply_price = b2b_price
WHERE (supply_price = 0 OR supply_price IS NULL) AND b2b_price > 0`

// rescaleShippingSQL repairs fees entered in thousands of won (3 instead of
// 3000). Real fees are never below 100 won.
const rescaleShippingSQL = `
UPDATE products
SET shipping_fee_individual = shipping_fee_individual * 1000
WHERE shipping_fee_individual > 0 AND shipping_fee_individual < 100`

const syncShippingSQL = `
UPDATE products
SET shipping_fee_individual = shipping_fee
WHERE (shipping_fee_individual = 0 OR shipping_fee_individual IS NULL) AND shipping_fee > 0`

func (s *service) SwapPrices(ctx context.Context) (int64, error) {
	return s.repair(ctx, swapPricesSQL, "swap prices")
}

func (s *service) SyncSupplyPrices(ctx context.Context) (int64, error) {
	return s.repair(ctx, syncSupplySQL, "sync supply prices")
}

func (s *service) RescaleShippingFees(ctx context.Context) (int64, error) {
	return s.repair(ctx, rescaleShippingSQL, "rescale shipping fees")
}

func (s *service) SyncShippingFees(ctx context.Context) (int64, error) {
	return s.repair(ctx, syncShippingSQL, "sync shipping fees")
}

// FixAll runs every repair in dependency order inside one transaction: prices
// must be swapped before the supply backfill reads them, and fees rescaled
// before the shipping backfill. A failed rule rolls the whole run back.
func (s *service) FixAll(ctx context.Context) (*FixResult, error) {
	result := &FixResult{}
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		if result.Swapped, err = execRepair(tx, swapPricesSQL, "swap prices"); err != nil {
			return err
		}
		if result.SyncedSupply, err = execRepair(tx, syncSupplySQL, "sync supply prices"); err != nil {
			return err
		}
		if result.FixedShipping, err = execRepair(tx, rescaleShippingSQL, "rescale shipping fees"); err != nil {
			return err
		}
		result.SyncedShipping, err = execRepair(tx, syncShippingSQL, "sync shipping fees")
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) repair(ctx context.Context, query, action string) (int64, error) {
	return execRepair(s.db.DB().WithContext(ctx), query, action)
}

func execRepair(db *gorm.DB, query, action string) (int64, error) {
	res := db.Exec(query)
	if res.Error != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, res.Error, action)
	}
	return res.RowsAffected, nil
}
