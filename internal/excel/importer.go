package excel

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/arontec/scm-backend/internal/catalog"
	"github.com/arontec/scm-backend/pkg/db"
	"github.com/arontec/scm-backend/pkg/db/models"
	pkgerrors "github.com/arontec/scm-backend/pkg/errors"
)

// Row numbers in error messages are 1-based spreadsheet rows, so the first
// data row below the header reports as row 2.
const headerRowOffset = 2

// maxReportedErrors bounds the error list in the response. Failures past the
// cap are still counted.
const maxReportedErrors = 50

type importRow struct {
	brand                 string
	modelName             string
	modelNo               string
	category              string
	description           string
	productSpec           string
	productOptions        string
	imageURL              string
	detailURL             string
	manufacturer          string
	origin                string
	remarks               string
	consumerPrice         int64
	supplyPrice           int64
	b2bPrice              int64
	stockQuantity         int64
	quantityPerCarton     int64
	shippingFee           int64
	shippingFeeIndividual int64
	shippingFeeCarton     int64
	isTaxFree             bool
}

func (s *service) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "open workbook")
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "workbook has no sheets")
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read sheet rows")
	}
	if len(rows) < 2 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sheet has no data rows")
	}

	cols := resolveHeader(rows[0])
	result := &ImportResult{Errors: []string{}}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		for i, raw := range rows[1:] {
			rowNum := i + headerRowOffset
			if err := s.importRow(ctx, tx, parseRow(cols, raw)); err != nil {
				result.Failed++
				if len(result.Errors) < maxReportedErrors {
					result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", rowNum, rowErrorMessage(err)))
				}
				continue
			}
			result.Success++
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "import products")
	}
	return result, nil
}

func parseRow(cols map[field]int, raw []string) importRow {
	get := func(f field) string {
		idx, ok := cols[f]
		if !ok || idx >= len(raw) {
			return ""
		}
		return sanitize(raw[idx])
	}

	row := importRow{
		brand:                 get(fieldBrand),
		modelName:             get(fieldModelName),
		modelNo:               get(fieldModelNo),
		category:              get(fieldCategory),
		description:           get(fieldDescription),
		productSpec:           get(fieldProductSpec),
		productOptions:        get(fieldProductOptions),
		imageURL:              get(fieldImageURL),
		detailURL:             get(fieldDetailURL),
		manufacturer:          get(fieldManufacturer),
		origin:                get(fieldOrigin),
		remarks:               get(fieldRemarks),
		consumerPrice:         parsePrice(get(fieldConsumerPrice)),
		supplyPrice:           parsePrice(get(fieldSupplyPrice)),
		b2bPrice:              parsePrice(get(fieldB2BPrice)),
		stockQuantity:         parsePrice(get(fieldStock)),
		quantityPerCarton:     parsePrice(get(fieldQuantityPerCarton)),
		shippingFee:           parsePrice(get(fieldShippingFee)),
		shippingFeeIndividual: parsePrice(get(fieldShippingFeeIndividual)),
		shippingFeeCarton:     parsePrice(get(fieldShippingFeeCarton)),
		isTaxFree:             parseTaxFree(get(fieldIsTaxFree)),
	}

	// Soft backfills: purchase price follows the B2B price when absent, the
	// per-item shipping fee follows the general fee when absent.
	if row.supplyPrice == 0 {
		row.supplyPrice = row.b2bPrice
	}
	if row.shippingFeeIndividual == 0 {
		row.shippingFeeIndividual = row.shippingFee
	}
	if row.quantityPerCarton == 0 {
		row.quantityPerCarton = 1
	}
	return row
}

func (s *service) importRow(ctx context.Context, tx *gorm.DB, row importRow) error {
	if row.modelName == "" {
		return errors.New("Model Name is required")
	}

	categoryID, err := resolveCategory(tx, row.category)
	if err != nil {
		return err
	}

	existing, err := findByNaturalKey(ctx, catalog.NewRepository(tx), row.modelNo, row.modelName)
	if err != nil {
		return err
	}

	individual := row.shippingFeeIndividual
	if existing != nil {
		updates := map[string]any{
			"brand":                   row.brand,
			"model_name":              row.modelName,
			"model_no":                row.modelNo,
			"description":             row.description,
			"product_spec":            row.productSpec,
			"product_options":         row.productOptions,
			"image_url":               row.imageURL,
			"detail_url":              row.detailURL,
			"consumer_price":          row.consumerPrice,
			"supply_price":            row.supplyPrice,
			"b2b_price":               row.b2bPrice,
			"stock_quantity":          row.stockQuantity,
			"quantity_per_carton":     row.quantityPerCarton,
			"shipping_fee":            row.shippingFee,
			"shipping_fee_individual": individual,
			"shipping_fee_carton":     row.shippingFeeCarton,
			"manufacturer":            row.manufacturer,
			"origin":                  row.origin,
			"is_tax_free":             row.isTaxFree,
			"remarks":                 row.remarks,
		}
		// A row without a category keeps the product's current one.
		if categoryID != nil {
			updates["category_id"] = *categoryID
		}
		return tx.Model(&models.Product{}).Where("id = ?", existing.ID).Updates(updates).Error
	}

	product := &models.Product{
		CategoryID:            categoryID,
		Brand:                 row.brand,
		ModelName:             row.modelName,
		ModelNo:               row.modelNo,
		Description:           row.description,
		ProductSpec:           row.productSpec,
		ProductOptions:        row.productOptions,
		ImageURL:              row.imageURL,
		DetailURL:             row.detailURL,
		ConsumerPrice:         row.consumerPrice,
		SupplyPrice:           row.supplyPrice,
		B2BPrice:              row.b2bPrice,
		StockQuantity:         int(row.stockQuantity),
		QuantityPerCarton:     int(row.quantityPerCarton),
		ShippingFee:           row.shippingFee,
		ShippingFeeIndividual: &individual,
		ShippingFeeCarton:     row.shippingFeeCarton,
		Manufacturer:          row.manufacturer,
		Origin:                row.origin,
		IsTaxFree:             row.isTaxFree,
		IsAvailable:           true,
		Remarks:               row.remarks,
	}
	return tx.Create(product).Error
}

// findByNaturalKey prefers the model number; rows without one, or whose
// number is not in the catalog yet, fall back to the exact model name.
func findByNaturalKey(ctx context.Context, repo *catalog.Repository, modelNo, modelName string) (*models.Product, error) {
	if modelNo != "" {
		product, err := repo.FindProductByModelNo(ctx, modelNo)
		if err == nil {
			return product, nil
		}
		if !db.IsNotFound(err) {
			return nil, err
		}
	}
	product, err := repo.FindProductByModelName(ctx, modelName)
	if err == nil {
		return product, nil
	}
	if db.IsNotFound(err) {
		return nil, nil
	}
	return nil, err
}

func resolveCategory(tx *gorm.DB, name string) (*int64, error) {
	if name == "" {
		return nil, nil
	}
	var category models.Category
	err := tx.Where("name = ?", name).First(&category).Error
	if err == nil {
		return &category.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	category = models.Category{Name: name, Slug: catalog.Slugify(name)}
	if err := tx.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category.ID, nil
}

func rowErrorMessage(err error) string {
	if typed := pkgerrors.As(err); typed != nil {
		return typed.Message()
	}
	return err.Error()
}
