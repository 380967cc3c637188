package models

import "time"

// Product is the canonical catalog entry. ModelName is required; ModelNo, when
// present, takes precedence over ModelName as the natural key during
// spreadsheet import reconciliation.
type Product struct {
	ID                    int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CategoryID            *int64    `gorm:"column:category_id;index"`
	Brand                 string    `gorm:"column:brand;type:text;not null;default:''"`
	ModelName             string    `gorm:"column:model_name;type:text;not null;index"`
	ModelNo               string    `gorm:"column:model_no;type:text;not null;default:'';index"`
	Description           string    `gorm:"column:description;type:text;not null;default:''"`
	ProductSpec           string    `gorm:"column:product_spec;type:text;not null;default:''"`
	ProductOptions        string    `gorm:"column:product_options;type:text;not null;default:''"`
	ImageURL              string    `gorm:"column:image_url;type:text;not null;default:''"`
	DetailURL             string    `gorm:"column:detail_url;type:text;not null;default:''"`
	ConsumerPrice         int64     `gorm:"column:consumer_price;not null;default:0"`
	SupplyPrice           int64     `gorm:"column:supply_price;not null;default:0"`
	B2BPrice              int64     `gorm:"column:b2b_price;not null;default:0"`
	Price                 int64     `gorm:"column:price;not null;default:0"`
	StockQuantity         int       `gorm:"column:stock_quantity;not null;default:0"`
	QuantityPerCarton     int       `gorm:"column:quantity_per_carton;not null;default:0"`
	ShippingFee           int64     `gorm:"column:shipping_fee;not null;default:0"`
	ShippingFeeIndividual *int64    `gorm:"column:shipping_fee_individual"`
	ShippingFeeCarton     int64     `gorm:"column:shipping_fee_carton;not null;default:0"`
	Manufacturer          string    `gorm:"column:manufacturer;type:text;not null;default:''"`
	Origin                string    `gorm:"column:origin;type:text;not null;default:''"`
	IsTaxFree             bool      `gorm:"column:is_tax_free;not null;default:false"`
	IsAvailable           bool      `gorm:"column:is_available;not null;default:true"`
	IsNew                 bool      `gorm:"column:is_new;not null;default:false"`
	DisplayOrder          int       `gorm:"column:display_order;not null;default:0"`
	Remarks               string    `gorm:"column:remarks;type:text;not null;default:''"`
	CreatedAt             time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
