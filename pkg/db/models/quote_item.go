package models

// QuoteItem denormalizes brand and model at quote-creation time so historical
// quotes stay readable after the product changes or disappears.
type QuoteItem struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	QuoteID   int64  `gorm:"column:quote_id;not null;index"`
	ProductID *int64 `gorm:"column:product_id;index"`
	Brand     string `gorm:"column:brand;type:text;not null;default:''"`
	ModelName string `gorm:"column:model_name;type:text;not null;default:''"`
	UnitPrice int64  `gorm:"column:unit_price;not null"`
	Quantity  int    `gorm:"column:quantity;not null"`
	Subtotal  int64  `gorm:"column:subtotal;not null"`
}
