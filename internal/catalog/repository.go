package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/arontec/scm-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Sort orders accepted by the public product listing.
const (
	SortDisplay = "display"
	SortNewest  = "newest"
)

// ListProductsInput captures the public listing filters.
type ListProductsInput struct {
	CategorySlug string
	Search       string
	IsNew        *bool
	Sort         string
}

// Repository wires together product and category persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateProduct inserts the product and returns the persisted row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// SaveProduct persists every column of an existing product.
func (r *Repository) SaveProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindProductByID loads a product by numeric id.
func (r *Repository) FindProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindProductByModelNo resolves the primary natural key.
func (r *Repository) FindProductByModelNo(ctx context.Context, modelNo string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("model_no = ?", modelNo).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindProductByModelName resolves the fallback natural key.
func (r *Repository) FindProductByModelName(ctx context.Context, modelName string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("model_name = ?", modelName).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts applies the public listing filters.
func (r *Repository) ListProducts(ctx context.Context, input ListProductsInput) ([]models.Product, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{})

	if input.CategorySlug != "" {
		q = q.Where(
			"category_id IN (?)",
			r.db.Model(&models.Category{}).Select("id").Where("slug = ?", input.CategorySlug),
		)
	}
	if search := strings.TrimSpace(input.Search); search != "" {
		like := "%" + search + "%"
		q = q.Where("brand LIKE ? OR model_name LIKE ? OR model_no LIKE ?", like, like, like)
	}
	if input.IsNew != nil {
		q = q.Where("is_new = ?", *input.IsNew)
	}

	switch input.Sort {
	case SortNewest:
		q = q.Order("id DESC")
	default:
		q = q.Order("display_order DESC").Order("created_at DESC")
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// DistinctNonEmpty lists the distinct non-empty values of a whitelisted column.
func (r *Repository) DistinctNonEmpty(ctx context.Context, column string) ([]string, error) {
	switch column {
	case "brand", "manufacturer", "origin":
	default:
		return nil, gorm.ErrInvalidField
	}
	var values []string
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Distinct(column).
		Where(column + " <> ''").
		Order(column + " ASC").
		Pluck(column, &values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

// SetAvailability flips the availability flag.
func (r *Repository) SetAvailability(ctx context.Context, id int64, available bool) error {
	return r.updateProductColumn(ctx, id, "is_available", available)
}

// SetNew flips the "new" flag.
func (r *Repository) SetNew(ctx context.Context, id int64, isNew bool) error {
	return r.updateProductColumn(ctx, id, "is_new", isNew)
}

// SetDisplayOrder updates the sort weight.
func (r *Repository) SetDisplayOrder(ctx context.Context, id int64, order int) error {
	return r.updateProductColumn(ctx, id, "display_order", order)
}

func (r *Repository) updateProductColumn(ctx context.Context, id int64, column string, value any) error {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListProductIDsCreatedSince returns ids of products created in the window,
// for the bulk recent-delete operation.
func (r *Repository) ListProductIDsCreatedSince(ctx context.Context, since time.Time) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("created_at >= ?", since).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ListProductIDsInRange returns ids within an inclusive id range.
func (r *Repository) ListProductIDsInRange(ctx context.Context, fromID, toID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id BETWEEN ? AND ?", fromID, toID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// CreateCategory inserts a category.
func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// FindCategoryByName resolves the exact category name.
func (r *Repository) FindCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// CategoryCount pairs a category with its product count.
type CategoryCount struct {
	models.Category
	ProductCount int64
}

// ListCategoriesWithCounts returns every category plus its product count,
// ordered by display weight.
func (r *Repository) ListCategoriesWithCounts(ctx context.Context) ([]CategoryCount, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Order("display_order ASC").Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}

	type countRow struct {
		CategoryID int64
		Count      int64
	}
	var rows []countRow
	err = r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("category_id, COUNT(*) AS count").
		Where("category_id IS NOT NULL").
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[int64]int64, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.Count
	}

	out := make([]CategoryCount, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryCount{Category: c, ProductCount: counts[c.ID]})
	}
	return out, nil
}

// CountProducts returns the catalog size.
func (r *Repository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
