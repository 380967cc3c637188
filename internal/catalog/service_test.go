package catalog

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/arontec/scm-backend/pkg/db"
	"github.com/arontec/scm-backend/pkg/db/models"
	pkgerrors "github.com/arontec/scm-backend/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:catalog_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = conn.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.Quote{},
		&models.QuoteItem{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	svc, err := NewService(NewRepository(conn), db.NewWithConn(conn))
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, conn
}

func seedProduct(t *testing.T, svc Service, input CreateProductInput) *ProductDTO {
	t.Helper()
	if input.ModelName == "" {
		input.ModelName = "MODEL-X"
	}
	dto, err := svc.CreateProduct(context.Background(), input)
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return dto
}

func TestCreateProductRequiresModelName(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.CreateProduct(context.Background(), CreateProductInput{Brand: "ACME"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateProductDefaultsAvailability(t *testing.T) {
	svc, _ := newTestService(t)
	dto := seedProduct(t, svc, CreateProductInput{ModelName: "AR-100"})
	if !dto.IsAvailable {
		t.Fatal("expected availability to default to true")
	}
}

func TestUpdateProductAppliesPartialChanges(t *testing.T) {
	svc, _ := newTestService(t)
	created := seedProduct(t, svc, CreateProductInput{ModelName: "AR-200", Brand: "ACME", B2BPrice: 1000})

	brand := "NewBrand"
	price := int64(2500)
	updated, err := svc.UpdateProduct(context.Background(), created.ID, UpdateProductInput{
		Brand:    &brand,
		B2BPrice: &price,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Brand != "NewBrand" || updated.B2BPrice != 2500 {
		t.Fatalf("updates not applied: %+v", updated)
	}
	if updated.ModelName != "AR-200" {
		t.Fatalf("untouched field changed: %q", updated.ModelName)
	}
}

func TestDeleteProductCascadesQuoteItemsButKeepsQuote(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	product := seedProduct(t, svc, CreateProductInput{ModelName: "AR-300", B2BPrice: 5000})

	user := models.User{Email: "p@example.com", PasswordHash: "h", CompanyName: "C", ContactPerson: "P", Phone: "010", IsApproved: true}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	quote := models.Quote{UserID: user.ID, QuoteNumber: "Q-1", TotalAmount: 5000, Status: models.QuoteStatusPending}
	if err := conn.Create(&quote).Error; err != nil {
		t.Fatalf("seed quote: %v", err)
	}
	item := models.QuoteItem{QuoteID: quote.ID, ProductID: &product.ID, ModelName: "AR-300", UnitPrice: 5000, Quantity: 1, Subtotal: 5000}
	if err := conn.Create(&item).Error; err != nil {
		t.Fatalf("seed quote item: %v", err)
	}

	if err := svc.DeleteProduct(ctx, product.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}

	var itemCount, quoteCount, productCount int64
	conn.Model(&models.QuoteItem{}).Where("product_id = ?", product.ID).Count(&itemCount)
	conn.Model(&models.Quote{}).Where("id = ?", quote.ID).Count(&quoteCount)
	conn.Model(&models.Product{}).Where("id = ?", product.ID).Count(&productCount)

	if itemCount != 0 {
		t.Fatal("quote items not cascaded")
	}
	if quoteCount != 1 {
		t.Fatal("quote row must survive product delete")
	}
	if productCount != 0 {
		t.Fatal("product not deleted")
	}
}

func TestDeleteProductRangeCascades(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	first := seedProduct(t, svc, CreateProductInput{ModelName: "R-1"})
	second := seedProduct(t, svc, CreateProductInput{ModelName: "R-2"})
	third := seedProduct(t, svc, CreateProductInput{ModelName: "R-3"})

	deleted, err := svc.DeleteProductRange(ctx, first.ID, second.ID)
	if err != nil {
		t.Fatalf("delete range: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deletions, got %d", deleted)
	}

	var remaining int64
	conn.Model(&models.Product{}).Count(&remaining)
	if remaining != 1 {
		t.Fatalf("expected 1 product left, got %d", remaining)
	}
	if _, err := svc.GetProduct(ctx, third.ID); err != nil {
		t.Fatalf("survivor missing: %v", err)
	}
}

func TestListProductsFilters(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	living, err := svc.CreateCategory(ctx, "Home & Living", 0)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	seedProduct(t, svc, CreateProductInput{ModelName: "Vacuum V1", Brand: "CleanCo", CategoryID: &living.ID})
	seedProduct(t, svc, CreateProductInput{ModelName: "Mixer M1", Brand: "KitchenPro", IsNew: true})

	byCategory, err := svc.ListProducts(ctx, ListProductsInput{CategorySlug: "home-living"})
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(byCategory) != 1 || byCategory[0].ModelName != "Vacuum V1" {
		t.Fatalf("category filter wrong: %+v", byCategory)
	}

	bySearch, err := svc.ListProducts(ctx, ListProductsInput{Search: "Kitchen"})
	if err != nil {
		t.Fatalf("list by search: %v", err)
	}
	if len(bySearch) != 1 || bySearch[0].Brand != "KitchenPro" {
		t.Fatalf("search filter wrong: %+v", bySearch)
	}

	isNew := true
	byNew, err := svc.ListProducts(ctx, ListProductsInput{IsNew: &isNew})
	if err != nil {
		t.Fatalf("list by new: %v", err)
	}
	if len(byNew) != 1 || !byNew[0].IsNew {
		t.Fatalf("new filter wrong: %+v", byNew)
	}
}

func TestListProductsSortsByDisplayOrderThenRecency(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	seedProduct(t, svc, CreateProductInput{ModelName: "low", DisplayOrder: 1})
	seedProduct(t, svc, CreateProductInput{ModelName: "high", DisplayOrder: 9})

	list, err := svc.ListProducts(ctx, ListProductsInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ModelName != "high" {
		t.Fatalf("unexpected order: %+v", list)
	}

	newest, err := svc.ListProducts(ctx, ListProductsInput{Sort: SortNewest})
	if err != nil {
		t.Fatalf("list newest: %v", err)
	}
	if newest[0].ID < newest[1].ID {
		t.Fatalf("newest sort wrong: %+v", newest)
	}
}

func TestCategoriesWithCountsAndConflict(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, "Appliances", 0)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	seedProduct(t, svc, CreateProductInput{ModelName: "A-1", CategoryID: &cat.ID})
	seedProduct(t, svc, CreateProductInput{ModelName: "A-2", CategoryID: &cat.ID})
	seedProduct(t, svc, CreateProductInput{ModelName: "Uncategorized"})

	list, err := svc.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(list.Categories) != 1 || list.Categories[0].ProductCount != 2 {
		t.Fatalf("unexpected counts: %+v", list)
	}
	if list.TotalProducts != 3 {
		t.Fatalf("expected total 3, got %d", list.TotalProducts)
	}

	_, err = svc.CreateCategory(ctx, "appliances", 0)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected slug conflict, got %v", err)
	}
}

func TestListDistinctSkipsEmptyValues(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	seedProduct(t, svc, CreateProductInput{ModelName: "D-1", Brand: "Alpha", Manufacturer: "Makers"})
	seedProduct(t, svc, CreateProductInput{ModelName: "D-2", Brand: "Alpha"})
	seedProduct(t, svc, CreateProductInput{ModelName: "D-3", Brand: "Beta", Origin: "KR"})

	brands, err := svc.ListDistinct(ctx, "brand")
	if err != nil {
		t.Fatalf("distinct brands: %v", err)
	}
	if len(brands) != 2 || brands[0] != "Alpha" || brands[1] != "Beta" {
		t.Fatalf("unexpected brands: %v", brands)
	}

	origins, err := svc.ListDistinct(ctx, "origin")
	if err != nil {
		t.Fatalf("distinct origins: %v", err)
	}
	if len(origins) != 1 || origins[0] != "KR" {
		t.Fatalf("unexpected origins: %v", origins)
	}
}

func TestTogglesUpdateFlags(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	product := seedProduct(t, svc, CreateProductInput{ModelName: "T-1"})

	if err := svc.SetAvailability(ctx, product.ID, false); err != nil {
		t.Fatalf("set availability: %v", err)
	}
	if err := svc.SetNew(ctx, product.ID, true); err != nil {
		t.Fatalf("set new: %v", err)
	}
	if err := svc.SetDisplayOrder(ctx, product.ID, 42); err != nil {
		t.Fatalf("set display order: %v", err)
	}

	got, err := svc.GetProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.IsAvailable || !got.IsNew || got.DisplayOrder != 42 {
		t.Fatalf("toggles not applied: %+v", got)
	}

	err = svc.SetNew(ctx, 99999, true)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown id, got %v", err)
	}
}

func TestAdminStats(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	pending := models.User{Email: "pending@example.com", PasswordHash: "h", CompanyName: "C", ContactPerson: "P", Phone: "1"}
	approved := models.User{Email: "ok@example.com", PasswordHash: "h", CompanyName: "C", ContactPerson: "P", Phone: "2", IsApproved: true}
	if err := conn.Create(&pending).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := conn.Create(&approved).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	conn.Create(&models.Quote{UserID: approved.ID, QuoteNumber: "Q-S1", Status: models.QuoteStatusPending})
	conn.Create(&models.Quote{UserID: approved.ID, QuoteNumber: "Q-S2", Status: models.QuoteStatusApproved})
	seedProduct(t, svc, CreateProductInput{ModelName: "S-low", StockQuantity: 3})
	seedProduct(t, svc, CreateProductInput{ModelName: "S-ok", StockQuantity: 50})

	stats, err := svc.AdminStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.PendingMembers != 1 || stats.PendingQuotes != 1 || stats.LowStockProducts != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
