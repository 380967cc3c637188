package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/arontec/scm-backend/internal/catalog"
)

type testCatalogService struct {
	createProductFn      func(ctx context.Context, input catalog.CreateProductInput) (*catalog.ProductDTO, error)
	updateProductFn      func(ctx context.Context, id int64, input catalog.UpdateProductInput) (*catalog.ProductDTO, error)
	deleteProductFn      func(ctx context.Context, id int64) error
	deleteRecentFn       func(ctx context.Context, hours int) (int64, error)
	deleteRangeFn        func(ctx context.Context, fromID, toID int64) (int64, error)
	getProductFn         func(ctx context.Context, id int64) (*catalog.ProductDTO, error)
	listProductsFn       func(ctx context.Context, input catalog.ListProductsInput) ([]catalog.ProductDTO, error)
	listCategoriesFn     func(ctx context.Context) (*catalog.CategoryListDTO, error)
	createCategoryFn     func(ctx context.Context, name string, displayOrder int) (*catalog.CategoryDTO, error)
	listDistinctFn       func(ctx context.Context, field string) ([]string, error)
	setAvailabilityFn    func(ctx context.Context, id int64, available bool) error
	setNewFn             func(ctx context.Context, id int64, isNew bool) error
	setDisplayOrderFn    func(ctx context.Context, id int64, order int) error
	adminStatsFn         func(ctx context.Context) (*catalog.AdminStatsDTO, error)
}

func (s *testCatalogService) CreateProduct(ctx context.Context, input catalog.CreateProductInput) (*catalog.ProductDTO, error) {
	if s.createProductFn != nil {
		return s.createProductFn(ctx, input)
	}
	return nil, nil
}

func (s *testCatalogService) UpdateProduct(ctx context.Context, id int64, input catalog.UpdateProductInput) (*catalog.ProductDTO, error) {
	if s.updateProductFn != nil {
		return s.updateProductFn(ctx, id, input)
	}
	return nil, nil
}

func (s *testCatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if s.deleteProductFn != nil {
		return s.deleteProductFn(ctx, id)
	}
	return nil
}

func (s *testCatalogService) DeleteRecentProducts(ctx context.Context, hours int) (int64, error) {
	if s.deleteRecentFn != nil {
		return s.deleteRecentFn(ctx, hours)
	}
	return 0, nil
}

func (s *testCatalogService) DeleteProductRange(ctx context.Context, fromID, toID int64) (int64, error) {
	if s.deleteRangeFn != nil {
		return s.deleteRangeFn(ctx, fromID, toID)
	}
	return 0, nil
}

func (s *testCatalogService) GetProduct(ctx context.Context, id int64) (*catalog.ProductDTO, error) {
	if s.getProductFn != nil {
		return s.getProductFn(ctx, id)
	}
	return nil, nil
}

func (s *testCatalogService) ListProducts(ctx context.Context, input catalog.ListProductsInput) ([]catalog.ProductDTO, error) {
	if s.listProductsFn != nil {
		return s.listProductsFn(ctx, input)
	}
	return nil, nil
}

func (s *testCatalogService) ListCategories(ctx context.Context) (*catalog.CategoryListDTO, error) {
	if s.listCategoriesFn != nil {
		return s.listCategoriesFn(ctx)
	}
	return nil, nil
}

func (s *testCatalogService) CreateCategory(ctx context.Context, name string, displayOrder int) (*catalog.CategoryDTO, error) {
	if s.createCategoryFn != nil {
		return s.createCategoryFn(ctx, name, displayOrder)
	}
	return nil, nil
}

func (s *testCatalogService) ListDistinct(ctx context.Context, field string) ([]string, error) {
	if s.listDistinctFn != nil {
		return s.listDistinctFn(ctx, field)
	}
	return nil, nil
}

func (s *testCatalogService) SetAvailability(ctx context.Context, id int64, available bool) error {
	if s.setAvailabilityFn != nil {
		return s.setAvailabilityFn(ctx, id, available)
	}
	return nil
}

func (s *testCatalogService) SetNew(ctx context.Context, id int64, isNew bool) error {
	if s.setNewFn != nil {
		return s.setNewFn(ctx, id, isNew)
	}
	return nil
}

func (s *testCatalogService) SetDisplayOrder(ctx context.Context, id int64, order int) error {
	if s.setDisplayOrderFn != nil {
		return s.setDisplayOrderFn(ctx, id, order)
	}
	return nil
}

func (s *testCatalogService) AdminStats(ctx context.Context) (*catalog.AdminStatsDTO, error) {
	if s.adminStatsFn != nil {
		return s.adminStatsFn(ctx)
	}
	return nil, nil
}

func withRouteID(req *http.Request, id string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestListProductsForwardsFilters(t *testing.T) {
	var got catalog.ListProductsInput
	svc := &testCatalogService{
		listProductsFn: func(_ context.Context, input catalog.ListProductsInput) ([]catalog.ProductDTO, error) {
			got = input
			return []catalog.ProductDTO{{ID: 1, ModelName: "AR-100"}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/products?category=audio&search=AR&is_new=true&sort=price_asc", nil)
	resp := httptest.NewRecorder()
	ListProducts(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if got.CategorySlug != "audio" || got.Search != "AR" || got.Sort != "price_asc" {
		t.Fatalf("unexpected input %+v", got)
	}
	if got.IsNew == nil || !*got.IsNew {
		t.Fatal("is_new filter lost")
	}
}

func TestListProductsRejectsBadBool(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/products?is_new=maybe", nil)
	resp := httptest.NewRecorder()
	ListProducts(&testCatalogService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestGetProductParsesID(t *testing.T) {
	svc := &testCatalogService{
		getProductFn: func(_ context.Context, id int64) (*catalog.ProductDTO, error) {
			if id != 42 {
				t.Fatalf("unexpected id %d", id)
			}
			return &catalog.ProductDTO{ID: 42, ModelName: "AR-100"}, nil
		},
	}

	req := withRouteID(httptest.NewRequest(http.MethodGet, "/api/products/42", nil), "42")
	resp := httptest.NewRecorder()
	GetProduct(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestGetProductRejectsBadID(t *testing.T) {
	req := withRouteID(httptest.NewRequest(http.MethodGet, "/api/products/abc", nil), "abc")
	resp := httptest.NewRecorder()
	GetProduct(&testCatalogService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestCreateProductSuccess(t *testing.T) {
	var got catalog.CreateProductInput
	svc := &testCatalogService{
		createProductFn: func(_ context.Context, input catalog.CreateProductInput) (*catalog.ProductDTO, error) {
			got = input
			return &catalog.ProductDTO{ID: 1, ModelName: input.ModelName}, nil
		},
	}

	body := `{"model_name":"AR-100","brand":"ACME","b2b_price":22000,"is_new":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	CreateProduct(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if got.ModelName != "AR-100" || got.B2BPrice != 22000 || !got.IsNew {
		t.Fatalf("unexpected input %+v", got)
	}
}

func TestCreateProductRequiresModelName(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{"brand":"ACME"}`))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	CreateProduct(&testCatalogService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestUpdateProductForwardsPartialFields(t *testing.T) {
	var got catalog.UpdateProductInput
	svc := &testCatalogService{
		updateProductFn: func(_ context.Context, id int64, input catalog.UpdateProductInput) (*catalog.ProductDTO, error) {
			if id != 9 {
				t.Fatalf("unexpected id %d", id)
			}
			got = input
			return &catalog.ProductDTO{ID: 9}, nil
		},
	}

	body := `{"b2b_price":25000,"is_available":false}`
	req := withRouteID(httptest.NewRequest(http.MethodPut, "/api/products/9", strings.NewReader(body)), "9")
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	UpdateProduct(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if got.B2BPrice == nil || *got.B2BPrice != 25000 {
		t.Fatal("b2b_price not forwarded")
	}
	if got.IsAvailable == nil || *got.IsAvailable {
		t.Fatal("is_available not forwarded")
	}
	if got.Brand != nil {
		t.Fatal("untouched fields must stay nil")
	}
}

func TestDeleteRecentProductsDefaultsWindow(t *testing.T) {
	svc := &testCatalogService{
		deleteRecentFn: func(_ context.Context, hours int) (int64, error) {
			if hours != 24 {
				t.Fatalf("unexpected window %d", hours)
			}
			return 3, nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/products/recent", nil)
	resp := httptest.NewRecorder()
	DeleteRecentProducts(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data map[string]int64 `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data["deleted"] != 3 {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestDeleteProductRange(t *testing.T) {
	svc := &testCatalogService{
		deleteRangeFn: func(_ context.Context, fromID, toID int64) (int64, error) {
			if fromID != 100 || toID != 200 {
				t.Fatalf("unexpected range %d-%d", fromID, toID)
			}
			return 101, nil
		},
	}

	body := `{"from_id":100,"to_id":200}`
	req := httptest.NewRequest(http.MethodDelete, "/api/products/range", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	DeleteProductRange(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
}

func TestListDistinctField(t *testing.T) {
	svc := &testCatalogService{
		listDistinctFn: func(_ context.Context, field string) ([]string, error) {
			if field != "brand" {
				t.Fatalf("unexpected field %s", field)
			}
			return []string{"ACME", "Unbranded"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/products/brands", nil)
	resp := httptest.NewRecorder()
	ListDistinctField(svc, "brand", testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data []string `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(envelope.Data) != 2 || envelope.Data[0] != "ACME" {
		t.Fatalf("unexpected payload %v", envelope.Data)
	}
}

func TestSetProductAvailability(t *testing.T) {
	var gotID int64
	var gotAvailable bool
	svc := &testCatalogService{
		setAvailabilityFn: func(_ context.Context, id int64, available bool) error {
			gotID, gotAvailable = id, available
			return nil
		},
	}

	body := `{"is_available":false}`
	req := withRouteID(httptest.NewRequest(http.MethodPatch, "/api/products/5/availability", strings.NewReader(body)), "5")
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	SetProductAvailability(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if gotID != 5 || gotAvailable {
		t.Fatalf("unexpected call id=%d available=%v", gotID, gotAvailable)
	}
}
