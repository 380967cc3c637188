package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/arontec/scm-backend/api/middleware"
	cartsvc "github.com/arontec/scm-backend/internal/cart"
	"github.com/arontec/scm-backend/pkg/session"
)

type testCartService struct {
	addLineFn   func(ctx context.Context, userID int64, input cartsvc.AddLineInput) (*cartsvc.LineDTO, error)
	listLinesFn func(ctx context.Context, userID int64) ([]cartsvc.LineDTO, error)
}

func (s *testCartService) AddLine(ctx context.Context, userID int64, input cartsvc.AddLineInput) (*cartsvc.LineDTO, error) {
	if s.addLineFn != nil {
		return s.addLineFn(ctx, userID, input)
	}
	return nil, nil
}

func (s *testCartService) ListLines(ctx context.Context, userID int64) ([]cartsvc.LineDTO, error) {
	if s.listLinesFn != nil {
		return s.listLinesFn(ctx, userID)
	}
	return nil, nil
}

func approvedMember(req *http.Request, userID int64) *http.Request {
	return req.WithContext(middleware.WithIdentity(req.Context(), &session.Identity{UserID: userID, IsApproved: true}))
}

func TestAddCartLineSuccess(t *testing.T) {
	var gotUser int64
	var gotInput cartsvc.AddLineInput
	svc := &testCartService{
		addLineFn: func(_ context.Context, userID int64, input cartsvc.AddLineInput) (*cartsvc.LineDTO, error) {
			gotUser, gotInput = userID, input
			return &cartsvc.LineDTO{ID: 1, ProductID: input.ProductID, Quantity: input.Quantity}, nil
		},
	}

	body := `{"product_id":42,"quantity":3,"option_label":"색상: 빨강"}`
	req := approvedMember(httptest.NewRequest(http.MethodPost, "/api/cart", strings.NewReader(body)), 7)
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	AddCartLine(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if gotUser != 7 || gotInput.ProductID != 42 || gotInput.Quantity != 3 {
		t.Fatalf("unexpected call user=%d input=%+v", gotUser, gotInput)
	}
	if gotInput.OptionLabel != "색상: 빨강" {
		t.Fatalf("unexpected option label %q", gotInput.OptionLabel)
	}
}

func TestAddCartLineRejectsZeroQuantity(t *testing.T) {
	body := `{"product_id":42,"quantity":0}`
	req := approvedMember(httptest.NewRequest(http.MethodPost, "/api/cart", strings.NewReader(body)), 7)
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	AddCartLine(&testCartService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestAddCartLineMissingIdentity(t *testing.T) {
	body := `{"product_id":42,"quantity":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	AddCartLine(&testCartService{}, testLogger())(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestListCartLines(t *testing.T) {
	svc := &testCartService{
		listLinesFn: func(_ context.Context, userID int64) ([]cartsvc.LineDTO, error) {
			if userID != 7 {
				t.Fatalf("unexpected user %d", userID)
			}
			return []cartsvc.LineDTO{{ID: 1, ModelName: "AR-100"}}, nil
		},
	}

	req := approvedMember(httptest.NewRequest(http.MethodGet, "/api/cart", nil), 7)
	resp := httptest.NewRecorder()
	ListCartLines(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data []cartsvc.LineDTO `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].ModelName != "AR-100" {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}
