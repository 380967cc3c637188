package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	quotesvc "github.com/arontec/scm-backend/internal/quotes"
	pkgerrors "github.com/arontec/scm-backend/pkg/errors"
)

type testQuoteService struct {
	submitFn      func(ctx context.Context, userID int64, input quotesvc.SubmitInput) (*quotesvc.QuoteDTO, error)
	listForUserFn func(ctx context.Context, userID int64) ([]quotesvc.QuoteDTO, error)
	getFn         func(ctx context.Context, id, requesterID int64, isAdmin bool) (*quotesvc.QuoteDTO, error)
	adminListFn   func(ctx context.Context) ([]quotesvc.AdminQuoteDTO, error)
	setStatusFn   func(ctx context.Context, id int64, input quotesvc.StatusInput) (*quotesvc.QuoteDTO, error)
}

func (s *testQuoteService) Submit(ctx context.Context, userID int64, input quotesvc.SubmitInput) (*quotesvc.QuoteDTO, error) {
	if s.submitFn != nil {
		return s.submitFn(ctx, userID, input)
	}
	return nil, nil
}

func (s *testQuoteService) ListForUser(ctx context.Context, userID int64) ([]quotesvc.QuoteDTO, error) {
	if s.listForUserFn != nil {
		return s.listForUserFn(ctx, userID)
	}
	return nil, nil
}

func (s *testQuoteService) Get(ctx context.Context, id, requesterID int64, isAdmin bool) (*quotesvc.QuoteDTO, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id, requesterID, isAdmin)
	}
	return nil, nil
}

func (s *testQuoteService) AdminList(ctx context.Context) ([]quotesvc.AdminQuoteDTO, error) {
	if s.adminListFn != nil {
		return s.adminListFn(ctx)
	}
	return nil, nil
}

func (s *testQuoteService) SetStatus(ctx context.Context, id int64, input quotesvc.StatusInput) (*quotesvc.QuoteDTO, error) {
	if s.setStatusFn != nil {
		return s.setStatusFn(ctx, id, input)
	}
	return nil, nil
}

func TestSubmitQuoteWithItems(t *testing.T) {
	var got quotesvc.SubmitInput
	svc := &testQuoteService{
		submitFn: func(_ context.Context, userID int64, input quotesvc.SubmitInput) (*quotesvc.QuoteDTO, error) {
			if userID != 7 {
				t.Fatalf("unexpected user %d", userID)
			}
			got = input
			return &quotesvc.QuoteDTO{ID: 1, Status: "pending"}, nil
		},
	}

	body := `{"items":[{"product_id":42,"quantity":5}],"delivery_date":"2026-09-15","notes":"urgent"}`
	req := approvedMember(httptest.NewRequest(http.MethodPost, "/api/quotes", strings.NewReader(body)), 7)
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	SubmitQuote(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if len(got.Items) != 1 || got.Items[0].ProductID != 42 || got.Items[0].Quantity != 5 {
		t.Fatalf("unexpected items %+v", got.Items)
	}
	if got.DeliveryDate == nil || got.DeliveryDate.Format("2006-01-02") != "2026-09-15" {
		t.Fatalf("unexpected delivery date %v", got.DeliveryDate)
	}
	if got.Notes != "urgent" {
		t.Fatalf("unexpected notes %q", got.Notes)
	}
}

func TestSubmitQuoteFromCartWhenNoItems(t *testing.T) {
	svc := &testQuoteService{
		submitFn: func(_ context.Context, _ int64, input quotesvc.SubmitInput) (*quotesvc.QuoteDTO, error) {
			if len(input.Items) != 0 {
				t.Fatalf("expected empty items, got %+v", input.Items)
			}
			return &quotesvc.QuoteDTO{ID: 2, Status: "pending"}, nil
		},
	}

	req := approvedMember(httptest.NewRequest(http.MethodPost, "/api/quotes", strings.NewReader(`{}`)), 7)
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	SubmitQuote(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
}

func TestSubmitQuoteRejectsBadDate(t *testing.T) {
	body := `{"delivery_date":"15-09-2026"}`
	req := approvedMember(httptest.NewRequest(http.MethodPost, "/api/quotes", strings.NewReader(body)), 7)
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	SubmitQuote(&testQuoteService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestGetQuoteForwardsOwnership(t *testing.T) {
	svc := &testQuoteService{
		getFn: func(_ context.Context, id, requesterID int64, isAdmin bool) (*quotesvc.QuoteDTO, error) {
			if id != 11 || requesterID != 7 || isAdmin {
				t.Fatalf("unexpected call id=%d requester=%d admin=%v", id, requesterID, isAdmin)
			}
			return &quotesvc.QuoteDTO{ID: 11, UserID: 7}, nil
		},
	}

	req := withRouteID(approvedMember(httptest.NewRequest(http.MethodGet, "/api/quotes/11", nil), 7), "11")
	resp := httptest.NewRecorder()
	GetQuote(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestGetQuoteForbiddenForOtherMember(t *testing.T) {
	svc := &testQuoteService{
		getFn: func(context.Context, int64, int64, bool) (*quotesvc.QuoteDTO, error) {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not your quote")
		},
	}

	req := withRouteID(approvedMember(httptest.NewRequest(http.MethodGet, "/api/quotes/11", nil), 8), "11")
	resp := httptest.NewRecorder()
	GetQuote(svc, testLogger())(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestSetQuoteStatusRejectsUnknownStatus(t *testing.T) {
	body := `{"status":"archived"}`
	req := withRouteID(httptest.NewRequest(http.MethodPut, "/api/admin/quotes/11", strings.NewReader(body)), "11")
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	SetQuoteStatus(&testQuoteService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestSetQuoteStatusApproves(t *testing.T) {
	var got quotesvc.StatusInput
	svc := &testQuoteService{
		setStatusFn: func(_ context.Context, id int64, input quotesvc.StatusInput) (*quotesvc.QuoteDTO, error) {
			if id != 11 {
				t.Fatalf("unexpected id %d", id)
			}
			got = input
			return &quotesvc.QuoteDTO{ID: 11, Status: input.Status}, nil
		},
	}

	body := `{"status":"approved","admin_notes":"looks good"}`
	req := withRouteID(httptest.NewRequest(http.MethodPut, "/api/admin/quotes/11", strings.NewReader(body)), "11")
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	SetQuoteStatus(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if got.Status != "approved" || got.AdminNotes == nil || *got.AdminNotes != "looks good" {
		t.Fatalf("unexpected input %+v", got)
	}
}
