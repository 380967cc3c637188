package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	excelsvc "github.com/arontec/scm-backend/internal/excel"
)

type testExcelService struct {
	importFn       func(ctx context.Context, r io.Reader) (*excelsvc.ImportResult, error)
	swapFn         func(ctx context.Context) (int64, error)
	syncSupplyFn   func(ctx context.Context) (int64, error)
	rescaleFn      func(ctx context.Context) (int64, error)
	syncShippingFn func(ctx context.Context) (int64, error)
	fixAllFn       func(ctx context.Context) (*excelsvc.FixResult, error)
	exportFn       func(ctx context.Context) (*excelize.File, error)
}

func (s *testExcelService) Import(ctx context.Context, r io.Reader) (*excelsvc.ImportResult, error) {
	if s.importFn != nil {
		return s.importFn(ctx, r)
	}
	return nil, nil
}

func (s *testExcelService) SwapPrices(ctx context.Context) (int64, error) {
	if s.swapFn != nil {
		return s.swapFn(ctx)
	}
	return 0, nil
}

func (s *testExcelService) SyncSupplyPrices(ctx context.Context) (int64, error) {
	if s.syncSupplyFn != nil {
		return s.syncSupplyFn(ctx)
	}
	return 0, nil
}

func (s *testExcelService) RescaleShippingFees(ctx context.Context) (int64, error) {
	if s.rescaleFn != nil {
		return s.rescaleFn(ctx)
	}
	return 0, nil
}

func (s *testExcelService) SyncShippingFees(ctx context.Context) (int64, error) {
	if s.syncShippingFn != nil {
		return s.syncShippingFn(ctx)
	}
	return 0, nil
}

func (s *testExcelService) FixAll(ctx context.Context) (*excelsvc.FixResult, error) {
	if s.fixAllFn != nil {
		return s.fixAllFn(ctx)
	}
	return nil, nil
}

func (s *testExcelService) Export(ctx context.Context) (*excelize.File, error) {
	if s.exportFn != nil {
		return s.exportFn(ctx)
	}
	return nil, nil
}

func multipartUpload(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestImportProductsForwardsFile(t *testing.T) {
	payload := []byte("workbook-bytes")
	svc := &testExcelService{
		importFn: func(_ context.Context, r io.Reader) (*excelsvc.ImportResult, error) {
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("read upload: %v", err)
			}
			if !bytes.Equal(got, payload) {
				t.Fatalf("upload bytes mangled: %q", got)
			}
			return &excelsvc.ImportResult{Success: 2, Failed: 1, Errors: []string{"Row 4: Model Name is required"}}, nil
		},
	}

	body, contentType := multipartUpload(t, "file", "products.xlsx", payload)
	req := httptest.NewRequest(http.MethodPost, "/api/excel/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp := httptest.NewRecorder()
	ImportProducts(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data excelsvc.ImportResult `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.Success != 2 || envelope.Data.Failed != 1 {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestImportProductsRequiresFileField(t *testing.T) {
	body, contentType := multipartUpload(t, "wrong", "products.xlsx", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/excel/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp := httptest.NewRecorder()
	ImportProducts(&testExcelService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestSwapPricesReportsAffected(t *testing.T) {
	svc := &testExcelService{
		swapFn: func(context.Context) (int64, error) { return 12, nil },
	}

	resp := httptest.NewRecorder()
	SwapPrices(svc, testLogger())(resp, httptest.NewRequest(http.MethodPost, "/api/excel/swap-prices", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data map[string]int64 `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data["affected"] != 12 {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestFixDataReportsPerRuleCounts(t *testing.T) {
	svc := &testExcelService{
		fixAllFn: func(context.Context) (*excelsvc.FixResult, error) {
			return &excelsvc.FixResult{Swapped: 1, SyncedSupply: 2, FixedShipping: 3, SyncedShipping: 4}, nil
		},
	}

	resp := httptest.NewRecorder()
	FixData(svc, testLogger())(resp, httptest.NewRequest(http.MethodPost, "/api/excel/fix-data", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"fixedShipping":3`) {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}

func TestExportProductsStreamsWorkbook(t *testing.T) {
	svc := &testExcelService{
		exportFn: func(context.Context) (*excelize.File, error) {
			f := excelize.NewFile()
			if err := f.SetCellValue("Sheet1", "A1", "ok"); err != nil {
				t.Fatalf("seed workbook: %v", err)
			}
			return f, nil
		},
	}

	resp := httptest.NewRecorder()
	ExportProducts(svc, testLogger())(resp, httptest.NewRequest(http.MethodGet, "/api/excel/export", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Type"); got != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("unexpected content type %s", got)
	}
	if disposition := resp.Header().Get("Content-Disposition"); !strings.Contains(disposition, "products_") {
		t.Fatalf("unexpected disposition %s", disposition)
	}
	if resp.Body.Len() == 0 {
		t.Fatal("empty workbook body")
	}
}
