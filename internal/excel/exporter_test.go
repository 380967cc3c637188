package excel

import (
	"context"
	"strings"
	"testing"

	"github.com/arontec/scm-backend/pkg/db/models"
)

func TestExportWorkbookShape(t *testing.T) {
	svc, conn := newTestService(t)
	category := models.Category{Name: "생활가전", Slug: "living"}
	conn.Create(&category)
	conn.Create(&models.Product{
		ModelName:     "AR-100",
		ModelNo:       "A100",
		CategoryID:    &category.ID,
		Manufacturer:  "한성",
		Origin:        "KR",
		SupplyPrice:   10000,
		ConsumerPrice: 15000,
		StockQuantity: 5,
		IsTaxFree:     true,
	})

	wb, err := svc.Export(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows(exportSheetName)
	if err != nil {
		t.Fatalf("read exported sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one product, got %d rows", len(rows))
	}
	if len(rows[0]) != len(exportHeaders) {
		t.Fatalf("expected %d header columns, got %d", len(exportHeaders), len(rows[0]))
	}
	if rows[0][1] != "대표상품명" || rows[0][17] != "판매가" {
		t.Fatalf("header columns out of order: %v", rows[0][:3])
	}

	row := rows[1]
	if row[1] != "AR-100" || row[2] != "A100" || row[3] != "생활가전" {
		t.Fatalf("identity columns wrong: %v", row[1:4])
	}
	if row[15] != "면세" {
		t.Fatalf("expected tax-free marker, got %q", row[15])
	}
	// floor(10000 * 1.1)
	if row[17] != "11000" {
		t.Fatalf("expected marked-up sell price, got %q", row[17])
	}
	if row[19] != "5" {
		t.Fatalf("expected stock quantity, got %q", row[19])
	}
}

func TestExportRowDerivations(t *testing.T) {
	fee := int64(2500)
	p := &exportProduct{
		Product: models.Product{
			ModelName:             "AR-100",
			Brand:                 "브랜드만",
			SupplyPrice:           12345,
			ShippingFeeIndividual: &fee,
			ProductOptions:        "빨강, 파랑, ",
		},
	}

	row := exportRow(p)
	if row[3] != "기타" {
		t.Fatalf("uncategorized products fall back to 기타, got %v", row[3])
	}
	if row[14] != "브랜드만" {
		t.Fatalf("brand should fall back when manufacturer is empty, got %v", row[14])
	}
	// floor(12345 * 1.1) == floor(13579.5)
	if row[17] != int64(13579) {
		t.Fatalf("expected floored markup, got %v", row[17])
	}
	if row[19] != 999 {
		t.Fatalf("zero stock exports as 999, got %v", row[19])
	}
	if row[27] != "개별배송" || row[28] != int64(2500) {
		t.Fatalf("expected individual shipping with fee, got %v / %v", row[27], row[28])
	}
	if row[41] != "1차옵션" || row[43] != "색상" {
		t.Fatalf("option flags wrong: %v / %v", row[41], row[43])
	}
	if row[42] != "빨강|0|13579|999§파랑|0|13579|999" {
		t.Fatalf("option syntax wrong: %v", row[42])
	}
}

func TestShippingClass(t *testing.T) {
	if mode, _ := shippingClass(nil); mode != "기본" {
		t.Fatalf("unset fee should map to 기본, got %q", mode)
	}
	if mode, fee := shippingClass(feePtr(0)); mode != "무료배송" || fee != "" {
		t.Fatalf("zero fee should map to 무료배송, got %q / %v", mode, fee)
	}
	if mode, fee := shippingClass(feePtr(3000)); mode != "개별배송" || fee != int64(3000) {
		t.Fatalf("positive fee should map to 개별배송, got %q / %v", mode, fee)
	}
}

func TestDetailHTML(t *testing.T) {
	if got := detailHTML(""); got != "" {
		t.Fatalf("blank detail stays blank, got %q", got)
	}

	got := detailHTML(`<div class="wrap"><img src="https://cdn.example.com/a.jpg"/><p>x</p><img src='https://cdn.example.com/b.jpg'></div>`)
	want := `<div style="text-align: center;" align="center"><img src="https://cdn.example.com/a.jpg"><img src="https://cdn.example.com/b.jpg"></div>`
	if got != want {
		t.Fatalf("markup rewrap mismatch:\n got %s\nwant %s", got, want)
	}

	got = detailHTML("https://cdn.example.com/a.jpg,\nhttps://cdn.example.com/b.jpg")
	if got != want {
		t.Fatalf("url list rewrap mismatch:\n got %s\nwant %s", got, want)
	}

	got = detailHTML("<div>no images\nhere</div>")
	if strings.ContainsAny(got, "\r\n") {
		t.Fatalf("imageless markup must lose its newlines, got %q", got)
	}

	if got := detailHTML("제품 상세 설명"); got != "제품 상세 설명" {
		t.Fatalf("plain text passes through, got %q", got)
	}
}
