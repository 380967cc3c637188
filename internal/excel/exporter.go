package excel

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/arontec/scm-backend/pkg/db/models"
	pkgerrors "github.com/arontec/scm-backend/pkg/errors"
)

// exportSheetName matches the marketplace's bulk-upload template.
const exportSheetName = "배송상품등록"

// exportHeaders is the marketplace template column order. The template is
// fixed; do not reorder.
var exportHeaders = []string{
	"상품코드(신규등록시 생략)",
	"대표상품명",
	"부가상품명",
	"1차 분류",
	"2차 분류",
	"3차 분류",
	"타임세일설정(적용, 미적용)",
	"타임세일 시작일",
	"타임세일 시작시간",
	"타임세일 종료일",
	"타임세일 종료시간",
	"판매설정(상시판매, 기간판매)",
	"판매시작일(기간판매)",
	"판매종료일(기간판매)",
	"브랜드",
	"과세여부(과세, 면세)",
	"정상가",
	"판매가",
	"네이버페이 사용유무(사용, 미사용)",
	"재고량",
	"제조사",
	"원산지",
	"1회 최소 구매개수",
	"구매 단위",
	"1회 최대 구매개수",
	"중복구매 가능여부(가능, 불가능)",
	"배송정보",
	"배송처리(기본, 상품별배송, 개별배송, 무료배송)",
	"개별배송 - 배송비",
	"상품별배송 - 배송비(기본배송비)",
	"상품별배송 - 배송비(무료배송비)",
	"관련상품 적용방식(사용안함, 자동지정, 수동지정)",
	"관련상품 상품코드(수동지정시 상품코드를|로 구분하여 기입)",
	"상품설명(엔터제외)",
	"목록이미지",
	"목록오버이미지",
	"상세이미지1",
	"상세이미지2",
	"상세이미지3",
	"상세이미지4",
	"상세이미지5",
	"옵션사용여부(사용안함,1차옵션,2차옵션,3차옵션)",
	"옵션(옵션명|공급가|판매가|재고§옵션명2|공급가2|판매가2|재고2)",
	"1차 옵션 타이틀",
	"2차 옵션 타이틀",
	"3차 옵션 타이틀",
}

// sellPriceMarkup is the marketplace margin applied over the purchase price.
var sellPriceMarkup = decimal.New(11, -1)

type exportProduct struct {
	models.Product
	CategoryName string `gorm:"column:category_name"`
}

func (s *service) Export(ctx context.Context) (*excelize.File, error) {
	var products []exportProduct
	err := s.db.DB().WithContext(ctx).
		Table("products").
		Select("products.*, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Order("products.id ASC").
		Scan(&products).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load products for export")
	}

	wb := excelize.NewFile()
	if err := wb.SetSheetName(wb.GetSheetName(0), exportSheetName); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "name export sheet")
	}
	if err := wb.SetSheetRow(exportSheetName, "A1", &exportHeaders); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write export header")
	}
	for i := range products {
		row := exportRow(&products[i])
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "address export row")
		}
		if err := wb.SetSheetRow(exportSheetName, cell, &row); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write export row")
		}
	}
	return wb, nil
}

func exportRow(p *exportProduct) []any {
	category := p.CategoryName
	if category == "" {
		category = "기타"
	}
	brand := p.Manufacturer
	if brand == "" {
		brand = p.Brand
	}
	taxLabel := "과세"
	if p.IsTaxFree {
		taxLabel = "면세"
	}
	stock := p.StockQuantity
	if stock == 0 {
		stock = 999
	}
	var maxBuy any = ""
	if p.QuantityPerCarton > 0 {
		maxBuy = p.QuantityPerCarton
	}

	sellPrice := decimal.NewFromInt(p.SupplyPrice).Mul(sellPriceMarkup).Floor().IntPart()
	shippingType, individualFee := shippingClass(p.ShippingFeeIndividual)

	optionFlag := "사용안함"
	optionString := ""
	optionTitle := ""
	if opts := splitOptions(p.ProductOptions); len(opts) > 0 {
		segments := make([]string, 0, len(opts))
		for _, opt := range opts {
			segments = append(segments, fmt.Sprintf("%s|0|%d|%d", opt, sellPrice, stock))
		}
		optionFlag = "1차옵션"
		optionString = strings.Join(segments, "§")
		optionTitle = "색상"
	}

	return []any{
		"",           // 상품코드
		p.ModelName,  // 대표상품명
		p.ModelNo,    // 부가상품명
		category,     // 1차 분류
		"",           // 2차 분류
		"",           // 3차 분류
		"미적용",        // 타임세일설정
		"", "", "", "", // 타임세일 일시
		"상시판매", // 판매설정
		"", "", // 기간판매 일자
		brand,
		taxLabel,
		p.ConsumerPrice, // 정상가
		sellPrice,       // 판매가
		"사용",            // 네이버페이
		stock,
		p.Manufacturer,
		p.Origin,
		1, // 1회 최소 구매개수
		1, // 구매 단위
		maxBuy,
		"가능", // 중복구매
		"",   // 배송정보
		shippingType,
		individualFee,
		"", "", // 상품별배송 배송비
		"자동지정", // 관련상품 적용방식
		"",     // 관련상품 상품코드
		detailHTML(p.DetailURL),
		p.ImageURL, // 목록이미지
		"",         // 목록오버이미지
		"", "", "", "", "", // 상세이미지1-5
		optionFlag,
		optionString,
		optionTitle,
		"", "", // 2차/3차 옵션 타이틀
	}
}

// shippingClass maps the per-item fee to the template's shipping modes: a
// positive fee means paid individual shipping, an explicit zero means free,
// and an unset fee falls back to the site default.
func shippingClass(fee *int64) (string, any) {
	switch {
	case fee != nil && *fee > 0:
		return "개별배송", *fee
	case fee != nil:
		return "무료배송", ""
	default:
		return "기본", ""
	}
}

func splitOptions(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

var (
	imgSrcPattern   = regexp.MustCompile(`src=["']([^"']+)["']`)
	newlinePattern  = regexp.MustCompile(`\r\n|\r|\n`)
	urlSplitPattern = regexp.MustCompile(`[,\r\n]+`)
)

// detailHTML normalizes whatever lives in detail_url into marketplace-safe
// single-line HTML: image sources are extracted from pasted markup, bare URL
// lists become img tags, and everything ends up centered.
func detailHTML(raw string) string {
	val := strings.TrimSpace(raw)
	if val == "" {
		return ""
	}
	if strings.Contains(val, "<img") || strings.Contains(val, "<div") {
		matches := imgSrcPattern.FindAllStringSubmatch(val, -1)
		if len(matches) == 0 {
			// Markup without images: the template forbids newlines.
			return newlinePattern.ReplaceAllString(val, "")
		}
		urls := make([]string, 0, len(matches))
		for _, m := range matches {
			urls = append(urls, m[1])
		}
		return wrapCentered(urls)
	}
	if strings.HasPrefix(val, "http") {
		var urls []string
		for _, u := range urlSplitPattern.Split(val, -1) {
			if v := strings.TrimSpace(u); v != "" {
				urls = append(urls, v)
			}
		}
		return wrapCentered(urls)
	}
	return val
}

func wrapCentered(urls []string) string {
	var b strings.Builder
	b.WriteString(`<div style="text-align: center;" align="center">`)
	for _, u := range urls {
		b.WriteString(`<img src="`)
		b.WriteString(strings.TrimSpace(u))
		b.WriteString(`">`)
	}
	b.WriteString(`</div>`)
	return b.String()
}
