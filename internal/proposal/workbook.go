package proposal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/arontec/scm-backend/pkg/db/models"
	pkgerrors "github.com/arontec/scm-backend/pkg/errors"
)

const sheetName = "제안서"

// imageLoadFailed is written into the image cell when the remote fetch or
// embed fails; the rest of the document still renders.
const imageLoadFailed = "이미지 로드 실패"

// Row 1 is the banner, row 2 the table header, data starts at row 3.
const firstDataRow = 3

type column struct {
	letter string
	header string
	width  float64
}

var columns = []column{
	{"A", "순번", 5},
	{"B", "품절여부", 10},
	{"C", "고유번호", 10},
	{"D", "상품명", 40},
	{"E", "상품이미지", 20},
	{"F", "모델명", 15},
	{"G", "옵션", 10},
	{"H", "설명", 40},
	{"I", "제조원", 15},
	{"J", "원산지", 10},
	{"K", "카톤입수량", 10},
	{"L", "기본수량", 10},
	{"M", "소비자가", 12},
	{"N", "공급가(부가세포함)", 15},
	{"O", "개별배송비(부가세포함)", 15},
	{"P", "대표이미지", 30},
	{"Q", "상세이미지", 30},
	{"R", "비고", 20},
}

func (s *service) render(ctx context.Context, companyName string, now time.Time, products []models.Product) (*excelize.File, error) {
	wb := excelize.NewFile()
	if err := wb.SetSheetName(wb.GetSheetName(0), sheetName); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "name proposal sheet")
	}
	for _, col := range columns {
		if err := wb.SetColWidth(sheetName, col.letter, col.letter, col.width); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "size proposal columns")
		}
	}

	if err := s.renderBanner(wb, companyName, now); err != nil {
		return nil, err
	}
	if err := s.renderHeader(wb); err != nil {
		return nil, err
	}

	dataStyle, err := wb.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center", Horizontal: "center", WrapText: true},
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build row style")
	}

	for i := range products {
		if err := s.renderProduct(ctx, wb, firstDataRow+i, i+1, &products[i], dataStyle); err != nil {
			return nil, err
		}
	}
	return wb, nil
}

func (s *service) renderBanner(wb *excelize.File, companyName string, now time.Time) error {
	for _, m := range [][2]string{{"A1", "D1"}, {"E1", "L1"}, {"M1", "P1"}} {
		if err := wb.MergeCell(sheetName, m[0], m[1]); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "merge banner cells")
		}
	}

	titleStyle, err := wb.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Arial", Size: 20, Bold: true, Color: "003366"},
		Alignment: &excelize.Alignment{Vertical: "center", Horizontal: "left"},
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build title style")
	}
	warningStyle, err := wb.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Malgun Gothic", Size: 12, Bold: true, Color: "FF0000"},
		Alignment: &excelize.Alignment{Vertical: "center", Horizontal: "left"},
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build warning style")
	}
	infoStyle, err := wb.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Malgun Gothic", Size: 10, Bold: true},
		Alignment: &excelize.Alignment{Vertical: "center", Horizontal: "right"},
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build file-info style")
	}

	wb.SetCellValue(sheetName, "A1", "ARONTEC KOREA")
	wb.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	wb.SetCellValue(sheetName, "E1", "■ 당사가 운영하는 모든 상품은 폐쇄몰을 제외한 온라인 판매를 금하며, 판매 시 상품 공급이 중단됩니다.")
	wb.SetCellStyle(sheetName, "E1", "E1", warningStyle)
	wb.SetCellValue(sheetName, "M1", fileInfoLabel(companyName, now))
	wb.SetCellStyle(sheetName, "M1", "M1", infoStyle)
	return wb.SetRowHeight(sheetName, 1, 30)
}

func (s *service) renderHeader(wb *excelize.File) error {
	headerStyle, err := wb.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "000000"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"CCE5FF"}},
		Alignment: &excelize.Alignment{Vertical: "center", Horizontal: "center"},
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build header style")
	}
	for _, col := range columns {
		cell := col.letter + "2"
		if err := wb.SetCellValue(sheetName, cell, col.header); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write header cell")
		}
	}
	return wb.SetCellStyle(sheetName, "A2", "R2", headerStyle)
}

func (s *service) renderProduct(ctx context.Context, wb *excelize.File, rowNum, seq int, p *models.Product, dataStyle int) error {
	displayName := p.ModelName
	if p.Brand != "" {
		displayName = fmt.Sprintf("[%s] %s", p.Brand, p.ModelName)
	}
	status := ""
	if !p.IsAvailable {
		status = "품절"
	}
	var cartonQty any = ""
	if p.QuantityPerCarton > 0 {
		cartonQty = p.QuantityPerCarton
	}
	var consumerPrice any = ""
	if p.ConsumerPrice > 0 {
		consumerPrice = p.ConsumerPrice
	}
	var supplyPrice any = ""
	if p.B2BPrice > 0 {
		supplyPrice = p.B2BPrice
	}

	values := []any{
		seq,
		status,
		p.ID,
		displayName,
		"", // image anchor cell
		p.ModelName,
		"", // option
		p.Description,
		p.Manufacturer,
		p.Origin,
		cartonQty,
		1, // default quantity
		consumerPrice,
		supplyPrice,
		p.ShippingFee,
		p.ImageURL,
		p.DetailURL,
		"", // remarks
	}
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "address proposal row")
	}
	if err := wb.SetSheetRow(sheetName, cell, &values); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write proposal row")
	}
	if err := wb.SetRowHeight(sheetName, rowNum, 100); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "size proposal row")
	}
	last := fmt.Sprintf("R%d", rowNum)
	if err := wb.SetCellStyle(sheetName, cell, last, dataStyle); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "style proposal row")
	}

	if p.ImageURL != "" {
		s.embedImage(ctx, wb, rowNum, p)
	}
	return nil
}

// embedImage anchors the product image in column E. Failures downgrade to a
// text marker so one dead image URL never aborts the document.
func (s *service) embedImage(ctx context.Context, wb *excelize.File, rowNum int, p *models.Product) {
	imageCell := fmt.Sprintf("E%d", rowNum)

	result, err := s.fetcher.Fetch(ctx, p.ImageURL)
	if err != nil {
		wb.SetCellValue(sheetName, imageCell, imageLoadFailed)
		return
	}

	err = wb.AddPictureFromBytes(sheetName, imageCell, &excelize.Picture{
		Extension: imageExtension(result.ContentType, p.ImageURL),
		File:      result.Body,
		Format:    &excelize.GraphicOptions{Positioning: "oneCell", AutoFit: true},
	})
	if err != nil {
		wb.SetCellValue(sheetName, imageCell, imageLoadFailed)
	}
}

func imageExtension(contentType, rawURL string) string {
	switch {
	case strings.Contains(contentType, "png"):
		return ".png"
	case strings.Contains(contentType, "gif"):
		return ".gif"
	case contentType != "" && contentType != "application/octet-stream":
		return ".jpeg"
	}
	lower := strings.ToLower(rawURL)
	switch {
	case strings.Contains(lower, ".png"):
		return ".png"
	case strings.Contains(lower, ".gif"):
		return ".gif"
	}
	return ".jpeg"
}

// fileInfoLabel renders the banner's file stamp in the Korean date format the
// sales team expects.
func fileInfoLabel(companyName string, now time.Time) string {
	meridiem := "오전"
	hour := now.Hour()
	if hour >= 12 {
		meridiem = "오후"
	}
	clockHour := hour % 12
	if clockHour == 0 {
		clockHour = 12
	}
	return fmt.Sprintf("(%s)_제안_%d년%d월%d일_%s%d:%02d",
		companyName, now.Year(), int(now.Month()), now.Day(), meridiem, clockHour, now.Minute())
}
