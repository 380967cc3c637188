package excel

import (
	"strconv"
	"strings"
)

// Logical import fields. Column positions are not fixed; the header row is
// resolved once against the alias table below.
type field int

const (
	fieldBrand field = iota
	fieldModelName
	fieldModelNo
	fieldCategory
	fieldDescription
	fieldB2BPrice
	fieldConsumerPrice
	fieldSupplyPrice
	fieldStock
	fieldImageURL
	fieldDetailURL
	fieldManufacturer
	fieldOrigin
	fieldProductSpec
	fieldProductOptions
	fieldQuantityPerCarton
	fieldShippingFee
	fieldShippingFeeIndividual
	fieldShippingFeeCarton
	fieldIsTaxFree
	fieldRemarks
)

// headerAliases maps each logical field to the accepted header spellings,
// English first then Korean, in priority order. Note the deliberate crossover
// on the price columns: partner sheets label the B2B price "소비자가" and the
// consumer price "공급가", and imports must follow the sheets.
var headerAliases = map[field][]string{
	fieldBrand:                 {"Brand", "브랜드"},
	fieldModelName:             {"ModelName", "모델명"},
	fieldModelNo:               {"ModelNo", "모델번호"},
	fieldCategory:              {"Category", "카테고리"},
	fieldDescription:           {"Description", "상세설명"},
	fieldB2BPrice:              {"B2BPrice", "소비자가", "B2B가"},
	fieldConsumerPrice:         {"ConsumerPrice", "공급가"},
	fieldSupplyPrice:           {"SupplyPrice", "매입가"},
	fieldStock:                 {"Stock", "재고"},
	fieldImageURL:              {"ImageURL", "이미지URL"},
	fieldDetailURL:             {"DetailURL", "상세페이지URL"},
	fieldManufacturer:          {"Manufacturer", "제조사"},
	fieldOrigin:                {"Origin", "원산지"},
	fieldProductSpec:           {"ProductSpec", "제품규격"},
	fieldProductOptions:        {"ProductOptions", "옵션"},
	fieldQuantityPerCarton:     {"QuantityPerCarton", "카톤수량"},
	fieldShippingFee:           {"ShippingFee", "배송비"},
	fieldShippingFeeIndividual: {"ShippingFeeIndividual", "개별배송비"},
	fieldShippingFeeCarton:     {"ShippingFeeCarton", "카톤배송비"},
	fieldIsTaxFree:             {"IsTaxFree", "면세여부"},
	fieldRemarks:               {"Remark", "remark", "비고"},
}

// resolveHeader maps logical fields to column indexes for one sheet. Fields
// whose aliases do not appear in the header row are simply absent.
func resolveHeader(header []string) map[field]int {
	byName := make(map[string]int, len(header))
	for i, cell := range header {
		name := sanitize(cell)
		if name == "" {
			continue
		}
		if _, ok := byName[name]; !ok {
			byName[name] = i
		}
	}
	out := make(map[field]int)
	for f, aliases := range headerAliases {
		for _, alias := range aliases {
			if idx, ok := byName[alias]; ok {
				out[f] = idx
				break
			}
		}
	}
	return out
}

// sanitize trims whitespace and strips stray double quotes that survive
// csv-to-xlsx round trips.
func sanitize(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, `"`, ""))
}

// parsePrice reads a won amount, tolerating thousands separators and a
// trailing 원. Unparseable values come back as 0.
func parsePrice(s string) int64 {
	cleaned := strings.NewReplacer(",", "", "원", "").Replace(sanitize(s))
	if cleaned == "" {
		return 0
	}
	// Partner sheets occasionally carry decimals from formula cells.
	if i := strings.IndexByte(cleaned, '.'); i >= 0 {
		cleaned = cleaned[:i]
	}
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// parseTaxFree accepts the boolean literal TRUE or the Korean 면세 marker.
func parseTaxFree(s string) bool {
	v := sanitize(s)
	return strings.EqualFold(v, "TRUE") || v == "면세"
}
