package excel

import "testing"

func TestResolveHeaderAliases(t *testing.T) {
	header := []string{` "브랜드" `, "ModelName", "모델번호", "소비자가", "공급가", "ignored"}
	cols := resolveHeader(header)

	want := map[field]int{
		fieldBrand:         0,
		fieldModelName:     1,
		fieldModelNo:       2,
		fieldB2BPrice:      3,
		fieldConsumerPrice: 4,
	}
	for f, idx := range want {
		if got, ok := cols[f]; !ok || got != idx {
			t.Fatalf("field %d resolved to %d (ok=%v), want %d", f, got, ok, idx)
		}
	}
	if _, ok := cols[fieldSupplyPrice]; ok {
		t.Fatal("absent columns must not resolve")
	}
}

func TestResolveHeaderPrefersFirstOccurrence(t *testing.T) {
	cols := resolveHeader([]string{"모델명", "ModelName"})
	if cols[fieldModelName] != 0 {
		t.Fatalf("expected first matching column, got %d", cols[fieldModelName])
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"12,000원", 12000},
		{` "3,500" `, 3500},
		{"12.5", 12},
		{"", 0},
		{"미정", 0},
	}
	for _, tc := range cases {
		if got := parsePrice(tc.in); got != tc.want {
			t.Fatalf("parsePrice(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseTaxFree(t *testing.T) {
	for _, v := range []string{"TRUE", "true", "면세"} {
		if !parseTaxFree(v) {
			t.Fatalf("expected %q to mean tax free", v)
		}
	}
	for _, v := range []string{"", "FALSE", "과세"} {
		if parseTaxFree(v) {
			t.Fatalf("expected %q to mean taxable", v)
		}
	}
}
