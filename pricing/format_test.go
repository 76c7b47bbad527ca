package pricing

import "testing"

func TestFormatPrice(t *testing.T) {
	cases := map[float64]string{
		2.5:      "2,500,000 VNĐ",
		0:        "0 VNĐ",
		0.004:    "0 VNĐ",
		1.234567: "1,230,000 VNĐ",
		3.999:    "4,000,000 VNĐ",
		1234.56:  "1,234,560,000 VNĐ",
		0.125:    "120,000 VNĐ",
		1.005:    "1,000,000 VNĐ",
		0.285:    "280,000 VNĐ",
		0.375:    "380,000 VNĐ",
	}
	for raw, want := range cases {
		if got := FormatPrice(raw); got != want {
			t.Errorf("FormatPrice(%v) = %q, want %q", raw, got, want)
		}
	}
}

func TestToPrice(t *testing.T) {
	if got := ToPrice(2.5).IntPart(); got != 2_500_000 {
		t.Fatalf("expected 2500000, got %d", got)
	}
	// 2.345*100 is 234.50000000000003 in float64, just above the half
	if got := ToPrice(2.345).IntPart(); got != 2_350_000 {
		t.Fatalf("expected 2350000, got %d", got)
	}

	halves := map[float64]int64{
		0.125: 120_000,
		0.135: 140_000,
		1.005: 1_000_000,
		0.285: 280_000,
	}
	for raw, want := range halves {
		if got := ToPrice(raw).IntPart(); got != want {
			t.Errorf("ToPrice(%v) = %d, want %d", raw, got, want)
		}
	}
}
