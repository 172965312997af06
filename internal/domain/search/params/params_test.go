package params

import "testing"

func intPtr(v int) *int { return &v }

func TestOffset(t *testing.T) {
	tests := []struct {
		page, size int
		want       int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{3, 7, 14},
		{10, 1, 9},
		{0, 5, 0},  // page below 1 falls back to the first page
		{2, 0, 10}, // size below 1 falls back to DefaultSize
	}
	for _, tt := range tests {
		p := Params{Page: tt.page, Size: tt.size}
		if got := p.Offset(); got != tt.want {
			t.Errorf("Offset(page=%d,size=%d) = %d, want %d", tt.page, tt.size, got, tt.want)
		}
	}
}

func TestOffset_MatchesPageTimesSize(t *testing.T) {
	for page := 1; page <= 20; page++ {
		for size := 1; size <= 50; size++ {
			p := Params{Page: page, Size: size}
			if p.Offset() != (page-1)*size {
				t.Fatalf("page=%d size=%d: offset %d", page, size, p.Offset())
			}
			if p.Limit() != size {
				t.Fatalf("page=%d size=%d: limit %d", page, size, p.Limit())
			}
		}
	}
}

func TestHasPriceRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max *int
		want     bool
	}{
		{"none", nil, nil, false},
		{"min only", intPtr(100), nil, false},
		{"max only", nil, intPtr(300), false},
		{"both", intPtr(100), intPtr(300), true},
		{"inverted is still both", intPtr(300), intPtr(100), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Params{MinPrice: tt.min, MaxPrice: tt.max}
			if got := p.HasPriceRange(); got != tt.want {
				t.Errorf("HasPriceRange() = %v, want %v", got, tt.want)
			}
		})
	}
}
