package models

import "testing"

func TestNewPageInfo(t *testing.T) {
	tests := []struct {
		name        string
		n           int
		total       int64
		page, limit int
		wantPages   int
	}{
		{"exact pages", 10, 30, 1, 10, 3},
		{"partial last page", 10, 31, 1, 10, 4},
		{"single page", 3, 3, 1, 10, 1},
		{"empty", 0, 0, 1, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPageInfo(tt.n, tt.total, tt.page, tt.limit)
			if got.Pages != tt.wantPages {
				t.Errorf("Pages = %d, want %d", got.Pages, tt.wantPages)
			}
			if got.Results != tt.n || got.Total != tt.total || got.Page != tt.page {
				t.Errorf("PageInfo = %+v", got)
			}
		})
	}
}
