package utils

import "testing"

func TestCalculateTotalPages(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		pageSize int
		want     int
	}{
		{"exact division", 20, 10, 2},
		{"rounds up", 25, 10, 3},
		{"single partial page", 3, 10, 1},
		{"empty collection", 0, 10, 0},
		{"zero page size", 25, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateTotalPages(tt.total, tt.pageSize); got != tt.want {
				t.Errorf("CalculateTotalPages(%d, %d) = %d, want %d", tt.total, tt.pageSize, got, tt.want)
			}
		})
	}
}

func TestCalculateOffset(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		want     int
	}{
		{"first page", 1, 10, 0},
		{"third page", 3, 10, 20},
		{"page below one", 0, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateOffset(tt.page, tt.pageSize); got != tt.want {
				t.Errorf("CalculateOffset(%d, %d) = %d, want %d", tt.page, tt.pageSize, got, tt.want)
			}
		})
	}
}
