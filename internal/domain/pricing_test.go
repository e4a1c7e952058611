package domain

import "testing"

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount float64
		fee      float64
		want     float64
	}{
		{"plain price", 100, 0, 0, 100.00},
		{"price plus fee", 350, 0, 150, 500.00},
		{"discount applied", 350, 50, 150, 450.00},
		{"discount exceeding total floors at zero", 100, 150, 0, 0.00},
		{"discount exactly covering total", 100, 250, 150, 0.00},
		// 99.995 sits just below the half cent in binary floating point,
		// matching how the desk software has always rounded it
		{"binary half cent stays down", 99.995, 0, 0, 99.99},
		{"exact half cent rounds away from zero", 0.125, 0, 0, 0.13},
		{"sub-half cent rounds down", 99.994, 0, 0, 99.99},
		{"cents preserved", 199.99, 0.49, 0, 199.50},
		{"zero everything", 0, 0, 0, 0.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotal(tt.price, tt.discount, tt.fee)
			if got != tt.want {
				t.Errorf("ComputeTotal(%v, %v, %v) = %v, want %v", tt.price, tt.discount, tt.fee, got, tt.want)
			}
		})
	}
}
