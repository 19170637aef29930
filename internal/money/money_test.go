package money_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"shopkeeper/internal/money"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{"zero", "0", "Rs. 0.00"},
		{"sub-thousand", "999.9", "Rs. 999.90"},
		{"thousand", "1000", "Rs. 1,000.00"},
		{"ten thousand", "54321", "Rs. 54,321.00"},
		{"lakh", "123456", "Rs. 1,23,456.00"},
		{"crore", "12345678.5", "Rs. 1,23,45,678.50"},
		{"rounding", "10.005", "Rs. 10.01"},
		{"negative", "-123456", "Rs. -1,23,456.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.amount)
			if err != nil {
				t.Fatalf("decimal.NewFromString(%q): %v", tt.amount, err)
			}
			if got := money.Format("Rs.", d); got != tt.want {
				t.Errorf("Format(%s) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestFormat_OtherSymbol(t *testing.T) {
	got := money.Format("$", decimal.NewFromInt(2500))
	if got != "$ 2,500.00" {
		t.Errorf("got %q", got)
	}
}
