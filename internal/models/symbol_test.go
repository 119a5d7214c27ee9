package models

import "testing"

func TestNormalizeSymbol(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already normalized", "BTCUSDT", "BTCUSDT"},
		{"lower case", "btcusdt", "BTCUSDT"},
		{"mixed case with spaces", "  EthUsdt  ", "ETHUSDT"},
		{"tabs and newlines", "\tsol\n", "SOL"},
		{"inner space kept", " btc usdt ", "BTC USDT"},
		{"empty", "", ""},
		{"whitespace only", "   \t\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSymbol(tt.input); got != tt.want {
				t.Errorf("NormalizeSymbol(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
