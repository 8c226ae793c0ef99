package uci

import (
	"errors"
	"testing"
)

func TestEncodeMove(t *testing.T) {
	tests := []struct {
		name  string
		from  int
		to    int
		promo byte
	}{
		{"e2e4", 12, 28, PromoNone},
		{"e7e8q", 52, 60, PromoQueen},
		{"a1h8", 0, 63, PromoNone},
		{"b7b8n", 49, 57, PromoKnight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeMove(tt.from, tt.to, tt.promo)
			if got.From() != tt.from || got.To() != tt.to || got.Promotion() != tt.promo {
				t.Errorf("EncodeMove(%d, %d, %d) = %x, decodes to (%d, %d, %d)",
					tt.from, tt.to, tt.promo, uint16(got), got.From(), got.To(), got.Promotion())
			}
			if got.String() != tt.name {
				t.Errorf("String() = %q, want %q", got.String(), tt.name)
			}
		})
	}
}

func TestEncodeMove_OutOfRange(t *testing.T) {
	if m := EncodeMove(-1, 10, PromoNone); m != 0 {
		t.Errorf("expected zero move, got %x", uint16(m))
	}
	if m := EncodeMove(10, 64, PromoNone); m != 0 {
		t.Errorf("expected zero move, got %x", uint16(m))
	}
	if m := EncodeMove(52, 60, 7); m != 0 {
		t.Errorf("expected zero move for bad promo, got %x", uint16(m))
	}
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		uci   string
		from  int
		to    int
		promo byte
	}{
		{"e2e4", 12, 28, PromoNone},
		{"g1f3", 6, 21, PromoNone},
		{"e7e8q", 52, 60, PromoQueen},
		{"a7a8r", 48, 56, PromoRook},
		{"h2h1b", 15, 7, PromoBishop},
		{"b7b8n", 49, 57, PromoKnight},
	}

	for _, tt := range tests {
		t.Run(tt.uci, func(t *testing.T) {
			m, err := ParseMove(tt.uci)
			if err != nil {
				t.Fatalf("ParseMove(%q): %v", tt.uci, err)
			}
			if m.From() != tt.from || m.To() != tt.to || m.Promotion() != tt.promo {
				t.Errorf("ParseMove(%q) = (%d, %d, %d), want (%d, %d, %d)",
					tt.uci, m.From(), m.To(), m.Promotion(), tt.from, tt.to, tt.promo)
			}
			if m.String() != tt.uci {
				t.Errorf("String() = %q, want %q", m.String(), tt.uci)
			}
		})
	}
}

func TestParseMove_Invalid(t *testing.T) {
	for _, s := range []string{"", "e2", "e2e", "e2e4qq", "i2e4", "e9e4", "e2e0", "e7e8k", "e7e8Q", NoMove} {
		if _, err := ParseMove(s); !errors.Is(err, ErrParseFailure) {
			t.Errorf("ParseMove(%q) err = %v, want ErrParseFailure", s, err)
		}
	}
}
