package normalize

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizedKey(t *testing.T) {
	tests := []struct {
		name         string
		brand, model string
		want         string
	}{
		{"basic", "AMD", "Ryzen 5 5600", "amd ryzen 5 5600"},
		{"extra whitespace", "amd", "  ryzen   5 5600 ", "amd ryzen 5 5600"},
		{"diacritics", "Gigabyte", "AORUS Élite", "gigabyte aorus elite"},
		{"punctuation collapses", "Intel", "Core i5-12400F", "intel core i5 12400f"},
		{"plus is kept", "Seasonic", "Focus GX-750 80+ Gold", "seasonic focus gx 750 80+ gold"},
		{"empty", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizedKey(tt.brand, tt.model))
		})
	}
}

func TestNormalizedKey_EquivalentSpellings(t *testing.T) {
	assert.Equal(t, NormalizedKey("AMD", "Ryzen 5 5600"), NormalizedKey("amd", "ryzen   5 5600"))
	assert.Equal(t, NormalizedKey("AMD", "Ryzen 5 5600"), NormalizedKey("ÂMD", "Ryzen 5 5600"))
}

func TestNormalizedKey_Idempotent(t *testing.T) {
	for _, in := range []string{"AMD Ryzen 5 5600", "Crucial  Pro DDR5-6000 (2x16GB)", "Noctua NH-D15 chromax.black"} {
		once := NormalizedKey("", in)
		assert.Equal(t, once, NormalizedKey("", once), in)
	}
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "amd_ryzen_5_5600", Slug("AMD Ryzen 5 5600"))
	assert.Equal(t, "asus_rog_strix_b650_e", Slug("  ASUS ROG Strix B650-E  "))
	assert.Equal(t, "be_quiet_dark_rock", Slug("be quiet! Dark Rock"))
	assert.Equal(t, "creme", Slug("__Crème__"))
	assert.Equal(t, "", Slug("!!!"))
}

func TestSafeNumber(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *float64
	}{
		{"nil", nil, nil},
		{"float", 65.0, Float(65)},
		{"int", 8, Float(8)},
		{"numeric string", " 4.4 ", Float(4.4)},
		{"json number", json.Number("125"), Float(125)},
		{"empty string", "", nil},
		{"garbage", "65 W", nil},
		{"nan", math.NaN(), nil},
		{"inf string", "Inf", nil},
		{"bool", true, nil},
		{"slice", []any{1.0}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeNumber(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestFieldAccessors(t *testing.T) {
	item := map[string]any{
		"tdp":       0.0,
		"tdp_w":     "105",
		"brand":     "",
		"maker":     "AMD",
		"id":        1234.0,
		"rpm":       []any{500.0, 1800.0},
		"single":    []any{},
		"is_active": false,
	}

	assert.Equal(t, "AMD", Str(item, "brand", "maker"))
	assert.Equal(t, "1234", Str(item, "id"))
	assert.Equal(t, "", Str(item, "missing"))
	require.NotNil(t, Num(item, "tdp", "tdp_w"))
	assert.Equal(t, 105.0, *Num(item, "tdp", "tdp_w"))
	assert.Nil(t, Num(item, "is_active"))
	assert.Equal(t, 1800.0, *LastNumber(item["rpm"]))
	assert.Equal(t, 500.0, *FirstNumber(item["rpm"]))
	assert.Nil(t, LastNumber(item["single"]))
}

func TestValueAndPositive(t *testing.T) {
	assert.Equal(t, 0.0, Value(nil))
	assert.Equal(t, 3.0, Value(Float(3)))
	assert.Nil(t, Positive(Float(0)))
	assert.Nil(t, Positive(nil))
	assert.Equal(t, 2.0, *Positive(Float(2)))
}
