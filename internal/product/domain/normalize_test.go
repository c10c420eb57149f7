package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFillsDefaults(t *testing.T) {
	got := Normalize([]RawProduct{Fields{}, nil})

	require.Len(t, got, 2)
	for _, p := range got {
		assert.Equal(t, Product{
			Name:     DefaultName,
			Category: DefaultCategory,
			Pack:     DefaultPackSize,
		}, p)
	}
}

func TestNormalizeCoercesFields(t *testing.T) {
	cases := []struct {
		name string
		raw  RawProduct
		want Product
	}{
		{
			name: "well formed",
			raw:  Fields{"name": "Beer", "category": "Domestic", "singles": 3.0, "cases": 2.0, "pack": 24.0, "completed": false},
			want: Product{Name: "Beer", Category: "Domestic", Singles: 3, Cases: 2, Pack: 24},
		},
		{
			name: "negative and fractional counts",
			raw:  Fields{"name": "Cider", "singles": -4.0, "cases": 2.7},
			want: Product{Name: "Cider", Category: DefaultCategory, Singles: 0, Cases: 2, Pack: 24},
		},
		{
			name: "nan counts",
			raw:  Fields{"name": "Stout", "singles": math.NaN(), "cases": math.Inf(1)},
			want: Product{Name: "Stout", Category: DefaultCategory, Pack: 24},
		},
		{
			name: "numeric strings",
			raw:  Fields{"name": "Lager", "singles": " 5 ", "cases": "oops", "pack": "12 pack"},
			want: Product{Name: "Lager", Category: DefaultCategory, Singles: 5, Pack: 12},
		},
		{
			name: "non positive pack",
			raw:  Fields{"name": "Seltzer", "pack": -6.0},
			want: Product{Name: "Seltzer", Category: DefaultCategory, Pack: 24},
		},
		{
			name: "zero pack",
			raw:  Fields{"name": "Seltzer", "pack": 0},
			want: Product{Name: "Seltzer", Category: DefaultCategory, Pack: 24},
		},
		{
			name: "fractional pack truncates",
			raw:  Fields{"name": "IPA", "pack": 12.9},
			want: Product{Name: "IPA", Category: DefaultCategory, Pack: 12},
		},
		{
			name: "truthy completed string",
			raw:  Fields{"name": "Soda", "completed": "yes"},
			want: Product{Name: "Soda", Category: DefaultCategory, Pack: 24, Completed: true},
		},
		{
			name: "falsy completed zero",
			raw:  Fields{"name": "Soda", "completed": 0.0},
			want: Product{Name: "Soda", Category: DefaultCategory, Pack: 24},
		},
		{
			name: "blank name and numeric category",
			raw:  Fields{"name": "   ", "category": 7.0},
			want: Product{Name: DefaultName, Category: "7", Pack: 24},
		},
		{
			name: "wrong types",
			raw:  Fields{"name": []any{"x"}, "singles": true, "cases": map[string]any{}, "pack": true},
			want: Product{Name: DefaultName, Category: DefaultCategory, Pack: 24},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize([]RawProduct{tc.raw})
			require.Len(t, got, 1)
			assert.Equal(t, tc.want, got[0])
		})
	}
}

func TestNormalizeBounds(t *testing.T) {
	inputs := []any{nil, true, false, "", "abc", "-3", "1e3", -1.0, 0.0, 0.4, 1e12, math.NaN(), math.Inf(-1), json.Number("17"), []any{}, map[string]any{}}

	var raw []RawProduct
	for _, singles := range inputs {
		for _, pack := range inputs {
			raw = append(raw, Fields{"singles": singles, "cases": singles, "pack": pack, "completed": pack})
		}
	}

	for _, p := range Normalize(raw) {
		assert.GreaterOrEqual(t, p.Singles, 0)
		assert.GreaterOrEqual(t, p.Cases, 0)
		assert.GreaterOrEqual(t, p.Pack, 1)
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Category)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	raw := []RawProduct{
		Fields{"name": " Beer ", "singles": "3", "cases": 2.5, "pack": "x"},
		Fields{"category": "", "singles": -1.0, "pack": 6.0, "completed": 1.0},
		Fields{"name": 42.0, "completed": "false"},
		"stray",
	}

	once := Normalize(raw)
	twice := Normalize(ToRaw(once))

	assert.Equal(t, once, twice)
}

func TestNormalizeDecodedJSON(t *testing.T) {
	var raw []RawProduct
	require.NoError(t, json.Unmarshal([]byte(`[{"name":"X","pack":12}]`), &raw))

	got := Normalize(raw)

	assert.Equal(t, []Product{{Name: "X", Category: DefaultCategory, Pack: 12}}, got)
}

func TestNormalizeNonObjectElements(t *testing.T) {
	var raw []RawProduct
	require.NoError(t, json.Unmarshal([]byte(`[{"name":"A","pack":12},"stray",5,[],null,true]`), &raw))

	got := Normalize(raw)

	require.Len(t, got, 6)
	assert.Equal(t, Product{Name: "A", Category: DefaultCategory, Pack: 12}, got[0])
	for _, p := range got[1:] {
		assert.Equal(t, Product{Name: DefaultName, Category: DefaultCategory, Pack: DefaultPackSize}, p)
	}
}

func TestParsePackSize(t *testing.T) {
	cases := map[string]struct {
		size int
		ok   bool
	}{
		"12":      {12, true},
		" 30 ":    {30, true},
		"18 cans": {18, true},
		"0":       {0, false},
		"-6":      {0, false},
		"":        {0, false},
		"twelve":  {0, false},
	}
	for input, want := range cases {
		size, ok := ParsePackSize(input)
		assert.Equal(t, want.ok, ok, input)
		assert.Equal(t, want.size, size, input)
	}
}

func TestTotalUnits(t *testing.T) {
	p := Product{Name: "Beer", Singles: 3, Cases: 2, Pack: 24}
	assert.Equal(t, 51, p.TotalUnits())
}
