package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

const maxCount = math.MaxInt32

// Normalize coerces arbitrary records into well-formed products.
// It never fails: every invalid field is replaced by its default, and an
// element that is not an object becomes a product made of defaults.
func Normalize(raw []RawProduct) []Product {
	out := make([]Product, 0, len(raw))
	for _, r := range raw {
		out = append(out, normalizeOne(r))
	}
	return out
}

func normalizeOne(v RawProduct) Product {
	r, _ := v.(Fields)
	return Product{
		Name:      coerceLabel(r["name"], DefaultName),
		Category:  coerceLabel(r["category"], DefaultCategory),
		Singles:   coerceCount(r["singles"]),
		Cases:     coerceCount(r["cases"]),
		Pack:      coercePack(r["pack"]),
		Completed: truthy(r["completed"]),
	}
}

// ParsePackSize reads a pack size the way a typed prompt answer is read:
// the leading integer counts, the rest is ignored.
func ParsePackSize(input string) (int, bool) {
	n, ok := parseLeadingInt(input)
	if !ok || n <= 0 {
		return 0, false
	}
	return n, true
}

func coerceCount(v any) int {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	if f >= maxCount {
		return maxCount
	}
	return int(f)
}

func coercePack(v any) int {
	var n int
	switch t := v.(type) {
	case string:
		parsed, ok := parseLeadingInt(t)
		if !ok {
			return DefaultPackSize
		}
		n = parsed
	default:
		f, ok := toFloat(v)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return DefaultPackSize
		}
		if f >= maxCount {
			return maxCount
		}
		n = int(f)
	}
	if n <= 0 {
		return DefaultPackSize
	}
	return n
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Only overflow reaches here; the prefix is all digits.
		if s[0] == '-' {
			return -maxCount, true
		}
		return maxCount, true
	}
	if n > maxCount {
		n = maxCount
	}
	return n, true
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case float32:
		return t != 0 && !math.IsNaN(float64(t))
	case int:
		return t != 0
	case int64:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err != nil || (f != 0 && !math.IsNaN(f))
	case string:
		return t != ""
	default:
		return true
	}
}

func coerceLabel(v any, def string) string {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return def
		}
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		s = strconv.Itoa(t)
	case int64:
		s = strconv.FormatInt(t, 10)
	case json.Number:
		s = t.String()
	case bool:
		s = strconv.FormatBool(t)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return s
}
