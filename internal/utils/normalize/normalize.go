// Package normalize 提供匹配键、slug、容错数值转换等纯函数，各来源适配器与目录映射共用
package normalize

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonKeyChars  = regexp.MustCompile(`[^a-z0-9+]+`)
	whitespace   = regexp.MustCompile(`\s+`)
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
)

// Deburr NFD 分解后去掉组合附加符号（é -> e）
func Deburr(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizedKey 品牌+型号的匹配键：小写、去附加符号、只保留字母数字和 +，单空格分隔
// 幂等：NormalizedKey("", NormalizedKey(b, m)) == NormalizedKey(b, m)
func NormalizedKey(brand, model string) string {
	key := strings.ToLower(strings.TrimSpace(brand + " " + model))
	key = Deburr(key)
	key = nonKeyChars.ReplaceAllString(key, " ")
	key = whitespace.ReplaceAllString(key, " ")
	return strings.TrimSpace(key)
}

// Slug 非字母数字连续段替换为 _，去首尾 _
func Slug(s string) string {
	out := strings.ToLower(Deburr(s))
	out = nonSlugChars.ReplaceAllString(out, "_")
	return strings.Trim(out, "_")
}

// SafeNumber 容错数值转换，非有限值或无法解析时返回 nil
func SafeNumber(v any) *float64 {
	var f float64
	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		f = parsed
	case *float64:
		if n == nil {
			return nil
		}
		f = *n
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Float 构造数值指针
func Float(f float64) *float64 { return &f }

// Value 解引用，nil 视为 0
func Value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// Positive nil 或 <=0 视为缺失
func Positive(p *float64) *float64 {
	if p == nil || *p <= 0 {
		return nil
	}
	return p
}

// truthy 判断原始字段是否"有值"：空串、0、false、nil 均视为缺失
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	case int:
		return x != 0
	case json.Number:
		f, err := x.Float64()
		return err == nil && f != 0
	}
	return true
}

// First 依次取第一个有值的字段
func First(item map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := item[k]; ok && truthy(v) {
			return v
		}
	}
	return nil
}

// Str 依次取第一个有值字段的字符串形式，缺失返回 ""
func Str(item map[string]any, keys ...string) string {
	switch v := First(item, keys...).(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Num 依次取第一个有值字段并做容错数值转换
func Num(item map[string]any, keys ...string) *float64 {
	return SafeNumber(First(item, keys...))
}

// LastNumber 区间字段（如 [600, 1800] rpm）取最后一个元素，标量直接转换
func LastNumber(v any) *float64 {
	if arr, ok := v.([]any); ok {
		if len(arr) == 0 {
			return nil
		}
		return SafeNumber(arr[len(arr)-1])
	}
	return SafeNumber(v)
}

// FirstNumber 区间字段取第一个元素
func FirstNumber(v any) *float64 {
	if arr, ok := v.([]any); ok {
		if len(arr) == 0 {
			return nil
		}
		return SafeNumber(arr[0])
	}
	return SafeNumber(v)
}
