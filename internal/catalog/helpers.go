package catalog

import (
	"regexp"
	"strings"
)

var (
	coreIPattern    = regexp.MustCompile(`core\s+i(\d)`)
	intelSKUPattern = regexp.MustCompile(`\bi(\d)[- ]\d{4,5}`)
	intelOldPattern = regexp.MustCompile(`\bi(\d)-\d{3,4}`)
	ryzenPattern    = regexp.MustCompile(`ryzen\s+(\d)`)
)

// FamilyOther 无法识别的 CPU 系列
const FamilyOther = "Other"

// BrandUnknown 名称中也推断不出品牌
const BrandUnknown = "Unknown"

// ExtractCPUFamily 从名称提取 CPU 系列，用于前端分组
func ExtractCPUFamily(name string) string {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "core ultra") {
		return "Core Ultra"
	}
	for _, re := range []*regexp.Regexp{coreIPattern, intelSKUPattern, intelOldPattern} {
		if m := re.FindStringSubmatch(lower); m != nil {
			return "Core i" + m[1]
		}
	}
	switch {
	case strings.Contains(lower, "pentium"):
		return "Pentium"
	case strings.Contains(lower, "celeron"):
		return "Celeron"
	}
	if m := ryzenPattern.FindStringSubmatch(lower); m != nil {
		return "Ryzen " + m[1]
	}
	if strings.Contains(lower, "threadripper") {
		return "Threadripper"
	}
	return FamilyOther
}

// InferBrand 品牌为空时按名称关键字推断
func InferBrand(brand, name string) string {
	if b := strings.TrimSpace(brand); b != "" {
		return b
	}
	lower := strings.ToLower(name)
	for _, kw := range []string{"intel", "core", "pentium", "celeron"} {
		if strings.Contains(lower, kw) {
			return "Intel"
		}
	}
	for _, kw := range []string{"ryzen", "threadripper", "amd"} {
		if strings.Contains(lower, kw) {
			return "AMD"
		}
	}
	return BrandUnknown
}

// MemoryTypeFromName 主板名中带 ddr4/ddr5 时据此判断
func MemoryTypeFromName(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "ddr5"):
		return "DDR5"
	case strings.Contains(lower, "ddr4"):
		return "DDR4"
	}
	return ""
}
