package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// 从自由文本猜测类型/插槽等的启发式规则，全部为纯函数，标准化阶段与加载映射阶段共用

var (
	ddrPattern       = regexp.MustCompile(`(?i)ddr(\d)`)
	intelGenPattern  = regexp.MustCompile(`i\d[- ](\d{4,5})`)
	ryzenGenPattern  = regexp.MustCompile(`ryzen\s+(\d{4,5})`)
	ryzenTierPattern = regexp.MustCompile(`ryzen\s+\d\s+(\d{4,5})`)
)

// SplitBrandModel 名称首个词为品牌，其余为型号；只有一个词时型号即名称
func SplitBrandModel(name string) (brand, model string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	brand = parts[0]
	model = strings.Join(parts[1:], " ")
	if model == "" {
		model = strings.TrimSpace(name)
	}
	return brand, model
}

// DDRFromText 从 "DDR4-3200" 之类的文本中提取代数
func DDRFromText(s string) string {
	m := ddrPattern.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return "DDR" + m[1]
}

// RAMType 内存代数：显式类型优先；其次 [代数, 频率] 数组；最后从频率文本中匹配 ddrN
func RAMType(explicit string, speed any) string {
	if t := strings.TrimSpace(explicit); t != "" {
		return strings.ToUpper(t)
	}
	switch v := speed.(type) {
	case []any:
		if len(v) == 2 {
			if gen := SafeNumber(v[0]); gen != nil && *gen > 0 {
				return "DDR" + strconv.FormatFloat(*gen, 'f', -1, 64)
			}
		}
	case string:
		return DDRFromText(v)
	}
	return ""
}

// RAMSpeed [代数, 频率] 数组取频率，否则按标量转换
func RAMSpeed(speed any) *float64 {
	if arr, ok := speed.([]any); ok {
		if len(arr) == 2 {
			return SafeNumber(arr[1])
		}
		return nil
	}
	return SafeNumber(speed)
}

// MemoryTypes 显式列表优先，退回单值 memory_type，统一大写
func MemoryTypes(types any, single string) []string {
	out := []string{}
	switch arr := types.(type) {
	case []any:
		for _, t := range arr {
			if s, ok := t.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.ToUpper(strings.TrimSpace(s)))
			}
		}
	case []string:
		for _, s := range arr {
			if strings.TrimSpace(s) != "" {
				out = append(out, strings.ToUpper(strings.TrimSpace(s)))
			}
		}
	}
	if len(out) == 0 && strings.TrimSpace(single) != "" {
		out = append(out, strings.ToUpper(strings.TrimSpace(single)))
	}
	return out
}

// InferSocket 字段为空时按型号代际推断插槽
func InferSocket(name, socket string) string {
	if s := strings.TrimSpace(socket); s != "" {
		return s
	}
	lower := strings.ToLower(name)
	if m := intelGenPattern.FindStringSubmatch(lower); m != nil {
		gen := m[1]
		switch {
		case strings.HasPrefix(gen, "14"), strings.HasPrefix(gen, "13"), strings.HasPrefix(gen, "12"):
			return "LGA1700"
		case strings.HasPrefix(gen, "11"), strings.HasPrefix(gen, "10"):
			return "LGA1200"
		case strings.HasPrefix(gen, "9"), strings.HasPrefix(gen, "8"):
			return "LGA1151"
		}
	}
	for _, re := range []*regexp.Regexp{ryzenGenPattern, ryzenTierPattern} {
		if m := re.FindStringSubmatch(lower); m != nil {
			n, _ := strconv.Atoi(m[1])
			if n >= 7000 {
				return "AM5"
			}
			if n >= 2000 {
				return "AM4"
			}
		}
	}
	return ""
}

// MemoryTypesBySocket 插槽族对应的内存类型，首个为首选
func MemoryTypesBySocket(socket string) []string {
	switch strings.ToUpper(strings.TrimSpace(socket)) {
	case "AM5":
		return []string{"DDR5"}
	case "AM4":
		return []string{"DDR4"}
	case "LGA1700":
		// 多数为 DDR5，DDR4 主板也存在
		return []string{"DDR5", "DDR4"}
	case "LGA1200", "LGA1151":
		return []string{"DDR4"}
	}
	return nil
}

// InferMemoryTypeBySocket 插槽族的首选内存类型
func InferMemoryTypeBySocket(socket string) string {
	types := MemoryTypesBySocket(socket)
	if len(types) == 0 {
		return ""
	}
	return types[0]
}

// CaseFormFactors 机箱类型映射为可装的主板板型
// 如 "ATX Mid Tower" -> [ATX, Micro ATX, Mini ITX]
func CaseFormFactors(caseType string) []string {
	t := strings.ToLower(caseType)
	switch {
	case t == "":
		return []string{}
	case strings.Contains(t, "mini itx"), strings.Contains(t, "mini-itx"):
		return []string{"Mini ITX"}
	case strings.Contains(t, "microatx"), strings.Contains(t, "micro atx"), strings.Contains(t, "matx"):
		return []string{"Micro ATX", "Mini ITX"}
	case strings.Contains(t, "eatx"), strings.Contains(t, "full tower"), strings.Contains(t, "super tower"):
		return []string{"EATX", "ATX", "Micro ATX", "Mini ITX"}
	case strings.Contains(t, "atx"):
		return []string{"ATX", "Micro ATX", "Mini ITX"}
	}
	return []string{strings.TrimSpace(caseType)}
}

// FormFactorKey 板型比较键：忽略大小写与分隔符，统一 mATX/uATX 写法
func FormFactorKey(ff string) string {
	k := strings.ToLower(ff)
	k = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(k)
	switch k {
	case "matx", "uatx", "microatx":
		return "microatx"
	case "itx", "miniitx", "mitx":
		return "miniitx"
	case "eatx", "extendedatx":
		return "eatx"
	}
	return k
}
