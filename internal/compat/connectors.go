package compat

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"PCQuote/internal/model"
)

// PSU 接口 map 的键
const (
	ConnKey12VHPWR = "12vhpwr"
	ConnKey8Pin    = "8_pin"
	ConnKey6Plus2  = "6+2"
	ConnKey6Pin    = "6_pin"
)

var (
	connectorPattern = regexp.MustCompile(`(?i)(?:(\d+)\s*[x×]\s*)?(?:pcie\s+)?(12vhpwr|12v-2x6|16-pin|6\+2-pin|6\+2|8-pin|6-pin)(?:\s*[x×]\s*(\d+))?`)
	parenPattern     = regexp.MustCompile(`\([^)]*\)`)
)

// ParseConnectors 解析 GPU 供电需求文本，如 "2x 8-pin"、"2 x PCIe 8-pin"、"8-pin x2"、"1x 16-pin (12VHPWR)"、"8-pin + 6-pin"
// 括号内为补充说明，不计数；未写数量按 1 个，前置数量优先于后置数量
func ParseConnectors(text string) model.ConnectorRequirement {
	var req model.ConnectorRequirement
	cleaned := parenPattern.ReplaceAllString(text, " ")
	for _, m := range connectorPattern.FindAllStringSubmatch(cleaned, -1) {
		n := 1
		count := m[1]
		if count == "" {
			count = m[3]
		}
		if count != "" {
			if v, err := strconv.Atoi(count); err == nil {
				n = v
			}
		}
		switch strings.ToLower(m[2]) {
		case "12vhpwr", "12v-2x6", "16-pin":
			req.TwelveVHPWR += n
		case "8-pin", "6+2", "6+2-pin":
			req.EightPin += n
		case "6-pin":
			req.SixPin += n
		}
	}
	return req
}

// CheckConnectors PSU 接口数量是否满足 GPU 需求
// 6+2 可当 8-pin 用；8-pin 需求满足后剩余的 6+2 也可当 6-pin 用
func CheckConnectors(psu *model.PSUItem, gpu *model.GPUItem) model.ConnectorStatus {
	if psu == nil || gpu == nil {
		return model.ConnectorStatus{Status: model.StateUnknown, Reason: reasonMissingData}
	}
	need := ParseConnectors(gpu.PowerConnectors)
	if need.Total() == 0 {
		return model.ConnectorStatus{Status: model.StateUnknown, Reason: "GPU power connector requirement unknown"}
	}
	if psu.PCIePowerConnectors == nil {
		return model.ConnectorStatus{Status: model.StateUnknown, Reason: "PSU connector list unknown", Need: &need}
	}

	conns := psu.PCIePowerConnectors
	haveHPWR := conns[ConnKey12VHPWR]
	haveEight := conns[ConnKey8Pin] + conns[ConnKey6Plus2]
	haveSix := conns[ConnKey6Pin]
	if spare := haveEight - need.EightPin; spare > 0 {
		haveSix += spare
	}

	var missing []string
	if haveHPWR < need.TwelveVHPWR {
		missing = append(missing, fmt.Sprintf("12VHPWR (need %d, have %d)", need.TwelveVHPWR, haveHPWR))
	}
	if haveEight < need.EightPin {
		missing = append(missing, fmt.Sprintf("8-pin (need %d, have %d)", need.EightPin, haveEight))
	}
	if haveSix < need.SixPin {
		missing = append(missing, fmt.Sprintf("6-pin (need %d, have %d)", need.SixPin, haveSix))
	}
	if len(missing) > 0 {
		return model.ConnectorStatus{
			Status: model.StateFail,
			Reason: "PSU is missing PCIe power connectors: " + strings.Join(missing, ", "),
			Need:   &need,
		}
	}
	return model.ConnectorStatus{Status: model.StateOK, Need: &need}
}
