// Package tier 把 CPU/GPU 粗分为 1-4 档，供平衡度判断使用
// 缺失的输入按 0 处理，即未知时默认为低档
package tier

import (
	"PCQuote/internal/model"
	"PCQuote/internal/utils/normalize"
)

const (
	Min = 1
	Max = 4
)

// CPUInputs 计算 CPU 档位所需字段
type CPUInputs struct {
	Cores         *float64
	BoostClockGHz *float64
}

// GPUInputs 计算 GPU 档位所需字段
type GPUInputs struct {
	TDPW   *float64
	VRAMGB *float64
}

func CPU(in CPUInputs) int {
	cores := normalize.Value(in.Cores)
	boost := normalize.Value(in.BoostClockGHz)
	switch {
	case cores >= 12 && boost >= 4.5:
		return 4
	case cores >= 8 && boost >= 4.2:
		return 3
	case cores >= 6:
		return 2
	}
	return 1
}

func GPU(in GPUInputs) int {
	tdp := normalize.Value(in.TDPW)
	vram := normalize.Value(in.VRAMGB)
	switch {
	case tdp >= 250 || vram >= 12:
		return 4
	case tdp >= 180 || vram >= 10:
		return 3
	case tdp >= 120 || vram >= 8:
		return 2
	}
	return 1
}

// ForCPU 规范化 CPU 的档位
func ForCPU(c *model.CPUComponent) int {
	return CPU(CPUInputs{Cores: c.Cores, BoostClockGHz: c.BoostClockGHz})
}

// ForGPU 规范化 GPU 的档位
func ForGPU(g *model.GPUComponent) int {
	return GPU(GPUInputs{TDPW: g.TDPW, VRAMGB: g.VRAMGB})
}

// Table 生成 meta 中的档位表，顺序与集合一致
func Table(cpus []*model.CPUComponent, gpus []*model.GPUComponent) model.MetaTiers {
	out := model.MetaTiers{
		CPU: make([]model.TierEntry, 0, len(cpus)),
		GPU: make([]model.TierEntry, 0, len(gpus)),
	}
	for _, c := range cpus {
		out.CPU = append(out.CPU, model.TierEntry{ID: c.ID, Tier: ForCPU(c)})
	}
	for _, g := range gpus {
		out.GPU = append(out.GPU, model.TierEntry{ID: g.ID, Tier: ForGPU(g)})
	}
	return out
}
