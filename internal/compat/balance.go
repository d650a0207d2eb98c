package compat

import (
	"PCQuote/internal/model"
	"PCQuote/internal/tier"
)

// cpuTier 先查档位表，查不到时用组件自身规格现算；没有任何可用输入返回 0
func cpuTier(cpu *model.CPUItem, tiers map[string]int) int {
	if cpu == nil {
		return 0
	}
	if t, ok := tiers[cpu.ID]; ok && t > 0 {
		return t
	}
	if cpu.Cores == nil && cpu.BoostClockGHz == nil {
		return 0
	}
	return tier.CPU(tier.CPUInputs{Cores: cpu.Cores, BoostClockGHz: cpu.BoostClockGHz})
}

func gpuTier(gpu *model.GPUItem, tiers map[string]int) int {
	if gpu == nil {
		return 0
	}
	if t, ok := tiers[gpu.ID]; ok && t > 0 {
		return t
	}
	if gpu.TDP == nil && gpu.VRAMGB == nil {
		return 0
	}
	return tier.GPU(tier.GPUInputs{TDPW: gpu.TDP, VRAMGB: gpu.VRAMGB})
}

// Balance 相差不超过 1 档为均衡；低端 CPU 配高端 GPU、或 CPU 低 2 档以上为 cpu_limited，反之 gpu_limited
func Balance(cpu *model.CPUItem, gpu *model.GPUItem, tiers model.TierMaps) model.BalanceResult {
	c, g := cpuTier(cpu, tiers.CPU), gpuTier(gpu, tiers.GPU)
	if c == 0 || g == 0 {
		return model.BalanceResult{Balance: model.BalanceUnknown, Notes: reasonMissingData}
	}
	res := model.BalanceResult{CPUTier: c, GPUTier: g}
	switch {
	case c <= 1 && g >= 3:
		res.Balance, res.Notes = model.BalanceCPULimited, "Entry-level CPU paired with a demanding GPU"
	case c >= 3 && g <= 1:
		res.Balance, res.Notes = model.BalanceGPULimited, "Entry-level GPU paired with a powerful CPU"
	case c-g <= 1 && g-c <= 1:
		res.Balance = model.BalanceBalanced
	case c < g:
		res.Balance, res.Notes = model.BalanceCPULimited, "CPU is more than one tier below the GPU"
	default:
		res.Balance, res.Notes = model.BalanceGPULimited, "GPU is more than one tier below the CPU"
	}
	return res
}
