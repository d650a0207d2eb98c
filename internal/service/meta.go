package service

import (
	"time"

	"PCQuote/internal/model"
	"PCQuote/internal/tier"
)

const metaNotes = "Detailed compatibility is evaluated at load time by the compatibility evaluator; this file carries counts, ranges and tiers."

// rangeOf 非空数值的最小/最大值；没有任何值时返回 nil
func rangeOf(values []*float64) *model.Range {
	var out *model.Range
	for _, v := range values {
		if v == nil {
			continue
		}
		if out == nil {
			out = &model.Range{Min: *v, Max: *v}
			continue
		}
		if *v < out.Min {
			out.Min = *v
		}
		if *v > out.Max {
			out.Max = *v
		}
	}
	return out
}

func collect[T any](items []T, get func(T) *float64) []*float64 {
	out := make([]*float64, 0, len(items))
	for _, it := range items {
		out = append(out, get(it))
	}
	return out
}

// BuildMeta 汇总数量、数值范围、插槽/板型统计与档位表；除 generatedAt 外只取决于目录内容
func BuildMeta(c *model.Catalog, generatedAt time.Time) *model.CompatibilityMeta {
	meta := &model.CompatibilityMeta{
		GeneratedAt: generatedAt.UTC(),
		Counts: model.CategoryCounts{
			CPUs:         len(c.CPUs),
			GPUs:         len(c.GPUs),
			Motherboards: len(c.Motherboards),
			PSUs:         len(c.PSUs),
			Cases:        len(c.Cases),
			RAM:          len(c.RAM),
			Coolers:      len(c.Coolers),
			Fans:         len(c.Fans),
		},
		Ranges: model.MetaRanges{
			CPUTDPW:      rangeOf(collect(c.CPUs, func(x *model.CPUComponent) *float64 { return x.TDPW })),
			GPUTDPW:      rangeOf(collect(c.GPUs, func(x *model.GPUComponent) *float64 { return x.TDPW })),
			GPULengthMM:  rangeOf(collect(c.GPUs, func(x *model.GPUComponent) *float64 { return x.BoardLengthMM })),
			RAMSpeedMTS:  rangeOf(collect(c.RAM, func(x *model.RAMComponent) *float64 { return x.SpeedMTS })),
			PSUWattageW:  rangeOf(collect(c.PSUs, func(x *model.PSUComponent) *float64 { return x.WattageW })),
			CoolerSizeMM: rangeOf(collect(c.Coolers, func(x *model.CoolerComponent) *float64 { return x.SizeMM })),
			FanSizeMM:    rangeOf(collect(c.Fans, func(x *model.FanComponent) *float64 { return x.SizeMM })),
		},
		Sockets:     make(map[string]model.SocketCount),
		FormFactors: make(map[string]model.FormFactorCount),
		Tiers:       tier.Table(c.CPUs, c.GPUs),
		Notes:       metaNotes,
	}

	for _, m := range c.Motherboards {
		if m.Socket != "" {
			sc := meta.Sockets[m.Socket]
			sc.Mobos++
			meta.Sockets[m.Socket] = sc
		}
		if m.FormFactor != "" {
			ff := meta.FormFactors[m.FormFactor]
			ff.Mobos++
			meta.FormFactors[m.FormFactor] = ff
		}
	}
	for _, cpu := range c.CPUs {
		if cpu.Socket != "" {
			sc := meta.Sockets[cpu.Socket]
			sc.CPUs++
			meta.Sockets[cpu.Socket] = sc
		}
	}
	for _, cs := range c.Cases {
		for _, f := range cs.SupportedMoboFormFactors {
			ff := meta.FormFactors[f]
			ff.Cases++
			meta.FormFactors[f] = ff
		}
	}
	return meta
}
