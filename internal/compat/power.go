package compat

import (
	"fmt"
	"math"

	"PCQuote/internal/model"
	"PCQuote/internal/utils/normalize"
)

const (
	DefaultExtraHeadroomW = 50.0
	DefaultPSUStepW       = 50.0

	loadFactor  = 1.3
	baseMarginW = 50.0
)

// Options 评估参数
type Options struct {
	// 额外余量（平台、风扇等），nil 时取 DefaultExtraHeadroomW
	ExtraHeadroomW *float64
	// 推荐瓦数向上取整的步长，0 表示不取整
	PSUStepW float64
}

// DefaultOptions 默认 50W 余量、50W 步长
func DefaultOptions() Options {
	return Options{PSUStepW: DefaultPSUStepW}
}

func (o Options) headroom() float64 {
	if o.ExtraHeadroomW == nil {
		return DefaultExtraHeadroomW
	}
	return *o.ExtraHeadroomW
}

// EstimatePower 负载 = CPU TDP + GPU TDP + 余量；推荐最低 = ceil(负载*1.3+50)，
// 不低于 GPU 厂商建议值，再按步长向上取整。缺失的组件按 0W 计
func EstimatePower(cpu *model.CPUItem, gpu *model.GPUItem, opts Options) model.PowerEstimate {
	load := opts.headroom()
	if cpu != nil {
		load += normalize.Value(cpu.TDP)
	}
	if gpu != nil {
		load += normalize.Value(gpu.TDP)
	}
	rec := math.Ceil(load*loadFactor + baseMarginW)
	if gpu != nil {
		if s := normalize.Value(gpu.SuggestedPSU); s > rec {
			rec = s
		}
	}
	return model.PowerEstimate{
		EstimatedLoadW:     load,
		RecommendedMinPSUW: stepUp(rec, opts.PSUStepW),
	}
}

func stepUp(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Ceil(v/step) * step
}

// CheckPSU ok：不低于推荐值；warn：介于负载与推荐值之间；fail：低于负载
// CPU、GPU、PSU 任一缺失或 PSU 瓦数未知时为 unknown
func CheckPSU(psu *model.PSUItem, cpu *model.CPUItem, gpu *model.GPUItem, power model.PowerEstimate) model.PSUStatus {
	st := model.PSUStatus{PowerEstimate: power}
	if psu == nil || cpu == nil || gpu == nil {
		st.Status, st.Reason = model.StateUnknown, reasonMissingData
		return st
	}
	wattage := normalize.Positive(psu.Wattage)
	if wattage == nil {
		st.Status, st.Reason = model.StateUnknown, "PSU wattage unknown"
		return st
	}
	switch w := *wattage; {
	case w >= power.RecommendedMinPSUW:
		st.Status = model.StateOK
	case w >= power.EstimatedLoadW:
		st.Status = model.StateWarn
		st.Reason = fmt.Sprintf("Thin PSU margin: %sW recommended for an estimated %sW load", formatNum(power.RecommendedMinPSUW), formatNum(power.EstimatedLoadW))
	default:
		st.Status = model.StateFail
		st.Reason = fmt.Sprintf("PSU (%sW) is below the estimated %sW load; %sW recommended", formatNum(w), formatNum(power.EstimatedLoadW), formatNum(power.RecommendedMinPSUW))
	}
	return st
}
