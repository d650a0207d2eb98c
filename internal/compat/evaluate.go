package compat

import (
	"fmt"

	"PCQuote/internal/model"
	"PCQuote/internal/utils/normalize"
)

// 状态标签
const (
	LabelCPUMotherboard  = "CPU ↔ Motherboard"
	LabelRAMMotherboard  = "RAM ↔ Motherboard"
	LabelMotherboardCase = "Motherboard ↔ Case"
	LabelGPUCase         = "GPU ↔ Case"
	LabelPSUWattage      = "PSU wattage"
	LabelPSUConnectors   = "PSU connectors"
)

type collector struct {
	res *model.EvaluationResult
}

// add 记录一项两两检查：fail 进 issues，unknown 进 info，警告进 warnings
func (c collector) add(label string, chk Check) {
	c.res.Statuses = append(c.res.Statuses, model.StatusEntry{
		Label:   label,
		OK:      chk.State == model.StateOK,
		Unknown: chk.State == model.StateUnknown,
	})
	switch chk.State {
	case model.StateFail:
		c.res.Issues = append(c.res.Issues, chk.Reason)
	case model.StateUnknown:
		c.res.Info = append(c.res.Info, fmt.Sprintf("%s could not be verified: %s", label, chk.Reason))
	}
	if chk.Warning != "" {
		c.res.Warnings = append(c.res.Warnings, chk.Warning)
	}
}

// Evaluate 对一次选择做完整评估。只读入参，结果完全由入参决定
// 某一对组件缺了一侧时该项检查整体跳过，不出现在 statuses 中
func Evaluate(sel model.Selection, tiers model.TierMaps, opts Options) model.EvaluationResult {
	res := model.EvaluationResult{
		Statuses: []model.StatusEntry{},
		Issues:   []string{},
		Warnings: []string{},
		Info:     []string{},
	}
	c := collector{res: &res}

	res.Power = EstimatePower(sel.CPU, sel.GPU, opts)
	res.PSUStatus = CheckPSU(sel.PSU, sel.CPU, sel.GPU, res.Power)
	res.ConnectorStatus = CheckConnectors(sel.PSU, sel.GPU)
	res.Balance = Balance(sel.CPU, sel.GPU, tiers)

	if sel.CPU != nil && sel.Motherboard != nil {
		c.add(LabelCPUMotherboard, CheckCPUMotherboard(sel.CPU, sel.Motherboard))
	}
	if sel.RAM != nil && sel.Motherboard != nil {
		c.add(LabelRAMMotherboard, CheckRAMMotherboard(sel.RAM, sel.Motherboard))
	}
	if issue := RAMCPUIssue(sel.CPU, sel.RAM); issue != "" {
		res.Issues = append(res.Issues, issue)
	}
	if sel.Motherboard != nil && sel.Case != nil {
		c.add(LabelMotherboardCase, CheckMotherboardCase(sel.Motherboard, sel.Case))
	}
	if sel.GPU != nil && sel.Case != nil {
		c.add(LabelGPUCase, CheckGPUCase(sel.GPU, sel.Case))
	}

	if sel.CPU != nil && sel.GPU != nil && sel.PSU != nil {
		psu := res.PSUStatus
		res.Statuses = append(res.Statuses, model.StatusEntry{
			Label:   LabelPSUWattage,
			OK:      psu.Status == model.StateOK,
			Unknown: psu.Status == model.StateUnknown,
		})
		switch psu.Status {
		case model.StateFail, model.StateWarn:
			res.Issues = append(res.Issues, psu.Reason)
		case model.StateUnknown:
			res.Info = append(res.Info, fmt.Sprintf("%s could not be verified: %s", LabelPSUWattage, psu.Reason))
		}
	}

	if sel.PSU != nil && sel.GPU != nil {
		conn := res.ConnectorStatus
		c.add(LabelPSUConnectors, Check{State: conn.Status, Reason: conn.Reason})
	}

	if sel.GPU != nil && sel.PSU != nil {
		psuMin, wattage := normalize.Positive(sel.GPU.PSUMin), normalize.Positive(sel.PSU.Wattage)
		if psuMin != nil && wattage != nil && *wattage < *psuMin {
			res.Issues = append(res.Issues, fmt.Sprintf("The GPU suggests a %sW PSU but the selected PSU is %sW", formatNum(*psuMin), formatNum(*wattage)))
		}
	}

	res.SelectionChips = SelectionChips(sel)
	return res
}
