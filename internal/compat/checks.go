// Package compat 兼容性与功耗评估：纯函数，不做 I/O，不修改入参
// 缺字段时给出 unknown，unknown 永远不算作失败
package compat

import (
	"fmt"
	"strconv"
	"strings"

	"PCQuote/internal/model"
	"PCQuote/internal/utils/normalize"
)

const reasonMissingData = "missing data"

// Check 单项两两检查结果
type Check struct {
	State   model.CheckState
	Reason  string // fail / unknown 的原因
	Warning string // 兼容但需要注意
}

func okCheck() Check                   { return Check{State: model.StateOK} }
func failCheck(reason string) Check    { return Check{State: model.StateFail, Reason: reason} }
func unknownCheck(reason string) Check { return Check{State: model.StateUnknown, Reason: reason} }

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

// CheckCPUMotherboard 插槽严格相等；CPU 声明了内存类型且主板内存类型已知时，后者须在前者之中
func CheckCPUMotherboard(cpu *model.CPUItem, mobo *model.MotherboardItem) Check {
	if cpu == nil || mobo == nil {
		return unknownCheck(reasonMissingData)
	}
	if cpu.Socket == "" || mobo.Socket == "" {
		return unknownCheck("socket unknown")
	}
	if cpu.Socket != mobo.Socket {
		return failCheck(fmt.Sprintf("CPU socket %s does not match motherboard socket %s", cpu.Socket, mobo.Socket))
	}
	if len(cpu.MemoryTypes) > 0 && mobo.MemoryType != "" && !contains(cpu.MemoryTypes, mobo.MemoryType) {
		return failCheck(fmt.Sprintf("Motherboard memory %s is not supported by the CPU (%s)", mobo.MemoryType, strings.Join(cpu.MemoryTypes, "/")))
	}
	return okCheck()
}

// CheckRAMMotherboard 类型一致、条数不超过插槽数、总容量不超过上限；频率超出官方上限只给警告
func CheckRAMMotherboard(ram *model.RAMItem, mobo *model.MotherboardItem) Check {
	if ram == nil || mobo == nil {
		return unknownCheck(reasonMissingData)
	}
	if ram.Type != "" && mobo.MemoryType != "" && !strings.EqualFold(ram.Type, mobo.MemoryType) {
		return failCheck(fmt.Sprintf("RAM type %s does not match motherboard memory %s", ram.Type, mobo.MemoryType))
	}
	if slots, modules := normalize.Positive(mobo.MemorySlots), normalize.Positive(ram.Modules); slots != nil && modules != nil && *modules > *slots {
		return failCheck(fmt.Sprintf("RAM kit has %s modules but the motherboard has %s slots", formatNum(*modules), formatNum(*slots)))
	}
	if maxGB, total := normalize.Positive(mobo.MaxMemoryGB), normalize.Positive(ram.CapacityGB); maxGB != nil && total != nil && *total > *maxGB {
		return failCheck(fmt.Sprintf("RAM capacity %sGB exceeds the motherboard maximum of %sGB", formatNum(*total), formatNum(*maxGB)))
	}
	if ram.Type == "" || mobo.MemoryType == "" {
		return unknownCheck("memory type unknown")
	}
	res := okCheck()
	if maxSpeed, speed := normalize.Positive(mobo.MaxMemorySpeedMTS), normalize.Positive(ram.Speed); maxSpeed != nil && speed != nil && *speed > *maxSpeed {
		res.Warning = fmt.Sprintf("RAM speed %s MT/s is above the motherboard's official %s MT/s; may need XMP/EXPO tuning", formatNum(*speed), formatNum(*maxSpeed))
	}
	return res
}

// RAMCPUIssue 内存类型与 CPU 支持类型不一致时返回问题描述，否则返回 ""
func RAMCPUIssue(cpu *model.CPUItem, ram *model.RAMItem) string {
	if cpu == nil || ram == nil || ram.Type == "" {
		return ""
	}
	supported := cpu.MemoryTypes
	if len(supported) == 0 && cpu.MemoryType != "" {
		supported = []string{cpu.MemoryType}
	}
	if len(supported) == 0 || contains(supported, ram.Type) {
		return ""
	}
	return fmt.Sprintf("RAM (%s) does not match the memory supported by the CPU (%s)", ram.Type, strings.Join(supported, "/"))
}

// CheckMotherboardCase 机箱支持的板型需包含主板板型（忽略大小写与分隔符）
func CheckMotherboardCase(mobo *model.MotherboardItem, pcCase *model.CaseItem) Check {
	if mobo == nil || pcCase == nil {
		return unknownCheck(reasonMissingData)
	}
	if mobo.FormFactor == "" || len(pcCase.FormFactors) == 0 {
		return unknownCheck("form factor unknown")
	}
	want := normalize.FormFactorKey(mobo.FormFactor)
	for _, ff := range pcCase.FormFactors {
		if normalize.FormFactorKey(ff) == want {
			return okCheck()
		}
	}
	return failCheck(fmt.Sprintf("Case does not support the %s form factor", mobo.FormFactor))
}

// CheckGPUCase 显卡长度不超过机箱限长；任一长度未知为 unknown
func CheckGPUCase(gpu *model.GPUItem, pcCase *model.CaseItem) Check {
	if gpu == nil || pcCase == nil {
		return unknownCheck(reasonMissingData)
	}
	length, maxLen := normalize.Positive(gpu.Length), normalize.Positive(pcCase.MaxGPULength)
	if length == nil || maxLen == nil {
		return unknownCheck("GPU length or case clearance unknown")
	}
	if *length > *maxLen {
		return failCheck(fmt.Sprintf("GPU (%s mm) does not fit the case (max %s mm)", formatNum(*length), formatNum(*maxLen)))
	}
	return okCheck()
}
