package compat

import "PCQuote/internal/model"

const chipUnknown = "?"

func orUnknown(s string) string {
	if s == "" {
		return chipUnknown
	}
	return s
}

func withMemory(socket, memType string) string {
	v := orUnknown(socket)
	if memType != "" {
		v += " · " + memType
	}
	return v
}

// SelectionChips CPU、主板、内存的插槽/内存类型摘要，未选的类别不出现
func SelectionChips(sel model.Selection) []model.SelectionChip {
	chips := []model.SelectionChip{}
	if sel.CPU != nil {
		chips = append(chips, model.SelectionChip{Label: "CPU", Value: withMemory(sel.CPU.Socket, sel.CPU.MemoryType)})
	}
	if sel.Motherboard != nil {
		chips = append(chips, model.SelectionChip{Label: "Motherboard", Value: withMemory(sel.Motherboard.Socket, sel.Motherboard.MemoryType)})
	}
	if sel.RAM != nil {
		chips = append(chips, model.SelectionChip{Label: "RAM", Value: orUnknown(sel.RAM.Type)})
	}
	return chips
}
