// Package catalog 把规范化目录映射为评估器与前端使用的扁平视图，并提供按 ID 查找与档位表
package catalog

import (
	"strings"

	"PCQuote/internal/model"
	"PCQuote/internal/tier"
	"PCQuote/internal/utils/normalize"
)

// MapCatalog 规范化目录 → 扁平视图；空类别为空切片
// 插槽、内存类型在这里再推断一次，兜住上游缺失的字段
func MapCatalog(c *model.Catalog) *model.CatalogView {
	if c == nil {
		c = &model.Catalog{}
	}
	view := &model.CatalogView{
		CPUs:         make([]*model.CPUItem, 0, len(c.CPUs)),
		Motherboards: make([]*model.MotherboardItem, 0, len(c.Motherboards)),
		RAMKits:      make([]*model.RAMItem, 0, len(c.RAM)),
		GPUs:         make([]*model.GPUItem, 0, len(c.GPUs)),
		PSUs:         make([]*model.PSUItem, 0, len(c.PSUs)),
		Cases:        make([]*model.CaseItem, 0, len(c.Cases)),
		Meta:         c.Compat,
	}
	for _, cpu := range c.CPUs {
		if cpu != nil {
			view.CPUs = append(view.CPUs, MapCPU(cpu))
		}
	}
	for _, mobo := range c.Motherboards {
		if mobo != nil {
			view.Motherboards = append(view.Motherboards, MapMotherboard(mobo))
		}
	}
	for _, ram := range c.RAM {
		if ram != nil {
			view.RAMKits = append(view.RAMKits, MapRAM(ram))
		}
	}
	for _, gpu := range c.GPUs {
		if gpu != nil {
			view.GPUs = append(view.GPUs, MapGPU(gpu))
		}
	}
	for _, psu := range c.PSUs {
		if psu != nil {
			view.PSUs = append(view.PSUs, MapPSU(psu))
		}
	}
	for _, pcCase := range c.Cases {
		if pcCase != nil {
			view.Cases = append(view.Cases, MapCase(pcCase))
		}
	}
	return view
}

func MapCPU(cpu *model.CPUComponent) *model.CPUItem {
	socket := normalize.InferSocket(cpu.Name, cpu.Socket)
	types := normalize.MemoryTypes(cpu.MemorySupport.Types, "")
	memType := ""
	if len(types) > 0 {
		memType = types[0]
	} else {
		memType = normalize.InferMemoryTypeBySocket(socket)
	}
	return &model.CPUItem{
		ID:            cpu.ID,
		Name:          cpu.Name,
		Brand:         InferBrand(cpu.Brand, cpu.Name),
		Family:        ExtractCPUFamily(cpu.Name),
		Socket:        socket,
		MemoryType:    memType,
		MemoryTypes:   types,
		TDP:           cpu.TDPW,
		Cores:         cpu.Cores,
		BoostClockGHz: cpu.BoostClockGHz,
	}
}

// MapMotherboard 内存类型：字段 → 名称中的 ddrN → 插槽族
func MapMotherboard(mobo *model.MotherboardComponent) *model.MotherboardItem {
	memType := strings.ToUpper(strings.TrimSpace(mobo.MemoryType))
	if memType == "" {
		memType = MemoryTypeFromName(mobo.Name)
	}
	if memType == "" {
		memType = normalize.InferMemoryTypeBySocket(mobo.Socket)
	}
	return &model.MotherboardItem{
		ID:                mobo.ID,
		Name:              mobo.Name,
		Socket:            mobo.Socket,
		FormFactor:        mobo.FormFactor,
		MemoryType:        memType,
		MemorySlots:       mobo.MemorySlots,
		MaxMemoryGB:       mobo.MaxMemoryGB,
		MaxMemorySpeedMTS: mobo.MaxMemorySpeedMTS,
	}
}

func MapRAM(ram *model.RAMComponent) *model.RAMItem {
	return &model.RAMItem{
		ID:         ram.ID,
		Name:       ram.Name,
		Type:       normalize.RAMType(ram.Type, nil),
		Speed:      ram.SpeedMTS,
		Modules:    ram.Modules,
		CapacityGB: ram.CapacityGBTotal,
	}
}

// MapGPU psuMin 取合并阶段算出的推荐值，缺失时退回厂商建议值
func MapGPU(gpu *model.GPUComponent) *model.GPUItem {
	psuMin := normalize.Positive(gpu.RecommendedPSUW)
	if psuMin == nil {
		psuMin = normalize.Positive(gpu.SuggestedPSUW)
	}
	return &model.GPUItem{
		ID:              gpu.ID,
		Name:            gpu.Name,
		TDP:             gpu.TDPW,
		VRAMGB:          gpu.VRAMGB,
		Length:          gpu.BoardLengthMM,
		PSUMin:          psuMin,
		SuggestedPSU:    gpu.SuggestedPSUW,
		PowerConnectors: gpu.PowerConnectors,
	}
}

func MapPSU(psu *model.PSUComponent) *model.PSUItem {
	var conns map[string]int
	if psu.PCIePowerConns != nil {
		conns = make(map[string]int, len(psu.PCIePowerConns))
		for k, v := range psu.PCIePowerConns {
			conns[k] = v
		}
	}
	var cables *int
	if n := conns["8_pin"]; n > 0 {
		cables = &n
	}
	return &model.PSUItem{
		ID:                  psu.ID,
		Name:                psu.Name,
		Wattage:             psu.WattageW,
		PCIeCables:          cables,
		PCIePowerConnectors: conns,
	}
}

func MapCase(pcCase *model.CaseComponent) *model.CaseItem {
	ffs := make([]string, len(pcCase.SupportedMoboFormFactors))
	copy(ffs, pcCase.SupportedMoboFormFactors)
	return &model.CaseItem{
		ID:           pcCase.ID,
		Name:         pcCase.Name,
		MaxGPULength: pcCase.MaxGPULengthMM,
		CoolerHeight: pcCase.MaxCPUCoolerHeightMM,
		FormFactors:  ffs,
	}
}

// BuildTierMaps 以 meta 中的档位表为准；meta 中没有的 ID 按视图中的规格现算
func BuildTierMaps(view *model.CatalogView) model.TierMaps {
	maps := model.TierMaps{CPU: map[string]int{}, GPU: map[string]int{}}
	if view == nil {
		return maps
	}
	if view.Meta != nil {
		for _, e := range view.Meta.Tiers.CPU {
			maps.CPU[e.ID] = e.Tier
		}
		for _, e := range view.Meta.Tiers.GPU {
			maps.GPU[e.ID] = e.Tier
		}
	}
	for _, cpu := range view.CPUs {
		if _, ok := maps.CPU[cpu.ID]; !ok {
			maps.CPU[cpu.ID] = tier.CPU(tier.CPUInputs{Cores: cpu.Cores, BoostClockGHz: cpu.BoostClockGHz})
		}
	}
	for _, gpu := range view.GPUs {
		if _, ok := maps.GPU[gpu.ID]; !ok {
			maps.GPU[gpu.ID] = tier.GPU(tier.GPUInputs{TDPW: gpu.TDP, VRAMGB: gpu.VRAMGB})
		}
	}
	return maps
}
