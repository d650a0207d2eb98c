package model

// 以下为 Catalog Mapper 输出的扁平视图，评估器与前端只消费这些结构

type CPUItem struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Brand         string   `json:"brand"`
	Family        string   `json:"family"`
	Socket        string   `json:"socket"`
	MemoryType    string   `json:"memoryType"`
	MemoryTypes   []string `json:"memoryTypes"` // CPU 声明支持的全部内存类型
	TDP           *float64 `json:"tdp"`
	Cores         *float64 `json:"cores"`
	BoostClockGHz *float64 `json:"boostClockGhz"`
}

type MotherboardItem struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Socket            string   `json:"socket"`
	FormFactor        string   `json:"formFactor"`
	MemoryType        string   `json:"memoryType"`
	MemorySlots       *float64 `json:"memorySlots"`
	MaxMemoryGB       *float64 `json:"maxMemoryGb"`
	MaxMemorySpeedMTS *float64 `json:"maxMemorySpeed"`
}

type RAMItem struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Speed      *float64 `json:"speed"`
	Modules    *float64 `json:"modules"`
	CapacityGB *float64 `json:"capacityGb"`
}

type GPUItem struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	TDP             *float64 `json:"tdp"`
	VRAMGB          *float64 `json:"vramGb"`
	Length          *float64 `json:"length"`
	PSUMin          *float64 `json:"psuMin"` // recommended_psu_w，缺失时退回 suggested_psu_w
	SuggestedPSU    *float64 `json:"suggestedPsu"`
	PowerConnectors string   `json:"powerConnectors"`
}

type PSUItem struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Wattage             *float64       `json:"wattage"`
	PCIeCables          *int           `json:"pcieCables"`
	PCIePowerConnectors map[string]int `json:"pcie_power_connectors"`
}

type CaseItem struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MaxGPULength *float64 `json:"maxGpuLength"`
	CoolerHeight *float64 `json:"coolerHeight"`
	FormFactors  []string `json:"formFactors"`
}

// CatalogView 加载时映射后的目录（空类别为空切片而非 nil）
type CatalogView struct {
	CPUs         []*CPUItem         `json:"cpus"`
	Motherboards []*MotherboardItem `json:"motherboards"`
	RAMKits      []*RAMItem         `json:"ramKits"`
	GPUs         []*GPUItem         `json:"gpus"`
	PSUs         []*PSUItem         `json:"psus"`
	Cases        []*CaseItem        `json:"pcCases"`
	Meta         *CompatibilityMeta `json:"meta"`
}

// TierMaps id -> 档位
type TierMaps struct {
	CPU map[string]int
	GPU map[string]int
}
