package model

import "time"

// ComponentMeta 合并溯源信息
type ComponentMeta struct {
	CreatedFrom   []SourceTag `json:"created_from"`
	ConflictFlags []string    `json:"conflict_flags"`
	QualityScore  float64     `json:"quality_score"`
}

// ComponentBase 所有规范化组件共有字段
// ID 即 canonical_id："<category>_" + slug(brand + " " + model)
type ComponentBase struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Brand         string            `json:"brand"`
	Model         string            `json:"model"`
	Category      Category          `json:"category"`
	Sources       map[string]string `json:"sources"` // 来源名 -> 来源内部 ID
	Meta          ComponentMeta     `json:"meta"`
	NormalizedKey string            `json:"normalized_key"`
}

// Base 供流水线通用处理（ID 分配、计数）
func (b *ComponentBase) Base() *ComponentBase { return b }

// AddConflict 追加冲突标记（去重）
func (b *ComponentBase) AddConflict(flag string) {
	for _, f := range b.Meta.ConflictFlags {
		if f == flag {
			return
		}
	}
	b.Meta.ConflictFlags = append(b.Meta.ConflictFlags, flag)
}

// CanonicalComponent 任意类别的规范化组件
type CanonicalComponent interface {
	Base() *ComponentBase
}

// 每个类别的规范化组件：公共字段 + 类别规格，JSON 扁平输出

type CPUComponent struct {
	ComponentBase
	CPUSpec
}

type GPUComponent struct {
	ComponentBase
	GPUSpec
}

type MotherboardComponent struct {
	ComponentBase
	MotherboardSpec
}

type PSUComponent struct {
	ComponentBase
	PSUSpec
}

type CaseComponent struct {
	ComponentBase
	CaseSpec
}

type RAMComponent struct {
	ComponentBase
	RAMSpec
}

type CoolerComponent struct {
	ComponentBase
	CoolerSpec
}

type FanComponent struct {
	ComponentBase
	FanSpec
}

// Catalog 一次流水线运行产出的全部规范化集合
type Catalog struct {
	CPUs         []*CPUComponent         `json:"cpus"`
	GPUs         []*GPUComponent         `json:"gpus"`
	Motherboards []*MotherboardComponent `json:"motherboards"`
	PSUs         []*PSUComponent         `json:"psus"`
	Cases        []*CaseComponent        `json:"cases"`
	RAM          []*RAMComponent         `json:"ram"`
	Coolers      []*CoolerComponent      `json:"coolers"`
	Fans         []*FanComponent         `json:"fans"`
	Compat       *CompatibilityMeta      `json:"compat,omitempty"`
}

// Components 按类别返回通用视图，顺序与集合一致
func (c *Catalog) Components(cat Category) []CanonicalComponent {
	var out []CanonicalComponent
	switch cat {
	case CategoryCPU:
		for _, x := range c.CPUs {
			out = append(out, x)
		}
	case CategoryGPU:
		for _, x := range c.GPUs {
			out = append(out, x)
		}
	case CategoryMotherboard:
		for _, x := range c.Motherboards {
			out = append(out, x)
		}
	case CategoryPSU:
		for _, x := range c.PSUs {
			out = append(out, x)
		}
	case CategoryCase:
		for _, x := range c.Cases {
			out = append(out, x)
		}
	case CategoryRAM:
		for _, x := range c.RAM {
			out = append(out, x)
		}
	case CategoryCooler:
		for _, x := range c.Coolers {
			out = append(out, x)
		}
	case CategoryFan:
		for _, x := range c.Fans {
			out = append(out, x)
		}
	}
	return out
}

// Range 数值范围；无数据时整体为 null
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type CategoryCounts struct {
	CPUs         int `json:"cpus"`
	GPUs         int `json:"gpus"`
	Motherboards int `json:"motherboards"`
	PSUs         int `json:"psus"`
	Cases        int `json:"cases"`
	RAM          int `json:"ram"`
	Coolers      int `json:"coolers"`
	Fans         int `json:"fans"`
}

type MetaRanges struct {
	CPUTDPW      *Range `json:"cpu_tdp_w"`
	GPUTDPW      *Range `json:"gpu_tdp_w"`
	GPULengthMM  *Range `json:"gpu_length_mm"`
	RAMSpeedMTS  *Range `json:"ram_speed_mts"`
	PSUWattageW  *Range `json:"psu_wattage_w"`
	CoolerSizeMM *Range `json:"cooler_size_mm"`
	FanSizeMM    *Range `json:"fan_size_mm"`
}

type SocketCount struct {
	Mobos int `json:"mobos"`
	CPUs  int `json:"cpus"`
}

type FormFactorCount struct {
	Cases int `json:"cases"`
	Mobos int `json:"mobos"`
}

// TierEntry 组件 ID 与性能档位（1-4）
type TierEntry struct {
	ID   string `json:"id"`
	Tier int    `json:"tier"`
}

type MetaTiers struct {
	CPU []TierEntry `json:"cpu"`
	GPU []TierEntry `json:"gpu"`
}

// CompatibilityMeta 每次运行生成一次的汇总，之后只读
type CompatibilityMeta struct {
	GeneratedAt time.Time                  `json:"generatedAt"`
	Counts      CategoryCounts             `json:"counts"`
	Ranges      MetaRanges                 `json:"ranges"`
	Sockets     map[string]SocketCount     `json:"sockets"`
	FormFactors map[string]FormFactorCount `json:"form_factors"`
	Tiers       MetaTiers                  `json:"tiers"`
	Notes       string                     `json:"notes"`
}
