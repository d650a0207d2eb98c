package catalog

import (
	"fmt"

	"PCQuote/internal/model"
)

// Index 加载后的视图 + 按 ID 查找表 + 档位表，构建后只读
type Index struct {
	View  *model.CatalogView
	Tiers model.TierMaps

	cpus   map[string]*model.CPUItem
	mobos  map[string]*model.MotherboardItem
	ram    map[string]*model.RAMItem
	gpus   map[string]*model.GPUItem
	psus   map[string]*model.PSUItem
	pcCase map[string]*model.CaseItem
}

// NewIndex 映射目录并建立查找表；ID 重复时保留先出现的
func NewIndex(c *model.Catalog) *Index {
	view := MapCatalog(c)
	idx := &Index{
		View:   view,
		Tiers:  BuildTierMaps(view),
		cpus:   make(map[string]*model.CPUItem, len(view.CPUs)),
		mobos:  make(map[string]*model.MotherboardItem, len(view.Motherboards)),
		ram:    make(map[string]*model.RAMItem, len(view.RAMKits)),
		gpus:   make(map[string]*model.GPUItem, len(view.GPUs)),
		psus:   make(map[string]*model.PSUItem, len(view.PSUs)),
		pcCase: make(map[string]*model.CaseItem, len(view.Cases)),
	}
	for _, it := range view.CPUs {
		putFirst(idx.cpus, it.ID, it)
	}
	for _, it := range view.Motherboards {
		putFirst(idx.mobos, it.ID, it)
	}
	for _, it := range view.RAMKits {
		putFirst(idx.ram, it.ID, it)
	}
	for _, it := range view.GPUs {
		putFirst(idx.gpus, it.ID, it)
	}
	for _, it := range view.PSUs {
		putFirst(idx.psus, it.ID, it)
	}
	for _, it := range view.Cases {
		putFirst(idx.pcCase, it.ID, it)
	}
	return idx
}

func putFirst[T any](m map[string]T, id string, v T) {
	if _, ok := m[id]; !ok {
		m[id] = v
	}
}

func lookup[T any](m map[string]*T, cat model.Category, id string) (*T, error) {
	if id == "" {
		return nil, nil
	}
	v, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s %q", model.ErrComponentNotFound, cat, id)
	}
	return v, nil
}

// Selection 把以 ID 描述的选择解析为组件；空 ID 表示该类别未选
func (idx *Index) Selection(req model.SelectionRequest) (model.Selection, error) {
	var sel model.Selection
	var err error
	if sel.CPU, err = lookup(idx.cpus, model.CategoryCPU, req.CPUID); err != nil {
		return model.Selection{}, err
	}
	if sel.Motherboard, err = lookup(idx.mobos, model.CategoryMotherboard, req.MotherboardID); err != nil {
		return model.Selection{}, err
	}
	if sel.RAM, err = lookup(idx.ram, model.CategoryRAM, req.RAMID); err != nil {
		return model.Selection{}, err
	}
	if sel.GPU, err = lookup(idx.gpus, model.CategoryGPU, req.GPUID); err != nil {
		return model.Selection{}, err
	}
	if sel.PSU, err = lookup(idx.psus, model.CategoryPSU, req.PSUID); err != nil {
		return model.Selection{}, err
	}
	if sel.Case, err = lookup(idx.pcCase, model.CategoryCase, req.CaseID); err != nil {
		return model.Selection{}, err
	}
	return sel, nil
}

// Items 某类别的扁平列表；coolers/fans 不在视图中
func (idx *Index) Items(cat model.Category) (any, error) {
	switch cat {
	case model.CategoryCPU:
		return idx.View.CPUs, nil
	case model.CategoryMotherboard:
		return idx.View.Motherboards, nil
	case model.CategoryRAM:
		return idx.View.RAMKits, nil
	case model.CategoryGPU:
		return idx.View.GPUs, nil
	case model.CategoryPSU:
		return idx.View.PSUs, nil
	case model.CategoryCase:
		return idx.View.Cases, nil
	}
	return nil, fmt.Errorf("%w: %s", model.ErrUnknownCategory, cat)
}
