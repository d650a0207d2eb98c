// Package dbgpu GPU 规格数据集，支持 JSON 与 CSV 两种导出
package dbgpu

import (
	"context"

	"PCQuote/internal/adapter"
	"PCQuote/internal/interfaces"
	"PCQuote/internal/model"
	"PCQuote/internal/utils/fileloader"
	"PCQuote/internal/utils/normalize"

	"github.com/sirupsen/logrus"
)

func init() {
	adapter.Register(model.SourceDBGPU, NewDBGPUAdapter)
}

type Adapter struct {
	dir    string
	loader *fileloader.Loader
	logger *logrus.Logger
}

func NewDBGPUAdapter(dir string, loader *fileloader.Loader, logger *logrus.Logger) interfaces.SourceAdapter {
	return &Adapter{dir: dir, loader: loader, logger: logger}
}

func (a *Adapter) Name() model.SourceTag {
	return model.SourceDBGPU
}

func (a *Adapter) Load(ctx context.Context) ([]*model.RawComponentRecord, error) {
	items, errs := a.loader.ReadDir(model.SourceDBGPU, a.dir, ".json")
	adapter.LogReadErrors(a.logger, model.SourceDBGPU, errs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	csvItems, errs := a.loader.ReadDir(model.SourceDBGPU, a.dir, ".csv")
	adapter.LogReadErrors(a.logger, model.SourceDBGPU, errs)
	items = append(items, csvItems...)

	records := make([]*model.RawComponentRecord, 0, len(items))
	for _, item := range items {
		records = append(records, ConvertGPU(item))
	}
	a.logger.WithFields(logrus.Fields{
		"source": model.SourceDBGPU,
		"gpus":   len(records),
	}).Info("来源读取完成")
	return records, nil
}

// ConvertGPU 单条 GPU 记录；匹配键用 品牌 + 芯片型号
func ConvertGPU(item fileloader.Item) *model.RawComponentRecord {
	brand := normalize.Str(item, "brand", "manufacturer")
	mdl := normalize.Str(item, "model", "name", "gpu_name")

	id := normalize.Str(item, "id")
	if id == "" {
		id = normalize.Slug(mdl)
	}

	return &model.RawComponentRecord{
		Source:        model.SourceDBGPU,
		Category:      model.CategoryGPU,
		ID:            id,
		Brand:         brand,
		Model:         mdl,
		NormalizedKey: normalize.NormalizedKey(brand, normalize.Str(item, "chipset", "model", "gpu_name")),
		GPU: &model.GPUSpec{
			Chipset:         normalize.Str(item, "chipset", "gpu_name"),
			VRAMGB:          normalize.Num(item, "vram_gb", "vram", "memory_size_gb"),
			VRAMType:        normalize.Str(item, "vram_type", "memory_type"),
			TDPW:            normalize.Num(item, "tdp_w", "tdp", "thermal_design_power_w"),
			SuggestedPSUW:   normalize.Num(item, "suggested_psu_w"),
			BoardLengthMM:   normalize.Num(item, "board_length_mm", "length_mm"),
			BoardSlotWidth:  normalize.Num(item, "board_slot_width"),
			PowerConnectors: normalize.Str(item, "power_connectors", "power"),
			Architecture:    normalize.Str(item, "architecture"),
		},
	}
}
