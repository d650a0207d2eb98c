// Package buildcores 人工整理的 open-db 数据集（CPU、内存），合并时优先级最高
package buildcores

import (
	"context"
	"path/filepath"

	"PCQuote/internal/adapter"
	"PCQuote/internal/interfaces"
	"PCQuote/internal/model"
	"PCQuote/internal/utils/fileloader"
	"PCQuote/internal/utils/normalize"

	"github.com/sirupsen/logrus"
)

func init() {
	adapter.Register(model.SourceBuildCores, NewBuildCoresAdapter)
}

type Adapter struct {
	dir    string
	loader *fileloader.Loader
	logger *logrus.Logger
}

func NewBuildCoresAdapter(dir string, loader *fileloader.Loader, logger *logrus.Logger) interfaces.SourceAdapter {
	return &Adapter{dir: dir, loader: loader, logger: logger}
}

func (a *Adapter) Name() model.SourceTag {
	return model.SourceBuildCores
}

// Load 读取 CPU/ 与 RAM/ 下全部 JSON
func (a *Adapter) Load(ctx context.Context) ([]*model.RawComponentRecord, error) {
	cpuItems, errs := a.loader.ReadDir(model.SourceBuildCores, filepath.Join(a.dir, "CPU"), ".json")
	adapter.LogReadErrors(a.logger, model.SourceBuildCores, errs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ramItems, errs := a.loader.ReadDir(model.SourceBuildCores, filepath.Join(a.dir, "RAM"), ".json")
	adapter.LogReadErrors(a.logger, model.SourceBuildCores, errs)

	records := make([]*model.RawComponentRecord, 0, len(cpuItems)+len(ramItems))
	for _, item := range cpuItems {
		records = append(records, ConvertCPU(item))
	}
	for _, item := range ramItems {
		records = append(records, ConvertRAM(item))
	}
	a.logger.WithFields(logrus.Fields{
		"source": model.SourceBuildCores,
		"cpus":   len(cpuItems),
		"ram":    len(ramItems),
	}).Info("来源读取完成")
	return records, nil
}

func localID(item fileloader.Item, keys ...string) string {
	if id := normalize.Str(item, keys...); id != "" {
		return id
	}
	return normalize.Slug(normalize.Str(item, "name", "model"))
}

// ConvertCPU 单条 CPU 原始记录 → RawComponentRecord
func ConvertCPU(item fileloader.Item) *model.RawComponentRecord {
	brand := normalize.Str(item, "brand", "manufacturer")
	mdl := normalize.Str(item, "model", "name")

	support := model.MemorySupport{
		Types:       normalize.MemoryTypes(nil, normalize.Str(item, "memory_type")),
		MaxSpeedMTS: normalize.Num(item, "memory_speed"),
	}
	if ms, ok := item["memory_support"].(map[string]any); ok {
		support.Types = normalize.MemoryTypes(ms["types"], normalize.Str(item, "memory_type"))
		if speed := normalize.Num(ms, "max_speed_mts"); speed != nil {
			support.MaxSpeedMTS = speed
		}
	}

	return &model.RawComponentRecord{
		Source:        model.SourceBuildCores,
		Category:      model.CategoryCPU,
		ID:            localID(item, "id", "slug"),
		Brand:         brand,
		Model:         mdl,
		NormalizedKey: normalize.NormalizedKey(brand, mdl),
		CPU: &model.CPUSpec{
			Socket:        normalize.Str(item, "socket", "socket_name"),
			TDPW:          normalize.Num(item, "tdp", "tdp_w"),
			Cores:         normalize.Num(item, "cores"),
			Threads:       normalize.Num(item, "threads"),
			BaseClockGHz:  normalize.Num(item, "base_clock_ghz", "base_clock"),
			BoostClockGHz: normalize.Num(item, "boost_clock_ghz", "boost_clock"),
			MemorySupport: support,
		},
	}
}

// ConvertRAM 单条内存原始记录 → RawComponentRecord
func ConvertRAM(item fileloader.Item) *model.RawComponentRecord {
	brand := normalize.Str(item, "brand", "manufacturer")
	mdl := normalize.Str(item, "model", "name")

	speed := normalize.Num(item, "speed_mts")
	if speed == nil {
		speed = normalize.RAMSpeed(item["speed"])
	}

	return &model.RawComponentRecord{
		Source:        model.SourceBuildCores,
		Category:      model.CategoryRAM,
		ID:            localID(item, "id"),
		Brand:         brand,
		Model:         mdl,
		NormalizedKey: normalize.NormalizedKey(brand, mdl),
		RAM: &model.RAMSpec{
			Type:            normalize.RAMType(normalize.Str(item, "type", "memory_type"), item["speed"]),
			CapacityGBTotal: normalize.Num(item, "capacity_gb", "capacity"),
			Modules:         normalize.Num(item, "modules"),
			SpeedMTS:        speed,
			CASLatency:      normalize.Num(item, "cas_latency", "cl"),
		},
	}
}
