// Package pcpart 社区维护的 pc-part-dataset，每个类别一个 JSON 文件，名称首词为品牌
package pcpart

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
	adapter.Register(model.SourcePCPart, NewPCPartAdapter)
}

// converter 单个类别的字段映射
type converter func(item fileloader.Item, base model.RawComponentRecord) *model.RawComponentRecord

// files 数据集文件名 → 类别及其映射，按类别固定顺序
var files = []struct {
	name     string
	category model.Category
	convert  converter
}{
	{"cpu.json", model.CategoryCPU, convertCPU},
	{"video-card.json", model.CategoryGPU, convertGPU},
	{"motherboard.json", model.CategoryMotherboard, convertMotherboard},
	{"power-supply.json", model.CategoryPSU, convertPSU},
	{"case.json", model.CategoryCase, convertCase},
	{"memory.json", model.CategoryRAM, convertRAM},
	{"cpu-cooler.json", model.CategoryCooler, convertCooler},
	{"case-fan.json", model.CategoryFan, convertFan},
}

type Adapter struct {
	dir    string
	loader *fileloader.Loader
	logger *logrus.Logger
}

func NewPCPartAdapter(dir string, loader *fileloader.Loader, logger *logrus.Logger) interfaces.SourceAdapter {
	return &Adapter{dir: dir, loader: loader, logger: logger}
}

func (a *Adapter) Name() model.SourceTag {
	return model.SourcePCPart
}

func (a *Adapter) Load(ctx context.Context) ([]*model.RawComponentRecord, error) {
	var records []*model.RawComponentRecord
	counts := logrus.Fields{"source": model.SourcePCPart}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		items, err := a.loader.ReadOptionalJSON(model.SourcePCPart, filepath.Join(a.dir, f.name))
		if err != nil {
			adapter.LogReadErrors(a.logger, model.SourcePCPart, []error{err})
			continue
		}
		for _, item := range items {
			records = append(records, Convert(f.category, item))
		}
		counts[string(f.category)] = len(items)
	}
	a.logger.WithFields(counts).Info("来源读取完成")
	return records, nil
}

// Convert 按类别映射单条记录，公共字段由名称拆分得到
func Convert(category model.Category, item fileloader.Item) *model.RawComponentRecord {
	name := normalize.Str(item, "name")
	brand, mdl := normalize.SplitBrandModel(name)
	base := model.RawComponentRecord{
		Source:        model.SourcePCPart,
		Category:      category,
		ID:            normalize.Slug(name),
		Brand:         brand,
		Model:         mdl,
		NormalizedKey: normalize.NormalizedKey(brand, mdl),
	}
	for _, f := range files {
		if f.category == category {
			return f.convert(item, base)
		}
	}
	return &base
}

func convertCPU(item fileloader.Item, rec model.RawComponentRecord) *model.RawComponentRecord {
	cores := normalize.Num(item, "core_count")
	var threads *float64
	if cores != nil {
		threads = normalize.Float(*cores * 2)
	}
	rec.CPU = &model.CPUSpec{
		Socket:        normalize.Str(item, "socket", "socket_type"),
		TDPW:          normalize.Num(item, "tdp"),
		Cores:         cores,
		Threads:       threads,
		BaseClockGHz:  normalize.Num(item, "core_clock"),
		BoostClockGHz: normalize.Num(item, "boost_clock"),
		MemorySupport: model.MemorySupport{
			Types: normalize.MemoryTypes(nil, normalize.Str(item, "memory_type")),
		},
	}
	return &rec
}

func convertGPU(item fileloader.Item, rec model.RawComponentRecord) *model.RawComponentRecord {
	chipset := normalize.Str(item, "chipset")
	if chipset == "" {
		chipset = rec.Model
	}
	rec.GPU = &model.GPUSpec{
		Chipset:         chipset,
		VRAMGB:          normalize.Num(item, "memory", "memory_size_gb"),
		VRAMType:        normalize.Str(item, "memory_type"),
		TDPW:            normalize.Num(item, "tdp"),
		SuggestedPSUW:   normalize.Num(item, "psu", "suggested_psu_w"),
		BoardLengthMM:   normalize.Num(item, "length"),
		BoardSlotWidth:  normalize.Num(item, "slot_width"),
		PowerConnectors: normalize.Str(item, "power_connectors"),
	}
	return &rec
}

func convertMotherboard(item fileloader.Item, rec model.RawComponentRecord) *model.RawComponentRecord {
	rec.Motherboard = &model.MotherboardSpec{
		Socket:            normalize.Str(item, "socket"),
		Chipset:           normalize.Str(item, "chipset"),
		FormFactor:        normalize.Str(item, "form_factor", "type"),
		MemoryType:        normalize.RAMType(normalize.Str(item, "memory_type"), nil),
		MemorySlots:       normalize.Num(item, "memory_slots"),
		MaxMemoryGB:       normalize.Num(item, "max_memory"),
		MaxMemorySpeedMTS: normalize.Num(item, "max_memory_speed_mts", "max_memory_speed"),
		M2Slots:           normalize.Num(item, "m2_slots"),
		SATAPorts:         normalize.Num(item, "sata_ports"),
	}
	return &rec
}

func convertPSU(item fileloader.Item, rec model.RawComponentRecord) *model.RawComponentRecord {
	formFactor := normalize.Str(item, "type")
	if formFactor == "" {
		formFactor = "ATX"
	}
	// 未提供时保持 nil（未知）；显式写 0 的接口保留，用于判定不满足
	var conns map[string]int
	if raw, ok := item["pcie_power_connectors"].(map[string]any); ok {
		conns = make(map[string]int, len(raw))
		for k, v := range raw {
			if n := normalize.SafeNumber(v); n != nil && *n >= 0 {
				conns[k] = int(*n)
			}
		}
	}
	rec.PSU = &model.PSUSpec{
		WattageW:         normalize.Num(item, "wattage"),
		FormFactor:       formFactor,
		EfficiencyRating: normalize.Str(item, "efficiency"),
		PCIePowerConns:   conns,
	}
	return &rec
}

func convertCase(item fileloader.Item, rec model.RawComponentRecord) *model.RawComponentRecord {
	psuFormFactor := normalize.Str(item, "psu_form_factor")
	if psuFormFactor == "" {
		psuFormFactor = "ATX"
	}
	rec.Case = &model.CaseSpec{
		SupportedMoboFormFactors: normalize.CaseFormFactors(normalize.Str(item, "type")),
		MaxGPULengthMM:           normalize.Num(item, "max_gpu_length_mm", "gpu_length", "gpu_max_length"),
		MaxCPUCoolerHeightMM:     normalize.Num(item, "max_cpu_cooler_height_mm", "cpu_cooler", "cpu_cooler_height"),
		PSUFormFactor:            psuFormFactor,
	}
	return &rec
}

func convertRAM(item fileloader.Item, rec model.RawComponentRecord) *model.RawComponentRecord {
	// speed 通常为 [代数, 频率]，modules 为 [条数, 单条容量]
	ramType := normalize.RAMType("", item["speed"])
	if ramType == "" {
		ramType = normalize.RAMType(normalize.Str(item, "type", "memory_type"), nil)
	}

	var modules, capacity *float64
	if arr, ok := item["modules"].([]any); ok {
		modules = normalize.FirstNumber(arr)
		if len(arr) > 1 {
			if each := normalize.SafeNumber(arr[1]); modules != nil && each != nil {
				capacity = normalize.Float(*modules * *each)
			}
		}
	} else {
		modules = normalize.Num(item, "modules")
	}
	if capacity == nil {
		capacity = normalize.Num(item, "capacity_gb_total", "capacity_gb")
	}

	rec.RAM = &model.RAMSpec{
		Type:            ramType,
		CapacityGBTotal: capacity,
		Modules:         modules,
		SpeedMTS:        normalize.RAMSpeed(item["speed"]),
		CASLatency:      normalize.Num(item, "cas_latency", "first_word_latency", "cl"),
	}
	return &rec
}

func convertCooler(item fileloader.Item, rec model.RawComponentRecord) *model.RawComponentRecord {
	coolerType := normalize.Str(item, "type")
	if coolerType == "" {
		coolerType = "air"
	}
	rec.Cooler = &model.CoolerSpec{
		Type:         coolerType,
		FanRPM:       normalize.LastNumber(item["rpm"]),
		NoiseLevelDB: normalize.LastNumber(item["noise_level"]),
		SizeMM:       normalize.Num(item, "size"),
	}
	return &rec
}

func convertFan(item fileloader.Item, rec model.RawComponentRecord) *model.RawComponentRecord {
	pwm, _ := item["pwm"].(bool)
	rec.Fan = &model.FanSpec{
		SizeMM:       normalize.Num(item, "size"),
		RPM:          normalize.LastNumber(item["rpm"]),
		AirflowCFM:   normalize.LastNumber(item["airflow"]),
		NoiseLevelDB: normalize.LastNumber(item["noise_level"]),
		PWM:          pwm,
	}
	return &rec
}
