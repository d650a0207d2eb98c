package service

import (
	"math"
	"strings"

	"PCQuote/internal/model"
	"PCQuote/internal/utils/normalize"

	"github.com/sirupsen/logrus"
)

// 冲突标记
const (
	FlagCPUTDPConflict = "cpu_tdp_conflict"
	FlagGPUTDPConflict = "gpu_tdp_conflict"
	FlagIDCollision    = "id_collision"
)

// 质量分
const (
	qualityAgreed      = 0.9 // 至少两个来源且无冲突
	qualitySingle      = 0.8
	qualityLowConfKind = 0.7 // 散热器、风扇数据本身可信度较低
)

// MergeService 把一个簇合并为一条规范化组件：逐字段按来源优先级取值，TDP 分歧只标记不阻断
type MergeService struct {
	table     PrecedenceTable
	tolerance float64
	logger    *logrus.Logger
}

func NewMergeService(table PrecedenceTable, toleranceW float64, logger *logrus.Logger) *MergeService {
	return &MergeService{table: table, tolerance: toleranceW, logger: logger}
}

func (s *MergeService) resolver(cluster *model.RecordCluster) resolver {
	return resolver{table: s.table, cluster: cluster}
}

func empty(cluster *model.RecordCluster) bool {
	return cluster == nil || len(cluster.Records) == 0
}

// base 公共字段；ID 为 "<category>_" + slug(brand model)，冲突由 AssignIDs 处理
func (s *MergeService) base(cluster *model.RecordCluster, r resolver) model.ComponentBase {
	p := r.primary()
	name := strings.TrimSpace(p.Brand + " " + p.Model)

	sources := make(map[string]string)
	for _, rec := range cluster.Records {
		key := string(rec.Source) + "_id"
		if _, ok := sources[key]; !ok && rec.ID != "" {
			sources[key] = rec.ID
		}
	}

	return model.ComponentBase{
		ID:       string(cluster.Category) + "_" + normalize.Slug(name),
		Name:     name,
		Brand:    p.Brand,
		Model:    p.Model,
		Category: cluster.Category,
		Sources:  sources,
		Meta: model.ComponentMeta{
			CreatedFrom:   cluster.Sources(),
			ConflictFlags: []string{},
		},
		NormalizedKey: cluster.NormalizedKey,
	}
}

// checkConflict 各来源首条记录的数值极差超过容差时追加冲突标记
func (s *MergeService) checkConflict(b *model.ComponentBase, cluster *model.RecordCluster, flag string, get func(*model.RawComponentRecord) *float64) {
	diff, ok := spread(firstPerSource(cluster.Records), get)
	if !ok || diff <= s.tolerance {
		return
	}
	b.AddConflict(flag)
	s.logger.WithFields(logrus.Fields{
		"category":       cluster.Category,
		"normalized_key": cluster.NormalizedKey,
		"flag":           flag,
		"spread":         diff,
	}).Warn("来源数值不一致，按优先级取值")
}

// finish 计算质量分
func finish(b *model.ComponentBase) {
	switch {
	case b.Category == model.CategoryCooler || b.Category == model.CategoryFan:
		b.Meta.QualityScore = qualityLowConfKind
	case len(b.Meta.CreatedFrom) >= 2 && len(b.Meta.ConflictFlags) == 0:
		b.Meta.QualityScore = qualityAgreed
	default:
		b.Meta.QualityScore = qualitySingle
	}
}

func firstPerSource(records []*model.RawComponentRecord) []*model.RawComponentRecord {
	seen := make(map[model.SourceTag]bool)
	var out []*model.RawComponentRecord
	for _, r := range records {
		if seen[r.Source] {
			continue
		}
		seen[r.Source] = true
		out = append(out, r)
	}
	return out
}

// 记录规格访问：类别不符时返回空规格，取值自然为缺失

func cpuOf(r *model.RawComponentRecord) *model.CPUSpec {
	if r.CPU != nil {
		return r.CPU
	}
	return &model.CPUSpec{}
}

func gpuOf(r *model.RawComponentRecord) *model.GPUSpec {
	if r.GPU != nil {
		return r.GPU
	}
	return &model.GPUSpec{}
}

func moboOf(r *model.RawComponentRecord) *model.MotherboardSpec {
	if r.Motherboard != nil {
		return r.Motherboard
	}
	return &model.MotherboardSpec{}
}

func psuOf(r *model.RawComponentRecord) *model.PSUSpec {
	if r.PSU != nil {
		return r.PSU
	}
	return &model.PSUSpec{}
}

func caseOf(r *model.RawComponentRecord) *model.CaseSpec {
	if r.Case != nil {
		return r.Case
	}
	return &model.CaseSpec{}
}

func ramOf(r *model.RawComponentRecord) *model.RAMSpec {
	if r.RAM != nil {
		return r.RAM
	}
	return &model.RAMSpec{}
}

func coolerOf(r *model.RawComponentRecord) *model.CoolerSpec {
	if r.Cooler != nil {
		return r.Cooler
	}
	return &model.CoolerSpec{}
}

func fanOf(r *model.RawComponentRecord) *model.FanSpec {
	if r.Fan != nil {
		return r.Fan
	}
	return &model.FanSpec{}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func (s *MergeService) MergeCPU(cluster *model.RecordCluster) *model.CPUComponent {
	if empty(cluster) {
		return nil
	}
	r := s.resolver(cluster)
	tdp := func(x *model.RawComponentRecord) *float64 { return cpuOf(x).TDPW }
	out := &model.CPUComponent{
		ComponentBase: s.base(cluster, r),
		CPUSpec: model.CPUSpec{
			Socket:        r.str("socket", func(x *model.RawComponentRecord) string { return cpuOf(x).Socket }),
			TDPW:          r.num("tdp_w", tdp),
			Cores:         r.num("cores", func(x *model.RawComponentRecord) *float64 { return cpuOf(x).Cores }),
			Threads:       r.num("threads", func(x *model.RawComponentRecord) *float64 { return cpuOf(x).Threads }),
			BaseClockGHz:  r.num("base_clock_ghz", func(x *model.RawComponentRecord) *float64 { return cpuOf(x).BaseClockGHz }),
			BoostClockGHz: r.num("boost_clock_ghz", func(x *model.RawComponentRecord) *float64 { return cpuOf(x).BoostClockGHz }),
			MemorySupport: model.MemorySupport{
				Types:       r.strs("memory_support.types", func(x *model.RawComponentRecord) []string { return cpuOf(x).MemorySupport.Types }),
				MaxSpeedMTS: r.num("memory_support.max_speed_mts", func(x *model.RawComponentRecord) *float64 { return cpuOf(x).MemorySupport.MaxSpeedMTS }),
			},
		},
	}
	s.checkConflict(&out.ComponentBase, cluster, FlagCPUTDPConflict, tdp)
	finish(&out.ComponentBase)
	return out
}

// RecommendedPSU max(厂商建议, ceil((tdp + 75) * 1.3 + 50))
func RecommendedPSU(tdpW, suggestedW *float64) float64 {
	calc := math.Ceil((normalize.Value(tdpW)+75)*1.3 + 50)
	return math.Max(normalize.Value(suggestedW), calc)
}

func (s *MergeService) MergeGPU(cluster *model.RecordCluster) *model.GPUComponent {
	if empty(cluster) {
		return nil
	}
	r := s.resolver(cluster)
	tdp := func(x *model.RawComponentRecord) *float64 { return gpuOf(x).TDPW }
	base := s.base(cluster, r)
	chipset := r.str("chipset", func(x *model.RawComponentRecord) string { return gpuOf(x).Chipset })
	if base.Model == "" {
		base.Model = chipset
		base.Name = strings.TrimSpace(base.Brand + " " + chipset)
		base.ID = string(model.CategoryGPU) + "_" + normalize.Slug(base.Name)
	}
	if chipset == "" {
		chipset = base.Model
	}

	out := &model.GPUComponent{
		ComponentBase: base,
		GPUSpec: model.GPUSpec{
			Chipset:         chipset,
			VRAMGB:          r.num("vram_gb", func(x *model.RawComponentRecord) *float64 { return gpuOf(x).VRAMGB }),
			VRAMType:        r.str("vram_type", func(x *model.RawComponentRecord) string { return gpuOf(x).VRAMType }),
			TDPW:            r.num("tdp_w", tdp),
			SuggestedPSUW:   r.num("suggested_psu_w", func(x *model.RawComponentRecord) *float64 { return gpuOf(x).SuggestedPSUW }),
			BoardLengthMM:   r.num("board_length_mm", func(x *model.RawComponentRecord) *float64 { return gpuOf(x).BoardLengthMM }),
			BoardSlotWidth:  r.num("board_slot_width", func(x *model.RawComponentRecord) *float64 { return gpuOf(x).BoardSlotWidth }),
			PowerConnectors: r.str("power_connectors", func(x *model.RawComponentRecord) string { return gpuOf(x).PowerConnectors }),
			Architecture:    r.str("architecture", func(x *model.RawComponentRecord) string { return gpuOf(x).Architecture }),
		},
	}
	out.RecommendedPSUW = normalize.Float(RecommendedPSU(out.TDPW, out.SuggestedPSUW))
	s.checkConflict(&out.ComponentBase, cluster, FlagGPUTDPConflict, tdp)
	finish(&out.ComponentBase)
	return out
}

func (s *MergeService) MergeMotherboard(cluster *model.RecordCluster) *model.MotherboardComponent {
	if empty(cluster) {
		return nil
	}
	r := s.resolver(cluster)
	out := &model.MotherboardComponent{
		ComponentBase: s.base(cluster, r),
		MotherboardSpec: model.MotherboardSpec{
			Socket:            r.str("socket", func(x *model.RawComponentRecord) string { return moboOf(x).Socket }),
			Chipset:           r.str("chipset", func(x *model.RawComponentRecord) string { return moboOf(x).Chipset }),
			FormFactor:        r.str("form_factor", func(x *model.RawComponentRecord) string { return moboOf(x).FormFactor }),
			MemoryType:        r.str("memory_type", func(x *model.RawComponentRecord) string { return moboOf(x).MemoryType }),
			MemorySlots:       r.num("memory_slots", func(x *model.RawComponentRecord) *float64 { return moboOf(x).MemorySlots }),
			MaxMemoryGB:       r.num("max_memory_gb", func(x *model.RawComponentRecord) *float64 { return moboOf(x).MaxMemoryGB }),
			MaxMemorySpeedMTS: r.num("max_memory_speed_mts", func(x *model.RawComponentRecord) *float64 { return moboOf(x).MaxMemorySpeedMTS }),
			M2Slots:           r.num("m2_slots", func(x *model.RawComponentRecord) *float64 { return moboOf(x).M2Slots }),
			SATAPorts:         r.num("sata_ports", func(x *model.RawComponentRecord) *float64 { return moboOf(x).SATAPorts }),
		},
	}
	finish(&out.ComponentBase)
	return out
}

func (s *MergeService) MergePSU(cluster *model.RecordCluster) *model.PSUComponent {
	if empty(cluster) {
		return nil
	}
	r := s.resolver(cluster)
	conns := resolve(r, "pcie_power_connectors",
		func(x *model.RawComponentRecord) map[string]int { return psuOf(x).PCIePowerConns },
		func(m map[string]int) bool { return m != nil })
	var copied map[string]int
	if conns != nil {
		copied = make(map[string]int, len(conns))
		for k, v := range conns {
			copied[k] = v
		}
	}
	out := &model.PSUComponent{
		ComponentBase: s.base(cluster, r),
		PSUSpec: model.PSUSpec{
			WattageW:         r.num("wattage_w", func(x *model.RawComponentRecord) *float64 { return psuOf(x).WattageW }),
			FormFactor:       orDefault(r.str("form_factor", func(x *model.RawComponentRecord) string { return psuOf(x).FormFactor }), "ATX"),
			EfficiencyRating: r.str("efficiency_rating", func(x *model.RawComponentRecord) string { return psuOf(x).EfficiencyRating }),
			PCIePowerConns:   copied,
		},
	}
	finish(&out.ComponentBase)
	return out
}

func (s *MergeService) MergeCase(cluster *model.RecordCluster) *model.CaseComponent {
	if empty(cluster) {
		return nil
	}
	r := s.resolver(cluster)
	out := &model.CaseComponent{
		ComponentBase: s.base(cluster, r),
		CaseSpec: model.CaseSpec{
			SupportedMoboFormFactors: r.strs("supported_mobo_form_factors", func(x *model.RawComponentRecord) []string { return caseOf(x).SupportedMoboFormFactors }),
			MaxGPULengthMM:           r.num("max_gpu_length_mm", func(x *model.RawComponentRecord) *float64 { return caseOf(x).MaxGPULengthMM }),
			MaxCPUCoolerHeightMM:     r.num("max_cpu_cooler_height_mm", func(x *model.RawComponentRecord) *float64 { return caseOf(x).MaxCPUCoolerHeightMM }),
			PSUFormFactor:            orDefault(r.str("psu_form_factor", func(x *model.RawComponentRecord) string { return caseOf(x).PSUFormFactor }), "ATX"),
		},
	}
	finish(&out.ComponentBase)
	return out
}

func (s *MergeService) MergeRAM(cluster *model.RecordCluster) *model.RAMComponent {
	if empty(cluster) {
		return nil
	}
	r := s.resolver(cluster)
	out := &model.RAMComponent{
		ComponentBase: s.base(cluster, r),
		RAMSpec: model.RAMSpec{
			Type:            r.str("type", func(x *model.RawComponentRecord) string { return ramOf(x).Type }),
			CapacityGBTotal: r.num("capacity_gb_total", func(x *model.RawComponentRecord) *float64 { return ramOf(x).CapacityGBTotal }),
			Modules:         r.num("modules", func(x *model.RawComponentRecord) *float64 { return ramOf(x).Modules }),
			SpeedMTS:        r.num("speed_mts", func(x *model.RawComponentRecord) *float64 { return ramOf(x).SpeedMTS }),
			CASLatency:      r.num("cas_latency", func(x *model.RawComponentRecord) *float64 { return ramOf(x).CASLatency }),
		},
	}
	finish(&out.ComponentBase)
	return out
}

func (s *MergeService) MergeCooler(cluster *model.RecordCluster) *model.CoolerComponent {
	if empty(cluster) {
		return nil
	}
	r := s.resolver(cluster)
	out := &model.CoolerComponent{
		ComponentBase: s.base(cluster, r),
		CoolerSpec: model.CoolerSpec{
			Type:         orDefault(r.str("type", func(x *model.RawComponentRecord) string { return coolerOf(x).Type }), "air"),
			FanRPM:       r.num("fan_rpm", func(x *model.RawComponentRecord) *float64 { return coolerOf(x).FanRPM }),
			NoiseLevelDB: r.num("noise_level_db", func(x *model.RawComponentRecord) *float64 { return coolerOf(x).NoiseLevelDB }),
			SizeMM:       r.num("size_mm", func(x *model.RawComponentRecord) *float64 { return coolerOf(x).SizeMM }),
		},
	}
	finish(&out.ComponentBase)
	return out
}

func (s *MergeService) MergeFan(cluster *model.RecordCluster) *model.FanComponent {
	if empty(cluster) {
		return nil
	}
	r := s.resolver(cluster)
	out := &model.FanComponent{
		ComponentBase: s.base(cluster, r),
		FanSpec: model.FanSpec{
			SizeMM:       r.num("size_mm", func(x *model.RawComponentRecord) *float64 { return fanOf(x).SizeMM }),
			RPM:          r.num("rpm", func(x *model.RawComponentRecord) *float64 { return fanOf(x).RPM }),
			AirflowCFM:   r.num("airflow_cfm", func(x *model.RawComponentRecord) *float64 { return fanOf(x).AirflowCFM }),
			NoiseLevelDB: r.num("noise_level_db", func(x *model.RawComponentRecord) *float64 { return fanOf(x).NoiseLevelDB }),
			PWM:          resolve(r, "pwm", func(x *model.RawComponentRecord) bool { return fanOf(x).PWM }, func(b bool) bool { return b }),
		},
	}
	finish(&out.ComponentBase)
	return out
}

// Merge 按簇类别分派；空簇返回 ErrEmptyCluster
func (s *MergeService) Merge(cluster *model.RecordCluster) (model.CanonicalComponent, error) {
	if empty(cluster) {
		return nil, model.ErrEmptyCluster
	}
	switch cluster.Category {
	case model.CategoryCPU:
		return s.MergeCPU(cluster), nil
	case model.CategoryGPU:
		return s.MergeGPU(cluster), nil
	case model.CategoryMotherboard:
		return s.MergeMotherboard(cluster), nil
	case model.CategoryPSU:
		return s.MergePSU(cluster), nil
	case model.CategoryCase:
		return s.MergeCase(cluster), nil
	case model.CategoryRAM:
		return s.MergeRAM(cluster), nil
	case model.CategoryCooler:
		return s.MergeCooler(cluster), nil
	case model.CategoryFan:
		return s.MergeFan(cluster), nil
	}
	return nil, model.ErrUnknownCategory
}

// MergeAll 所有类别逐簇合并，组件顺序与簇顺序一致；集合永不为 nil
func (s *MergeService) MergeAll(link *LinkResult) *model.Catalog {
	c := &model.Catalog{
		CPUs:         []*model.CPUComponent{},
		GPUs:         []*model.GPUComponent{},
		Motherboards: []*model.MotherboardComponent{},
		PSUs:         []*model.PSUComponent{},
		Cases:        []*model.CaseComponent{},
		RAM:          []*model.RAMComponent{},
		Coolers:      []*model.CoolerComponent{},
		Fans:         []*model.FanComponent{},
	}
	for _, cat := range model.AllCategories {
		for _, cluster := range link.Clusters[cat] {
			merged, err := s.Merge(cluster)
			if err != nil {
				continue
			}
			switch v := merged.(type) {
			case *model.CPUComponent:
				c.CPUs = append(c.CPUs, v)
			case *model.GPUComponent:
				c.GPUs = append(c.GPUs, v)
			case *model.MotherboardComponent:
				c.Motherboards = append(c.Motherboards, v)
			case *model.PSUComponent:
				c.PSUs = append(c.PSUs, v)
			case *model.CaseComponent:
				c.Cases = append(c.Cases, v)
			case *model.RAMComponent:
				c.RAM = append(c.RAM, v)
			case *model.CoolerComponent:
				c.Coolers = append(c.Coolers, v)
			case *model.FanComponent:
				c.Fans = append(c.Fans, v)
			}
		}
	}
	return c
}
