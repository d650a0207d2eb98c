package model

// RawComponentRecord 所有来源归一化后的原始记录（抹平各数据集差异）
// Category 决定哪个规格指针非空，其余均为 nil。产出后不再修改
type RawComponentRecord struct {
	Source        SourceTag `json:"source"`
	Category      Category  `json:"category"`
	ID            string    `json:"id"` // 来源内部 ID
	Brand         string    `json:"brand"`
	Model         string    `json:"model"`
	NormalizedKey string    `json:"normalized_key"`

	CPU         *CPUSpec         `json:"cpu,omitempty"`
	GPU         *GPUSpec         `json:"gpu,omitempty"`
	Motherboard *MotherboardSpec `json:"motherboard,omitempty"`
	PSU         *PSUSpec         `json:"psu,omitempty"`
	Case        *CaseSpec        `json:"case,omitempty"`
	RAM         *RAMSpec         `json:"ram,omitempty"`
	Cooler      *CoolerSpec      `json:"cooler,omitempty"`
	Fan         *FanSpec         `json:"fan,omitempty"`
}

// RecordCluster 同一类别下 normalized_key 相同的一组原始记录，仅在一次流水线运行内存在
type RecordCluster struct {
	Category      Category
	NormalizedKey string
	Records       []*RawComponentRecord
}

// Sources 按首次出现顺序返回去重后的来源列表
func (c *RecordCluster) Sources() []SourceTag {
	seen := make(map[SourceTag]struct{}, len(c.Records))
	var out []SourceTag
	for _, r := range c.Records {
		if _, ok := seen[r.Source]; ok {
			continue
		}
		seen[r.Source] = struct{}{}
		out = append(out, r.Source)
	}
	return out
}

// MemorySupport CPU 支持的内存类型
type MemorySupport struct {
	Types       []string `json:"types"`
	MaxSpeedMTS *float64 `json:"max_speed_mts"`
}

type CPUSpec struct {
	Socket        string        `json:"socket"`
	TDPW          *float64      `json:"tdp_w"`
	Cores         *float64      `json:"cores"`
	Threads       *float64      `json:"threads"`
	BaseClockGHz  *float64      `json:"base_clock_ghz"`
	BoostClockGHz *float64      `json:"boost_clock_ghz"`
	MemorySupport MemorySupport `json:"memory_support"`
}

type GPUSpec struct {
	Chipset         string   `json:"chipset"`
	VRAMGB          *float64 `json:"vram_gb"`
	VRAMType        string   `json:"vram_type"`
	TDPW            *float64 `json:"tdp_w"`
	SuggestedPSUW   *float64 `json:"suggested_psu_w"`
	RecommendedPSUW *float64 `json:"recommended_psu_w,omitempty"` // 仅合并阶段计算
	BoardLengthMM   *float64 `json:"board_length_mm"`
	BoardSlotWidth  *float64 `json:"board_slot_width"`
	PowerConnectors string   `json:"power_connectors"` // 自由文本，如 "2x 8-pin"，由兼容性模块解析
	Architecture    string   `json:"architecture"`
}

type MotherboardSpec struct {
	Socket      string   `json:"socket"`
	Chipset     string   `json:"chipset"`
	FormFactor  string   `json:"form_factor"`
	MemoryType  string   `json:"memory_type"`
	MemorySlots *float64 `json:"memory_slots"`
	MaxMemoryGB *float64 `json:"max_memory_gb"`
	// 官方最高内存频率，多数数据集缺失
	MaxMemorySpeedMTS *float64 `json:"max_memory_speed_mts"`
	M2Slots           *float64 `json:"m2_slots"`
	SATAPorts         *float64 `json:"sata_ports"`
}

type PSUSpec struct {
	WattageW         *float64       `json:"wattage_w"`
	FormFactor       string         `json:"form_factor"`
	EfficiencyRating string         `json:"efficiency_rating"`
	PCIePowerConns   map[string]int `json:"pcie_power_connectors"` // 如 {"8_pin":2,"6+2":1,"12vhpwr":1}
}

type CaseSpec struct {
	SupportedMoboFormFactors []string `json:"supported_mobo_form_factors"`
	MaxGPULengthMM           *float64 `json:"max_gpu_length_mm"`
	MaxCPUCoolerHeightMM     *float64 `json:"max_cpu_cooler_height_mm"`
	PSUFormFactor            string   `json:"psu_form_factor"`
}

type RAMSpec struct {
	Type            string   `json:"type"` // DDR 代数，大写
	CapacityGBTotal *float64 `json:"capacity_gb_total"`
	Modules         *float64 `json:"modules"`
	SpeedMTS        *float64 `json:"speed_mts"`
	CASLatency      *float64 `json:"cas_latency"`
}

type CoolerSpec struct {
	Type         string   `json:"type"`
	FanRPM       *float64 `json:"fan_rpm"`
	NoiseLevelDB *float64 `json:"noise_level_db"`
	SizeMM       *float64 `json:"size_mm"`
}

type FanSpec struct {
	SizeMM       *float64 `json:"size_mm"`
	RPM          *float64 `json:"rpm"`
	AirflowCFM   *float64 `json:"airflow_cfm"`
	NoiseLevelDB *float64 `json:"noise_level_db"`
	PWM          bool     `json:"pwm"`
}
