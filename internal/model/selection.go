package model

// Selection 用户当前选择：每个类别至多一个组件。GPU 为 nil 表示核显/不选
// 由外层 UI 持有，评估器只读不改
type Selection struct {
	CPU         *CPUItem         `json:"cpu"`
	Motherboard *MotherboardItem `json:"motherboard"`
	RAM         *RAMItem         `json:"ram"`
	GPU         *GPUItem         `json:"gpu"`
	PSU         *PSUItem         `json:"psu"`
	Case        *CaseItem        `json:"case"`
}

// SelectionRequest 以 ID 描述的选择（API / CLI 入参）
type SelectionRequest struct {
	CPUID          string   `json:"cpu_id"`
	MotherboardID  string   `json:"motherboard_id"`
	RAMID          string   `json:"ram_id"`
	GPUID          string   `json:"gpu_id"`
	PSUID          string   `json:"psu_id"`
	CaseID         string   `json:"case_id"`
	ExtraHeadroomW *float64 `json:"extra_headroom_w"`
}

// CheckState 多值检查状态
type CheckState string

const (
	StateOK      CheckState = "ok"
	StateWarn    CheckState = "warn"
	StateFail    CheckState = "fail"
	StateUnknown CheckState = "unknown"
)

// Balance CPU/GPU 档位比较结果
type Balance string

const (
	BalanceBalanced   Balance = "balanced"
	BalanceCPULimited Balance = "cpu_limited"
	BalanceGPULimited Balance = "gpu_limited"
	BalanceUnknown    Balance = "unknown"
)

type PowerEstimate struct {
	EstimatedLoadW     float64 `json:"estimated_load_w"`
	RecommendedMinPSUW float64 `json:"recommended_min_psu_w"`
}

type PSUStatus struct {
	Status CheckState `json:"status"`
	PowerEstimate
	Reason string `json:"reason,omitempty"`
}

// ConnectorRequirement GPU 供电需求解析结果（6+2 计为 8-pin）
type ConnectorRequirement struct {
	TwelveVHPWR int `json:"twelveVHPWR"`
	EightPin    int `json:"eightPin"`
	SixPin      int `json:"sixPin"`
}

// Total 需求接口总数
func (r ConnectorRequirement) Total() int { return r.TwelveVHPWR + r.EightPin + r.SixPin }

type ConnectorStatus struct {
	Status CheckState            `json:"status"`
	Reason string                `json:"reason,omitempty"`
	Need   *ConnectorRequirement `json:"need,omitempty"`
}

type BalanceResult struct {
	Balance Balance `json:"balance"`
	Notes   string  `json:"notes,omitempty"`
	CPUTier int     `json:"cpu_tier,omitempty"`
	GPUTier int     `json:"gpu_tier,omitempty"`
}

// StatusEntry 单项两两检查的展示状态
type StatusEntry struct {
	Label   string `json:"label"`
	OK      bool   `json:"ok"`
	Unknown bool   `json:"unknown"`
}

// SelectionChip 选择摘要
type SelectionChip struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// EvaluationResult 每次选择变化都完整重算，无持久身份
type EvaluationResult struct {
	Power           PowerEstimate   `json:"power"`
	PSUStatus       PSUStatus       `json:"psuStatus"`
	ConnectorStatus ConnectorStatus `json:"connectorStatus"`
	Balance         BalanceResult   `json:"balance"`
	Statuses        []StatusEntry   `json:"statuses"`
	Issues          []string        `json:"issues"`
	Warnings        []string        `json:"warnings"`
	Info            []string        `json:"info"`
	SelectionChips  []SelectionChip `json:"selectionChips"`
}
