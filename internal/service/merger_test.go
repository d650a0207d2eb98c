package service

import (
	"testing"

	"PCQuote/internal/model"
	"PCQuote/internal/utils/normalize"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return normalize.Float(v) }

func newMerger(t *testing.T) (*MergeService, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	return NewMergeService(DefaultPrecedence, 5, logger), hook
}

func cpuRecord(src model.SourceTag, id string, tdp *float64) *model.RawComponentRecord {
	return &model.RawComponentRecord{
		Source:        src,
		Category:      model.CategoryCPU,
		ID:            id,
		Brand:         "AMD",
		Model:         "Ryzen 5 5600",
		NormalizedKey: "amd ryzen 5 5600",
		CPU: &model.CPUSpec{
			Socket:        "AM4",
			TDPW:          tdp,
			MemorySupport: model.MemorySupport{Types: []string{}},
		},
	}
}

func cluster(cat model.Category, records ...*model.RawComponentRecord) *model.RecordCluster {
	key := ""
	if len(records) > 0 {
		key = records[0].NormalizedKey
	}
	return &model.RecordCluster{Category: cat, NormalizedKey: key, Records: records}
}

func TestMergeCPU_TDPConflictKeepsPrecedenceValue(t *testing.T) {
	m, hook := newMerger(t)
	// 社区数据先出现，但人工整理数据集优先级更高
	pc := cpuRecord(model.SourcePCPart, "amd_ryzen_5_5600", f(95))
	bc := cpuRecord(model.SourceBuildCores, "bc-1", f(65))

	out := m.MergeCPU(cluster(model.CategoryCPU, pc, bc))
	require.NotNil(t, out)
	assert.Equal(t, 65.0, *out.TDPW)
	assert.Contains(t, out.Meta.ConflictFlags, FlagCPUTDPConflict)
	assert.Equal(t, 0.8, out.Meta.QualityScore)
	assert.Equal(t, []model.SourceTag{model.SourcePCPart, model.SourceBuildCores}, out.Meta.CreatedFrom)
	assert.Equal(t, map[string]string{"pcpart_id": "amd_ryzen_5_5600", "buildcores_id": "bc-1"}, out.Sources)
	assert.Equal(t, "cpu_amd_ryzen_5_5600", out.ID)
	assert.Equal(t, "AMD Ryzen 5 5600", out.Name)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestMergeCPU_WithinToleranceAgrees(t *testing.T) {
	m, _ := newMerger(t)
	out := m.MergeCPU(cluster(model.CategoryCPU,
		cpuRecord(model.SourceBuildCores, "bc", f(65)),
		cpuRecord(model.SourcePCPart, "pc", f(70)),
	))
	assert.Empty(t, out.Meta.ConflictFlags)
	assert.NotNil(t, out.Meta.ConflictFlags)
	assert.Equal(t, 0.9, out.Meta.QualityScore)
}

func TestMergeCPU_FallsBackPerField(t *testing.T) {
	m, _ := newMerger(t)
	bc := cpuRecord(model.SourceBuildCores, "bc", nil)
	bc.CPU.Socket = ""
	pc := cpuRecord(model.SourcePCPart, "pc", f(65))
	pc.CPU.Cores = f(6)
	pc.CPU.MemorySupport.Types = []string{"DDR4"}

	out := m.MergeCPU(cluster(model.CategoryCPU, bc, pc))
	assert.Equal(t, 65.0, *out.TDPW)
	assert.Equal(t, "AM4", out.Socket)
	assert.Equal(t, 6.0, *out.Cores)
	assert.Equal(t, []string{"DDR4"}, out.MemorySupport.Types)
	assert.Nil(t, out.Threads)
	// 只有一个来源给出 TDP，不构成冲突
	assert.Empty(t, out.Meta.ConflictFlags)
}

func TestMergeCPU_SameSourceDuplicatesUseFirst(t *testing.T) {
	m, _ := newMerger(t)
	out := m.MergeCPU(cluster(model.CategoryCPU,
		cpuRecord(model.SourcePCPart, "a", f(65)),
		cpuRecord(model.SourcePCPart, "b", f(105)),
	))
	assert.Equal(t, 65.0, *out.TDPW)
	assert.Empty(t, out.Meta.ConflictFlags)
	assert.Equal(t, "a", out.Sources["pcpart_id"])
	assert.Equal(t, 0.8, out.Meta.QualityScore)
}

func TestMerge_EmptyCluster(t *testing.T) {
	m, _ := newMerger(t)
	assert.Nil(t, m.MergeCPU(cluster(model.CategoryCPU)))
	assert.Nil(t, m.MergeGPU(nil))
	assert.Nil(t, m.MergeFan(cluster(model.CategoryFan)))

	got, err := m.Merge(cluster(model.CategoryRAM))
	assert.ErrorIs(t, err, model.ErrEmptyCluster)
	assert.Nil(t, got)
}

func TestMergeGPU_RecommendedPSU(t *testing.T) {
	m, _ := newMerger(t)
	db := &model.RawComponentRecord{
		Source: model.SourceDBGPU, Category: model.CategoryGPU, ID: "db", Brand: "NVIDIA", Model: "GeForce RTX 4070",
		NormalizedKey: "nvidia geforce rtx 4070",
		GPU:           &model.GPUSpec{TDPW: f(200), SuggestedPSUW: f(650), Architecture: "Ada Lovelace"},
	}
	pc := &model.RawComponentRecord{
		Source: model.SourcePCPart, Category: model.CategoryGPU, ID: "pc", Brand: "NVIDIA", Model: "GeForce RTX 4070",
		NormalizedKey: "nvidia geforce rtx 4070",
		GPU:           &model.GPUSpec{TDPW: f(220), BoardLengthMM: f(244), PowerConnectors: "1x 16-pin", Architecture: "ignored"},
	}
	out := m.MergeGPU(cluster(model.CategoryGPU, pc, db))
	require.NotNil(t, out)
	assert.Equal(t, 200.0, *out.TDPW)
	assert.Equal(t, 244.0, *out.BoardLengthMM)
	assert.Equal(t, "1x 16-pin", out.PowerConnectors)
	assert.Equal(t, "Ada Lovelace", out.Architecture)
	assert.Equal(t, "GeForce RTX 4070", out.Chipset)
	// ceil((200+75)*1.3+50) = 408 < 650
	assert.Equal(t, 650.0, *out.RecommendedPSUW)
	assert.Contains(t, out.Meta.ConflictFlags, FlagGPUTDPConflict)
}

func TestRecommendedPSU(t *testing.T) {
	assert.Equal(t, 408.0, RecommendedPSU(f(200), nil))
	assert.Equal(t, 750.0, RecommendedPSU(f(200), f(750)))
	// 未知 TDP 按 0：ceil(75*1.3+50) = 148
	assert.Equal(t, 148.0, RecommendedPSU(nil, nil))
}

func TestMergeGPU_ModelFallsBackToChipset(t *testing.T) {
	m, _ := newMerger(t)
	out := m.MergeGPU(cluster(model.CategoryGPU, &model.RawComponentRecord{
		Source: model.SourceDBGPU, Category: model.CategoryGPU, Brand: "AMD",
		NormalizedKey: "amd radeon rx 7600",
		GPU:           &model.GPUSpec{Chipset: "Radeon RX 7600"},
	}))
	assert.Equal(t, "Radeon RX 7600", out.Model)
	assert.Equal(t, "gpu_amd_radeon_rx_7600", out.ID)
	assert.Empty(t, out.Sources)
}

func TestMergeSingleSourceCategories(t *testing.T) {
	m, _ := newMerger(t)
	base := func(cat model.Category) *model.RawComponentRecord {
		return &model.RawComponentRecord{
			Source: model.SourcePCPart, Category: cat, ID: "x", Brand: "Acme", Model: "Thing", NormalizedKey: "acme thing",
		}
	}

	psu := base(model.CategoryPSU)
	psu.PSU = &model.PSUSpec{WattageW: f(750), PCIePowerConns: map[string]int{"8_pin": 2}}
	gotPSU := m.MergePSU(cluster(model.CategoryPSU, psu))
	assert.Equal(t, "ATX", gotPSU.FormFactor)
	assert.Equal(t, map[string]int{"8_pin": 2}, gotPSU.PCIePowerConns)
	assert.Equal(t, "psu_acme_thing", gotPSU.ID)
	assert.Equal(t, 0.8, gotPSU.Meta.QualityScore)

	cs := base(model.CategoryCase)
	cs.Case = &model.CaseSpec{}
	gotCase := m.MergeCase(cluster(model.CategoryCase, cs))
	assert.Equal(t, []string{}, gotCase.SupportedMoboFormFactors)
	assert.Equal(t, "ATX", gotCase.PSUFormFactor)

	mb := base(model.CategoryMotherboard)
	mb.Motherboard = &model.MotherboardSpec{Socket: "AM5", FormFactor: "Micro ATX"}
	gotMB := m.MergeMotherboard(cluster(model.CategoryMotherboard, mb))
	assert.Equal(t, "motherboard_acme_thing", gotMB.ID)
	assert.Equal(t, "Micro ATX", gotMB.FormFactor)

	cooler := base(model.CategoryCooler)
	gotCooler := m.MergeCooler(cluster(model.CategoryCooler, cooler))
	assert.Equal(t, "air", gotCooler.Type)
	assert.Equal(t, 0.7, gotCooler.Meta.QualityScore)

	fan := base(model.CategoryFan)
	fan.Fan = &model.FanSpec{PWM: true, SizeMM: f(120)}
	gotFan := m.MergeFan(cluster(model.CategoryFan, fan))
	assert.True(t, gotFan.PWM)
	assert.Equal(t, 0.7, gotFan.Meta.QualityScore)

	ram := base(model.CategoryRAM)
	ram.RAM = &model.RAMSpec{Type: "DDR5", SpeedMTS: f(6000)}
	gotRAM := m.MergeRAM(cluster(model.CategoryRAM, ram))
	assert.Equal(t, "DDR5", gotRAM.Type)
}

func TestPrecedenceTable_Order(t *testing.T) {
	assert.Equal(t, []model.SourceTag{model.SourceDBGPU}, DefaultPrecedence.Order(model.CategoryGPU, "architecture"))
	assert.Equal(t, []model.SourceTag{model.SourceDBGPU, model.SourcePCPart}, DefaultPrecedence.Order(model.CategoryGPU, "tdp_w"))
	assert.Nil(t, DefaultPrecedence.Order("widget", "x"))
}

func TestMergeAll_KeepsClusterOrder(t *testing.T) {
	m, _ := newMerger(t)
	a := cpuRecord(model.SourcePCPart, "a", f(65))
	b := cpuRecord(model.SourcePCPart, "b", f(65))
	b.Model, b.NormalizedKey = "Ryzen 7 5800X", "amd ryzen 7 5800x"

	catalog := m.MergeAll(LinkAll([]*model.RawComponentRecord{b, a}))
	require.Len(t, catalog.CPUs, 2)
	assert.Equal(t, "cpu_amd_ryzen_7_5800x", catalog.CPUs[0].ID)
	assert.Equal(t, "cpu_amd_ryzen_5_5600", catalog.CPUs[1].ID)
	assert.NotNil(t, catalog.GPUs)
	assert.Empty(t, catalog.GPUs)
}
