package service

import (
	"encoding/json"
	"testing"
	"time"

	"PCQuote/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMeta(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CST", 8*3600))
	c := &model.Catalog{
		CPUs: []*model.CPUComponent{
			{ComponentBase: model.ComponentBase{ID: "cpu_a"}, CPUSpec: model.CPUSpec{Socket: "AM5", TDPW: f(105), Cores: f(16), BoostClockGHz: f(5.7)}},
			{ComponentBase: model.ComponentBase{ID: "cpu_b"}, CPUSpec: model.CPUSpec{Socket: "AM4", TDPW: f(65)}},
			{ComponentBase: model.ComponentBase{ID: "cpu_c"}},
		},
		GPUs: []*model.GPUComponent{
			{ComponentBase: model.ComponentBase{ID: "gpu_a"}, GPUSpec: model.GPUSpec{TDPW: f(200), VRAMGB: f(12)}},
		},
		Motherboards: []*model.MotherboardComponent{
			{MotherboardSpec: model.MotherboardSpec{Socket: "AM5", FormFactor: "ATX"}},
			{MotherboardSpec: model.MotherboardSpec{Socket: "AM5", FormFactor: "Micro ATX"}},
		},
		Cases: []*model.CaseComponent{
			{CaseSpec: model.CaseSpec{SupportedMoboFormFactors: []string{"ATX", "Micro ATX", "Mini ITX"}}},
		},
	}

	meta := BuildMeta(c, at)
	assert.Equal(t, time.UTC, meta.GeneratedAt.Location())
	assert.Equal(t, 3, meta.Counts.CPUs)
	assert.Equal(t, 2, meta.Counts.Motherboards)
	assert.Equal(t, 0, meta.Counts.Fans)

	assert.Equal(t, &model.Range{Min: 65, Max: 105}, meta.Ranges.CPUTDPW)
	assert.Equal(t, &model.Range{Min: 200, Max: 200}, meta.Ranges.GPUTDPW)
	assert.Nil(t, meta.Ranges.GPULengthMM)
	assert.Nil(t, meta.Ranges.FanSizeMM)

	assert.Equal(t, model.SocketCount{Mobos: 2, CPUs: 1}, meta.Sockets["AM5"])
	assert.Equal(t, model.SocketCount{Mobos: 0, CPUs: 1}, meta.Sockets["AM4"])
	assert.Equal(t, model.FormFactorCount{Cases: 1, Mobos: 1}, meta.FormFactors["ATX"])
	assert.Equal(t, model.FormFactorCount{Cases: 1}, meta.FormFactors["Mini ITX"])

	assert.Equal(t, []model.TierEntry{{ID: "cpu_a", Tier: 4}, {ID: "cpu_b", Tier: 1}, {ID: "cpu_c", Tier: 1}}, meta.Tiers.CPU)
	assert.Equal(t, []model.TierEntry{{ID: "gpu_a", Tier: 4}}, meta.Tiers.GPU)

	// 空范围序列化为 null，而不是省略或报错
	raw, err := json.Marshal(meta)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"gpu_length_mm":null`)
	assert.Contains(t, string(raw), `"generatedAt":"2026-03-01T04:00:00Z"`)
}

func TestBuildMeta_EmptyCatalog(t *testing.T) {
	meta := BuildMeta(&model.Catalog{}, time.Unix(0, 0))
	assert.NotNil(t, meta.Sockets)
	assert.NotNil(t, meta.FormFactors)
	assert.NotNil(t, meta.Tiers.CPU)
	assert.Nil(t, meta.Ranges.CPUTDPW)
}
