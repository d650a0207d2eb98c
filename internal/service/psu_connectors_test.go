package service

import (
	"testing"

	"PCQuote/internal/adapter/pcpart"
	"PCQuote/internal/catalog"
	"PCQuote/internal/compat"
	"PCQuote/internal/model"
	"PCQuote/internal/utils/fileloader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 从原始 pcpart 记录一路走到接口检查
func psuConnectorStatus(t *testing.T, item fileloader.Item, need string) model.ConnectorStatus {
	t.Helper()
	m, _ := newMerger(t)
	rec := pcpart.Convert(model.CategoryPSU, item)
	require.NotNil(t, rec.PSU)
	merged := m.MergePSU(cluster(model.CategoryPSU, rec))
	require.NotNil(t, merged)
	return compat.CheckConnectors(catalog.MapPSU(merged), &model.GPUItem{ID: "gpu", PowerConnectors: need})
}

func TestPSUConnectors_ThroughPipeline(t *testing.T) {
	tests := []struct {
		name  string
		conns any
		want  model.CheckState
	}{
		{"8-pin 与 6+2 各一个", map[string]any{"8_pin": 1, "6+2": 1}, model.StateOK},
		{"显式声明为 0", map[string]any{"8_pin": 0, "6+2": 0}, model.StateFail},
		{"空对象", map[string]any{}, model.StateFail},
		{"未提供", nil, model.StateUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := fileloader.Item{"name": "Corsair RM750e", "wattage": 750.0}
			if tt.conns != nil {
				item["pcie_power_connectors"] = tt.conns
			}
			assert.Equal(t, tt.want, psuConnectorStatus(t, item, "2x 8-pin").Status)
		})
	}
}

func TestMergePSU_KeepsUnknownAndZeroApart(t *testing.T) {
	m, _ := newMerger(t)
	unknown := pcpart.Convert(model.CategoryPSU, fileloader.Item{"name": "Acme 650"})
	assert.Nil(t, unknown.PSU.PCIePowerConns)
	assert.Nil(t, m.MergePSU(cluster(model.CategoryPSU, unknown)).PCIePowerConns)

	zero := pcpart.Convert(model.CategoryPSU, fileloader.Item{"name": "Acme 650", "pcie_power_connectors": map[string]any{"8_pin": 0, "6+2": -1}})
	assert.Equal(t, map[string]int{"8_pin": 0}, zero.PSU.PCIePowerConns)
	assert.Equal(t, map[string]int{"8_pin": 0}, m.MergePSU(cluster(model.CategoryPSU, zero)).PCIePowerConns)
}
