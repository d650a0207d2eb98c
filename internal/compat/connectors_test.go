package compat

import (
	"testing"

	"PCQuote/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestParseConnectors(t *testing.T) {
	tests := []struct {
		in   string
		want model.ConnectorRequirement
	}{
		{"2x 8-pin", model.ConnectorRequirement{EightPin: 2}},
		{"3 x 8-Pin", model.ConnectorRequirement{EightPin: 3}},
		{"1x 16-pin (12VHPWR)", model.ConnectorRequirement{TwelveVHPWR: 1}},
		{"12VHPWR", model.ConnectorRequirement{TwelveVHPWR: 1}},
		{"1x 12V-2x6", model.ConnectorRequirement{TwelveVHPWR: 1}},
		{"8-pin + 6-pin", model.ConnectorRequirement{EightPin: 1, SixPin: 1}},
		{"2× 6+2-pin", model.ConnectorRequirement{EightPin: 2}},
		{"6-pin", model.ConnectorRequirement{SixPin: 1}},
		{"2 x PCIe 8-pin", model.ConnectorRequirement{EightPin: 2}},
		{"PCIe 8-pin", model.ConnectorRequirement{EightPin: 1}},
		{"8-pin x2", model.ConnectorRequirement{EightPin: 2}},
		{"8-pin × 3 + 6-pin", model.ConnectorRequirement{EightPin: 3, SixPin: 1}},
		{"16-pin x1", model.ConnectorRequirement{TwelveVHPWR: 1}},
		{"", model.ConnectorRequirement{}},
		{"none", model.ConnectorRequirement{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseConnectors(tt.in), tt.in)
	}
}

func TestCheckConnectors(t *testing.T) {
	gpu := &model.GPUItem{ID: "gpu", PowerConnectors: "2x 8-pin"}

	// 6+2 计入 8-pin
	mixed := &model.PSUItem{PCIePowerConnectors: map[string]int{"8_pin": 1, "6+2": 1}}
	st := CheckConnectors(mixed, gpu)
	assert.Equal(t, model.StateOK, st.Status)
	assert.Equal(t, &model.ConnectorRequirement{EightPin: 2}, st.Need)

	none := &model.PSUItem{PCIePowerConnectors: map[string]int{"8_pin": 0, "6+2": 0}}
	st = CheckConnectors(none, gpu)
	assert.Equal(t, model.StateFail, st.Status)
	assert.Contains(t, st.Reason, "8-pin (need 2, have 0)")

	hpwr := &model.GPUItem{PowerConnectors: "1x 16-pin (12VHPWR)"}
	st = CheckConnectors(&model.PSUItem{PCIePowerConnectors: map[string]int{"8_pin": 4}}, hpwr)
	assert.Equal(t, model.StateFail, st.Status)
	assert.Contains(t, st.Reason, "12VHPWR")
	st = CheckConnectors(&model.PSUItem{PCIePowerConnectors: map[string]int{"12vhpwr": 1}}, hpwr)
	assert.Equal(t, model.StateOK, st.Status)

	// 后置数量同样计入需求
	st = CheckConnectors(&model.PSUItem{PCIePowerConnectors: map[string]int{"8_pin": 1}}, &model.GPUItem{PowerConnectors: "8-pin x2"})
	assert.Equal(t, model.StateFail, st.Status)

	// 多余的 8-pin 可以当 6-pin 用
	st = CheckConnectors(&model.PSUItem{PCIePowerConnectors: map[string]int{"6+2": 2}}, &model.GPUItem{PowerConnectors: "8-pin + 6-pin"})
	assert.Equal(t, model.StateOK, st.Status)
}

func TestCheckConnectors_Unknown(t *testing.T) {
	psu := &model.PSUItem{PCIePowerConnectors: map[string]int{"8_pin": 2}}
	assert.Equal(t, model.StateUnknown, CheckConnectors(psu, &model.GPUItem{}).Status)
	assert.Equal(t, model.StateUnknown, CheckConnectors(&model.PSUItem{}, &model.GPUItem{PowerConnectors: "2x 8-pin"}).Status)
	// 声明了空列表视为没有接口
	assert.Equal(t, model.StateFail, CheckConnectors(&model.PSUItem{PCIePowerConnectors: map[string]int{}}, &model.GPUItem{PowerConnectors: "2x 8-pin"}).Status)
	assert.Equal(t, model.StateUnknown, CheckConnectors(nil, &model.GPUItem{PowerConnectors: "2x 8-pin"}).Status)
	assert.Equal(t, model.StateUnknown, CheckConnectors(psu, nil).Status)
}
