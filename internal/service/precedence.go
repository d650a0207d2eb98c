package service

import (
	"PCQuote/internal/model"
)

// PrecedenceTable 每个类别（及个别字段）的来源优先级，靠前者可信度更高
type PrecedenceTable struct {
	Category map[model.Category][]model.SourceTag
	Field    map[model.Category]map[string][]model.SourceTag
}

// DefaultPrecedence 人工整理数据集优先，社区数据集兜底
var DefaultPrecedence = PrecedenceTable{
	Category: map[model.Category][]model.SourceTag{
		model.CategoryCPU:         {model.SourceBuildCores, model.SourcePCPart},
		model.CategoryGPU:         {model.SourceDBGPU, model.SourcePCPart},
		model.CategoryRAM:         {model.SourceBuildCores, model.SourcePCPart},
		model.CategoryMotherboard: {model.SourcePCPart},
		model.CategoryPSU:         {model.SourcePCPart},
		model.CategoryCase:        {model.SourcePCPart},
		model.CategoryCooler:      {model.SourcePCPart},
		model.CategoryFan:         {model.SourcePCPart},
	},
	Field: map[model.Category]map[string][]model.SourceTag{
		model.CategoryGPU: {
			"architecture": {model.SourceDBGPU},
		},
	},
}

// Order 字段的来源顺序；字段未单独配置时使用类别顺序
func (t PrecedenceTable) Order(category model.Category, field string) []model.SourceTag {
	if fields, ok := t.Field[category]; ok {
		if order, ok := fields[field]; ok {
			return order
		}
	}
	return t.Category[category]
}

// resolver 对一个簇按优先级取值
type resolver struct {
	table   PrecedenceTable
	cluster *model.RecordCluster
}

// candidates 每个来源取其首条记录，按优先级排列，最后追加簇内首条记录兜底
func (r resolver) candidates(field string) []*model.RawComponentRecord {
	records := r.cluster.Records
	out := make([]*model.RawComponentRecord, 0, len(records)+1)
	for _, src := range r.table.Order(r.cluster.Category, field) {
		for _, rec := range records {
			if rec.Source == src {
				out = append(out, rec)
				break
			}
		}
	}
	if len(records) > 0 {
		out = append(out, records[0])
	}
	return out
}

// primary 决定名称、品牌、型号的记录
func (r resolver) primary() *model.RawComponentRecord {
	c := r.candidates("")
	if len(c) == 0 {
		return nil
	}
	return c[0]
}

// resolve 依优先级返回第一个 present 的值，全部缺失时返回零值
func resolve[T any](r resolver, field string, get func(*model.RawComponentRecord) T, present func(T) bool) T {
	for _, rec := range r.candidates(field) {
		if v := get(rec); present(v) {
			return v
		}
	}
	var zero T
	return zero
}

func numPresent(v *float64) bool { return v != nil }

func strPresent(v string) bool { return v != "" }

func slicePresent(v []string) bool { return len(v) > 0 }

func (r resolver) num(field string, get func(*model.RawComponentRecord) *float64) *float64 {
	return resolve(r, field, get, numPresent)
}

func (r resolver) str(field string, get func(*model.RawComponentRecord) string) string {
	return resolve(r, field, get, strPresent)
}

func (r resolver) strs(field string, get func(*model.RawComponentRecord) []string) []string {
	v := resolve(r, field, get, slicePresent)
	if v == nil {
		return []string{}
	}
	return append([]string(nil), v...)
}

// spread 簇内所有记录的数值极差；少于两个值时 ok=false
func spread(records []*model.RawComponentRecord, get func(*model.RawComponentRecord) *float64) (float64, bool) {
	var lo, hi float64
	n := 0
	for _, rec := range records {
		v := get(rec)
		if v == nil {
			continue
		}
		if n == 0 || *v < lo {
			lo = *v
		}
		if n == 0 || *v > hi {
			hi = *v
		}
		n++
	}
	if n < 2 {
		return 0, false
	}
	return hi - lo, true
}
