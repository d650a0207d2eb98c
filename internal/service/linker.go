package service

import (
	"PCQuote/internal/model"
)

// LinkResult 分组结果：每个类别的簇按首次出现顺序排列
type LinkResult struct {
	Clusters map[model.Category][]*model.RecordCluster
	Dropped  int // normalized_key 为空被丢弃的记录数
}

// Count 所有类别的簇总数
func (r *LinkResult) Count() int {
	n := 0
	for _, c := range r.Clusters {
		n += len(c)
	}
	return n
}

// LinkCategory 同一类别的记录按 normalized_key 精确相等分组
// 不做模糊匹配：拼写不同的同一产品会成为两个簇。空键记录无法识别，直接丢弃
func LinkCategory(category model.Category, records []*model.RawComponentRecord) ([]*model.RecordCluster, int) {
	groupByKey := make(map[string]*model.RecordCluster)
	var clusters []*model.RecordCluster
	dropped := 0
	for _, r := range records {
		if r == nil || r.NormalizedKey == "" {
			dropped++
			continue
		}
		c, ok := groupByKey[r.NormalizedKey]
		if !ok {
			c = &model.RecordCluster{Category: category, NormalizedKey: r.NormalizedKey}
			groupByKey[r.NormalizedKey] = c
			clusters = append(clusters, c)
		}
		c.Records = append(c.Records, r)
	}
	return clusters, dropped
}

// LinkAll 先按类别拆分再逐类分组，输入顺序决定簇顺序
func LinkAll(records []*model.RawComponentRecord) *LinkResult {
	byCategory := make(map[model.Category][]*model.RawComponentRecord)
	for _, r := range records {
		if r == nil {
			continue
		}
		byCategory[r.Category] = append(byCategory[r.Category], r)
	}
	res := &LinkResult{Clusters: make(map[model.Category][]*model.RecordCluster, len(model.AllCategories))}
	for _, cat := range model.AllCategories {
		clusters, dropped := LinkCategory(cat, byCategory[cat])
		res.Clusters[cat] = clusters
		res.Dropped += dropped
	}
	return res
}
