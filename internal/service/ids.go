package service

import (
	"fmt"

	"PCQuote/internal/config"
	"PCQuote/internal/model"

	"github.com/sirupsen/logrus"
)

// AssignIDs 检测同类别内 slug 相同的不同簇
// suffix：先出现的保留原 ID，后续依次追加 _2、_3…并标记 id_collision；fail：返回 ErrIDCollision
func AssignIDs(components []model.CanonicalComponent, policy string, logger *logrus.Logger) error {
	used := make(map[string]string, len(components)) // id -> normalized_key
	for _, c := range components {
		b := c.Base()
		owner, taken := used[b.ID]
		if !taken {
			used[b.ID] = b.NormalizedKey
			continue
		}
		if policy == config.CollisionFail {
			return fmt.Errorf("%w: %s 同时来自 %q 与 %q", model.ErrIDCollision, b.ID, owner, b.NormalizedKey)
		}
		original := b.ID
		candidate := original
		for n := 2; ; n++ {
			candidate = fmt.Sprintf("%s_%d", original, n)
			if _, exists := used[candidate]; !exists {
				break
			}
		}
		b.ID = candidate
		b.AddConflict(FlagIDCollision)
		used[candidate] = b.NormalizedKey
		logger.WithFields(logrus.Fields{
			"category":       b.Category,
			"canonical_id":   original,
			"assigned_id":    candidate,
			"normalized_key": b.NormalizedKey,
		}).Warn("规范化 ID 冲突，已追加后缀")
	}
	return nil
}

// AssignCatalogIDs 逐类别处理整个目录
func AssignCatalogIDs(catalog *model.Catalog, policy string, logger *logrus.Logger) error {
	for _, cat := range model.AllCategories {
		if err := AssignIDs(catalog.Components(cat), policy, logger); err != nil {
			return fmt.Errorf("类别%s: %w", cat, err)
		}
	}
	return nil
}

// countConflicts 带冲突标记的组件数
func countConflicts(catalog *model.Catalog) int {
	n := 0
	for _, cat := range model.AllCategories {
		for _, c := range catalog.Components(cat) {
			if len(c.Base().Meta.ConflictFlags) > 0 {
				n++
			}
		}
	}
	return n
}
