package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"PCQuote/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const upsertBatchSize = 500

// CatalogRepository 规范化目录落库（catalog_components / component_source_links / catalog_build_runs）
type CatalogRepository interface {
	SaveCatalog(ctx context.Context, runID string, catalog *model.Catalog) error
	LatestRun(ctx context.Context) (*model.CatalogBuildRun, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// SaveCatalog 单事务 upsert 全部组件与来源映射，并记录本次运行
func (r *catalogRepository) SaveCatalog(ctx context.Context, runID string, catalog *model.Catalog) error {
	rows, links, err := BuildRows(runID, catalog)
	if err != nil {
		return err
	}
	run, err := BuildRun(runID, catalog)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(rows) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"category", "name", "brand", "model", "normalized_key",
					"specs", "conflict_flags", "quality_score", "last_run_uuid", "updated_at",
				}),
			}).CreateInBatches(rows, upsertBatchSize).Error; err != nil {
				return fmt.Errorf("upsert catalog_components 失败: %w", err)
			}
		}
		if len(links) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "component_id"}, {Name: "source"}},
				DoUpdates: clause.AssignmentColumns([]string{"source_local_id"}),
			}).CreateInBatches(links, upsertBatchSize).Error; err != nil {
				return fmt.Errorf("upsert component_source_links 失败: %w", err)
			}
		}
		if err := tx.Create(run).Error; err != nil {
			return fmt.Errorf("保存 catalog_build_runs 失败: %w", err)
		}
		return nil
	})
}

// BuildRows 目录 → 表行；specs 列保存与输出文件一致的完整 JSON
func BuildRows(runID string, catalog *model.Catalog) ([]*model.CatalogComponent, []*model.ComponentSourceLink, error) {
	var rows []*model.CatalogComponent
	var links []*model.ComponentSourceLink
	for _, cat := range model.AllCategories {
		for _, c := range catalog.Components(cat) {
			b := c.Base()
			specs, err := json.Marshal(c)
			if err != nil {
				return nil, nil, fmt.Errorf("序列化组件%s失败: %w", b.ID, err)
			}
			flags, err := json.Marshal(b.Meta.ConflictFlags)
			if err != nil {
				return nil, nil, fmt.Errorf("序列化组件%s冲突标记失败: %w", b.ID, err)
			}
			rows = append(rows, &model.CatalogComponent{
				ID:            b.ID,
				Category:      string(b.Category),
				Name:          b.Name,
				Brand:         b.Brand,
				Model:         b.Model,
				NormalizedKey: b.NormalizedKey,
				Specs:         datatypes.JSON(specs),
				ConflictFlags: datatypes.JSON(flags),
				QualityScore:  b.Meta.QualityScore,
				LastRunUUID:   runID,
			})

			keys := make([]string, 0, len(b.Sources))
			for k := range b.Sources {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				links = append(links, &model.ComponentSourceLink{
					ComponentID:   b.ID,
					Source:        strings.TrimSuffix(k, "_id"),
					SourceLocalID: b.Sources[k],
				})
			}
		}
	}
	return rows, links, nil
}

// BuildRun 本次运行的汇总行
func BuildRun(runID string, catalog *model.Catalog) (*model.CatalogBuildRun, error) {
	counts := make(map[string]int, len(model.AllCategories))
	conflicts := 0
	for _, cat := range model.AllCategories {
		comps := catalog.Components(cat)
		counts[string(cat)] = len(comps)
		for _, c := range comps {
			if len(c.Base().Meta.ConflictFlags) > 0 {
				conflicts++
			}
		}
	}
	raw, err := json.Marshal(counts)
	if err != nil {
		return nil, fmt.Errorf("序列化数量统计失败: %w", err)
	}
	run := &model.CatalogBuildRun{
		RunUUID:   runID,
		Counts:    datatypes.JSON(raw),
		Conflicts: conflicts,
	}
	if catalog.Compat != nil {
		run.GeneratedAt = catalog.Compat.GeneratedAt
	}
	return run, nil
}

// LatestRun 最近一次构建记录；没有记录时返回 model.ErrNoBuildRun
func (r *catalogRepository) LatestRun(ctx context.Context) (*model.CatalogBuildRun, error) {
	var run model.CatalogBuildRun
	if err := r.db.WithContext(ctx).Order("id DESC").First(&run).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNoBuildRun
		}
		return nil, err
	}
	return &run, nil
}
