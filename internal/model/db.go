package model

import (
	"time"

	"gorm.io/datatypes"
)

// CatalogComponent 规范化组件持久化表（一条 canonical_id 一行）
type CatalogComponent struct {
	ID            string         `gorm:"column:id;primaryKey;type:varchar(160);comment:canonical_id"`
	Category      string         `gorm:"column:category;type:varchar(16);index;not null;comment:组件类别"`
	Name          string         `gorm:"column:name;type:varchar(256);not null;comment:展示名称"`
	Brand         string         `gorm:"column:brand;type:varchar(64);comment:品牌"`
	Model         string         `gorm:"column:model;type:varchar(192);comment:型号"`
	NormalizedKey string         `gorm:"column:normalized_key;type:varchar(256);index;not null;comment:规范化匹配键"`
	Specs         datatypes.JSON `gorm:"column:specs;type:jsonb;not null;comment:完整规格（与输出 JSON 一致）"`
	ConflictFlags datatypes.JSON `gorm:"column:conflict_flags;type:jsonb;comment:冲突标记"`
	QualityScore  float64        `gorm:"column:quality_score;type:numeric(4,2);default:0;comment:质量分"`
	LastRunUUID   string         `gorm:"column:last_run_uuid;type:varchar(64);comment:最近一次写入的构建批次"`
	CreatedAt     time.Time      `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

// ComponentSourceLink 规范化组件与来源记录的映射
type ComponentSourceLink struct {
	ID            uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	ComponentID   string `gorm:"column:component_id;type:varchar(160);not null;uniqueIndex:uq_component_source"`
	Source        string `gorm:"column:source;type:varchar(32);not null;uniqueIndex:uq_component_source"`
	SourceLocalID string `gorm:"column:source_local_id;type:varchar(192)"`
}

// CatalogBuildRun 流水线运行记录
type CatalogBuildRun struct {
	ID          uint64         `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	RunUUID     string         `gorm:"column:run_uuid;type:varchar(64);uniqueIndex;not null;comment:批次ID"`
	GeneratedAt time.Time      `gorm:"column:generated_at;type:timestamp;not null;comment:生成时间"`
	Counts      datatypes.JSON `gorm:"column:counts;type:jsonb;not null;comment:各类别数量"`
	Conflicts   int            `gorm:"column:conflicts;type:int;default:0;comment:带冲突标记的组件数"`
	CreatedAt   time.Time      `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
}

func (CatalogComponent) TableName() string    { return "catalog_components" }
func (ComponentSourceLink) TableName() string { return "component_source_links" }
func (CatalogBuildRun) TableName() string     { return "catalog_build_runs" }
