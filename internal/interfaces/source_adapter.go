package interfaces

import (
	"context"

	"PCQuote/internal/model"
	"PCQuote/internal/utils/fileloader"

	"github.com/sirupsen/logrus"
)

// SourceAdapter 每个原始数据来源必须实现的核心接口（即来源标准化器）
type SourceAdapter interface {
	Name() model.SourceTag                                          // 来源标识
	Load(ctx context.Context) ([]*model.RawComponentRecord, error) // 读取并标准化该来源的全部记录
}

// CatalogWriter 规范化目录的输出端（文件 / 数据库）
type CatalogWriter interface {
	WriteCatalog(ctx context.Context, catalog *model.Catalog) error
}

// CatalogReader 读取已输出的规范化目录
type CatalogReader interface {
	ReadCatalog(ctx context.Context) (*model.Catalog, error)
}

// CatalogStore 目录持久化（数据库），runID 用于追溯某次流水线运行
type CatalogStore interface {
	SaveCatalog(ctx context.Context, runID string, catalog *model.Catalog) error
}

// BuildRunReader 查询流水线运行记录
type BuildRunReader interface {
	LatestRun(ctx context.Context) (*model.CatalogBuildRun, error)
}

// Factory 来源适配器工厂函数签名
// 入参：来源目录、文件读取器、日志实例
type Factory func(dir string, loader *fileloader.Loader, logger *logrus.Logger) SourceAdapter
