package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"PCQuote/internal/config"
	"PCQuote/internal/interfaces"
	"PCQuote/internal/model"
	"PCQuote/internal/utils/fileloader"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// BuildReport 一次流水线运行的结果
type BuildReport struct {
	RunID      string         `json:"run_id"`
	RawRecords int            `json:"raw_records"`
	Dropped    int            `json:"dropped"`   // 无法生成匹配键的记录
	Conflicts  int            `json:"conflicts"` // 带冲突标记的组件数
	Counts     map[string]int `json:"counts"`
	Catalog    *model.Catalog `json:"-"`
}

// PipelineService 原始数据 → 标准化 → 分组 → 合并 → ID 分配 → meta → 输出
// 单线程同步执行；单个坏文件/坏记录只跳过不终止，只有输出失败和 ID 冲突（fail 策略）是致命的
type PipelineService struct {
	sources []interfaces.SourceAdapter
	merger  *MergeService
	writer  interfaces.CatalogWriter
	store   interfaces.CatalogStore // 可为 nil：不落库
	policy  string
	cache   *fileloader.Cache // 可为 nil；每次运行开始时清空
	clock   func() time.Time
	logger  *logrus.Logger
}

func NewPipelineService(
	sources []interfaces.SourceAdapter,
	writer interfaces.CatalogWriter,
	store interfaces.CatalogStore,
	cfg config.PipelineConfig,
	logger *logrus.Logger,
) *PipelineService {
	return &PipelineService{
		sources: sources,
		merger:  NewMergeService(DefaultPrecedence, cfg.ConflictToleranceW, logger),
		writer:  writer,
		store:   store,
		policy:  cfg.IDCollisionPolicy,
		clock:   time.Now,
		logger:  logger,
	}
}

// WithCache 绑定来源读取器共用的缓存，保证每次运行都重新读盘
func (s *PipelineService) WithCache(cache *fileloader.Cache) *PipelineService {
	s.cache = cache
	return s
}

// WithClock 替换时钟（测试中冻结 generatedAt）
func (s *PipelineService) WithClock(clock func() time.Time) *PipelineService {
	s.clock = clock
	return s
}

// Run 执行一次完整构建
func (s *PipelineService) Run(ctx context.Context) (*BuildReport, error) {
	runID := uuid.NewString()
	log := s.logger.WithField("run_id", runID)
	log.Info("目录构建开始")
	s.cache.Reset()

	// 1. 各来源读取并标准化；某个来源整体失败只记录警告
	var records []*model.RawComponentRecord
	for _, src := range s.sources {
		recs, err := src.Load(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("读取来源%s时被取消: %w", src.Name(), ctxErr)
			}
			log.WithError(err).WithField("source", src.Name()).Warn("来源读取失败，本次不计入")
			continue
		}
		records = append(records, recs...)
	}

	// 2. 按 normalized_key 分组
	link := LinkAll(records)
	if link.Dropped > 0 {
		log.WithField("dropped", link.Dropped).Debug("部分记录无法生成匹配键，已丢弃")
	}

	// 3. 合并 + ID 分配
	catalog := s.merger.MergeAll(link)
	if err := AssignCatalogIDs(catalog, s.policy, s.logger); err != nil {
		return nil, fmt.Errorf("分配规范化ID失败: %w", err)
	}

	// 4. meta（档位、范围、统计）
	catalog.Compat = BuildMeta(catalog, s.clock())

	// 5. 输出
	if err := s.writer.WriteCatalog(ctx, catalog); err != nil {
		return nil, fmt.Errorf("写出目录失败: %w", err)
	}
	if s.store != nil {
		if err := s.store.SaveCatalog(ctx, runID, catalog); err != nil {
			return nil, fmt.Errorf("目录落库失败: %w", err)
		}
	}

	report := &BuildReport{
		RunID:      runID,
		RawRecords: len(records),
		Dropped:    link.Dropped,
		Conflicts:  countConflicts(catalog),
		Counts:     make(map[string]int, len(model.AllCategories)),
		Catalog:    catalog,
	}
	for _, cat := range model.AllCategories {
		report.Counts[string(cat)] = len(catalog.Components(cat))
	}
	log.WithFields(logrus.Fields{
		"raw_records": report.RawRecords,
		"canonical":   link.Count(),
		"conflicts":   report.Conflicts,
	}).Infof("目录构建完成：%d 条原始记录合并为 %d 个规范化组件", report.RawRecords, link.Count())
	return report, nil
}

// IsIDCollision 构建错误是否来自 ID 冲突（fail 策略）
func IsIDCollision(err error) bool {
	return errors.Is(err, model.ErrIDCollision)
}
