package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"PCQuote/internal/catalog"
	"PCQuote/internal/compat"
	"PCQuote/internal/config"
	"PCQuote/internal/interfaces"
	"PCQuote/internal/model"

	"github.com/sirupsen/logrus"
)

// ErrBuildRunning 已有构建在执行
var ErrBuildRunning = errors.New("catalog build already running")

// CatalogService 面向前端的目录查询与选择评估服务，持有当前加载的目录索引
type CatalogService struct {
	reader   interfaces.CatalogReader
	pipeline *PipelineService          // 可为 nil：不支持在线重建
	runs     interfaces.BuildRunReader // 可为 nil：未启用 postgres
	opts     compat.Options
	logger   *logrus.Logger

	mu       sync.RWMutex
	idx      *catalog.Index
	building sync.Mutex
}

// NewCatalogService 创建 CatalogService
func NewCatalogService(reader interfaces.CatalogReader, pipeline *PipelineService, cfg config.EvaluatorConfig, logger *logrus.Logger) *CatalogService {
	headroom := cfg.ExtraHeadroomW
	return &CatalogService{
		reader:   reader,
		pipeline: pipeline,
		opts:     compat.Options{ExtraHeadroomW: &headroom, PSUStepW: cfg.PSUStepW},
		logger:   logger,
	}
}

// WithRunHistory 绑定构建记录来源（数据库）
func (s *CatalogService) WithRunHistory(runs interfaces.BuildRunReader) *CatalogService {
	s.runs = runs
	return s
}

// LatestRun 最近一次落库的构建记录
func (s *CatalogService) LatestRun(ctx context.Context) (*model.CatalogBuildRun, error) {
	if s.runs == nil {
		return nil, model.ErrRunHistoryDisabled
	}
	run, err := s.runs.LatestRun(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询构建记录失败: %w", err)
	}
	return run, nil
}

// CatalogListResult 列表返回
type CatalogListResult struct {
	Category model.Category `json:"category"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Total    int            `json:"total"`
	Items    any            `json:"items"`
}

// Load 从已输出的目录文件加载并替换当前索引
func (s *CatalogService) Load(ctx context.Context) error {
	c, err := s.reader.ReadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("读取目录失败: %w", err)
	}
	s.swap(c)
	return nil
}

func (s *CatalogService) swap(c *model.Catalog) {
	idx := catalog.NewIndex(c)
	s.mu.Lock()
	s.idx = idx
	s.mu.Unlock()
	s.logger.WithFields(logrus.Fields{
		"cpus":         len(idx.View.CPUs),
		"gpus":         len(idx.View.GPUs),
		"motherboards": len(idx.View.Motherboards),
		"ram":          len(idx.View.RAMKits),
		"psus":         len(idx.View.PSUs),
		"cases":        len(idx.View.Cases),
	}).Info("目录已加载")
}

func (s *CatalogService) index() (*catalog.Index, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.idx == nil {
		return nil, model.ErrCatalogNotLoaded
	}
	return s.idx, nil
}

// Rebuild 重新执行流水线并直接加载产出的目录；同一时刻只允许一个构建
func (s *CatalogService) Rebuild(ctx context.Context) (*BuildReport, error) {
	if s.pipeline == nil {
		return nil, errors.New("未配置目录构建流水线")
	}
	if !s.building.TryLock() {
		return nil, ErrBuildRunning
	}
	defer s.building.Unlock()

	report, err := s.pipeline.Run(ctx)
	if err != nil {
		return nil, err
	}
	s.swap(report.Catalog)
	return report, nil
}

// Meta 当前目录的 compatibility meta
func (s *CatalogService) Meta() (*model.CompatibilityMeta, error) {
	idx, err := s.index()
	if err != nil {
		return nil, err
	}
	if idx.View.Meta == nil {
		return nil, fmt.Errorf("%w: 缺少 compatibility meta", model.ErrCatalogNotLoaded)
	}
	return idx.View.Meta, nil
}

// List 按类别分页返回扁平组件列表
func (s *CatalogService) List(category string, page, pageSize int) (*CatalogListResult, error) {
	idx, err := s.index()
	if err != nil {
		return nil, err
	}
	cat, err := model.ParseCategory(category)
	if err != nil {
		return nil, err
	}
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 50
	}
	res := &CatalogListResult{Category: cat, Page: page, PageSize: pageSize}

	items, err := idx.Items(cat)
	if err != nil {
		return nil, err
	}
	switch v := items.(type) {
	case []*model.CPUItem:
		res.Items, res.Total = pageOf(v, page, pageSize), len(v)
	case []*model.MotherboardItem:
		res.Items, res.Total = pageOf(v, page, pageSize), len(v)
	case []*model.RAMItem:
		res.Items, res.Total = pageOf(v, page, pageSize), len(v)
	case []*model.GPUItem:
		res.Items, res.Total = pageOf(v, page, pageSize), len(v)
	case []*model.PSUItem:
		res.Items, res.Total = pageOf(v, page, pageSize), len(v)
	case []*model.CaseItem:
		res.Items, res.Total = pageOf(v, page, pageSize), len(v)
	}
	return res, nil
}

func pageOf[T any](items []T, page, pageSize int) []T {
	// 先比较页号再相乘，超大页号不会溢出
	if page-1 > len(items)/pageSize {
		return []T{}
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Evaluate 按 ID 解析选择并评估；请求中的余量覆盖配置值
func (s *CatalogService) Evaluate(req model.SelectionRequest) (*model.EvaluationResult, error) {
	idx, err := s.index()
	if err != nil {
		return nil, err
	}
	sel, err := idx.Selection(req)
	if err != nil {
		return nil, err
	}
	opts := s.opts
	if req.ExtraHeadroomW != nil {
		opts.ExtraHeadroomW = req.ExtraHeadroomW
	}
	res := compat.Evaluate(sel, idx.Tiers, opts)
	return &res, nil
}
