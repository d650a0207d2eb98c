package adapter

import (
	"fmt"

	"PCQuote/internal/config"
	"PCQuote/internal/interfaces"
	"PCQuote/internal/model"
	"PCQuote/internal/utils/fileloader"

	"github.com/sirupsen/logrus"
)

// SourceRegistry 按配置实例化的来源适配器集合，顺序固定
type SourceRegistry struct {
	cfg    *config.Config
	loader *fileloader.Loader
	logger *logrus.Logger

	adapters []interfaces.SourceAdapter
	byName   map[model.SourceTag]interfaces.SourceAdapter
}

func NewSourceRegistry(cfg *config.Config, loader *fileloader.Loader, logger *logrus.Logger) *SourceRegistry {
	r := &SourceRegistry{
		cfg:    cfg,
		loader: loader,
		logger: logger,
		byName: make(map[model.SourceTag]interfaces.SourceAdapter),
	}
	r.initAdaptersFromFactories()
	return r
}

// initAdaptersFromFactories 从工厂函数注册表创建配置中启用的来源
func (r *SourceRegistry) initAdaptersFromFactories() {
	for _, source := range ListFactories() {
		log := r.logger.WithField("source", source)

		srcCfg, ok := r.cfg.Sources[string(source)]
		if !ok || !srcCfg.Enabled {
			log.Info("来源未启用，跳过")
			continue
		}

		factory, _ := GetFactory(source)
		dir := r.cfg.SourceDir(string(source))
		adapterIns := factory(dir, r.loader, r.logger)
		if adapterIns == nil {
			log.Error("工厂函数返回nil适配器实例")
			continue
		}
		if adapterIns.Name() != source {
			log.WithField("adapter_source", adapterIns.Name()).Error("适配器来源标识与注册名不匹配")
			continue
		}

		r.adapters = append(r.adapters, adapterIns)
		r.byName[source] = adapterIns
		log.WithField("dir", dir).Info("来源适配器初始化成功")
	}

	for name := range r.cfg.Sources {
		if _, ok := GetFactory(model.SourceTag(name)); !ok {
			r.logger.WithField("source", name).Warn("配置中的来源没有对应的适配器（init未注册？）")
		}
	}
	r.logger.WithField("count", len(r.adapters)).Info("来源适配器初始化完成")
}

// Adapters 已启用的适配器，按来源名排序
func (r *SourceRegistry) Adapters() []interfaces.SourceAdapter {
	return r.adapters
}

// GetAdapter 获取指定来源的适配器实例
func (r *SourceRegistry) GetAdapter(source model.SourceTag) (interfaces.SourceAdapter, error) {
	a, ok := r.byName[source]
	if !ok {
		return nil, fmt.Errorf("来源%s未初始化适配器实例", source)
	}
	return a, nil
}

// Count 已初始化的来源数量
func (r *SourceRegistry) Count() int {
	return len(r.adapters)
}
