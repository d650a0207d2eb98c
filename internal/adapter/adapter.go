// internal/adapter/adapter.go
package adapter

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"PCQuote/internal/interfaces"
	"PCQuote/internal/model"

	"github.com/sirupsen/logrus"
)

// ========== 全局工厂函数注册表 ==========
var (
	factoryMu       sync.RWMutex
	factoryRegistry = make(map[model.SourceTag]interfaces.Factory)
)

// Register 供各来源适配器 init 函数调用，注册工厂函数
func Register(source model.SourceTag, factory interfaces.Factory) {
	if factory == nil {
		panic(fmt.Sprintf("来源%s的工厂函数不能为nil", source))
	}
	factoryMu.Lock()
	defer factoryMu.Unlock()
	if _, exists := factoryRegistry[source]; exists {
		logrus.Warnf("来源%s的适配器已注册，将覆盖原有实现", source)
	}
	factoryRegistry[source] = factory
	logrus.Debugf("来源%s工厂函数注册成功", source)
}

// GetFactory 获取指定来源的工厂函数
func GetFactory(source model.SourceTag) (interfaces.Factory, bool) {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	factory, ok := factoryRegistry[source]
	return factory, ok
}

// ListFactories 列出所有已注册的来源（按名称排序，保证加载顺序稳定）
func ListFactories() []model.SourceTag {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	sources := make([]model.SourceTag, 0, len(factoryRegistry))
	for s := range factoryRegistry {
		sources = append(sources, s)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })
	return sources
}

// LogReadErrors 单个文件读取失败只记警告，该文件的贡献视为空
func LogReadErrors(logger *logrus.Logger, source model.SourceTag, errs []error) {
	for _, err := range errs {
		entry := logger.WithError(err).WithField("source", source)
		var readErr *model.SourceReadError
		if errors.As(err, &readErr) {
			entry = entry.WithField("path", readErr.Path)
		}
		entry.Warn("原始文件读取失败，已跳过")
	}
}
