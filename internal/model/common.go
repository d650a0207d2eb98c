package model

import (
	"errors"
	"fmt"
)

// Category 组件类别枚举
type Category string

const (
	CategoryCPU         Category = "cpu"
	CategoryGPU         Category = "gpu"
	CategoryMotherboard Category = "motherboard"
	CategoryPSU         Category = "psu"
	CategoryCase        Category = "case"
	CategoryRAM         Category = "ram"
	CategoryCooler      Category = "cooler"
	CategoryFan         Category = "fan"
)

// AllCategories 固定顺序，输出与日志都按此顺序遍历
var AllCategories = []Category{
	CategoryCPU,
	CategoryGPU,
	CategoryMotherboard,
	CategoryPSU,
	CategoryCase,
	CategoryRAM,
	CategoryCooler,
	CategoryFan,
}

// ParseCategory 解析类别字符串（兼容复数与 mobo/memory 别名）
func ParseCategory(s string) (Category, error) {
	switch s {
	case "cpu", "cpus":
		return CategoryCPU, nil
	case "gpu", "gpus":
		return CategoryGPU, nil
	case "motherboard", "motherboards", "mobo", "mobos":
		return CategoryMotherboard, nil
	case "psu", "psus":
		return CategoryPSU, nil
	case "case", "cases":
		return CategoryCase, nil
	case "ram", "memory":
		return CategoryRAM, nil
	case "cooler", "coolers":
		return CategoryCooler, nil
	case "fan", "fans":
		return CategoryFan, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// SourceTag 数据来源标识
type SourceTag string

const (
	SourceBuildCores SourceTag = "buildcores" // 人工整理的数据集，优先级最高
	SourceDBGPU      SourceTag = "dbgpu"
	SourcePCPart     SourceTag = "pcpart" // 社区数据集
)

var (
	ErrUnknownCategory    = errors.New("unknown component category")
	ErrComponentNotFound  = errors.New("component not found")
	ErrCatalogNotLoaded   = errors.New("catalog not loaded")
	ErrEmptyCluster       = errors.New("empty record cluster")
	ErrIDCollision        = errors.New("canonical id collision")
	ErrNoBuildRun         = errors.New("no catalog build run recorded")
	ErrRunHistoryDisabled = errors.New("build run history requires postgres")
)

// SourceReadError 单个原始文件缺失/不可读/格式错误。只记录警告，该文件贡献视为空
type SourceReadError struct {
	Source SourceTag
	Path   string
	Err    error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("读取来源%s文件%s失败: %v", e.Source, e.Path, e.Err)
}

func (e *SourceReadError) Unwrap() error { return e.Err }
