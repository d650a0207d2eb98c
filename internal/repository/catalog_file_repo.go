package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"PCQuote/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// 输出文件基础名（不含后缀）
const (
	FileCPUs          = "cpus"
	FileGPUs          = "gpus"
	FileMotherboards  = "motherboards"
	FilePSUs          = "psus"
	FileCases         = "cases"
	FileRAM           = "ram"
	FileMemory        = "memory" // ram 的别名，内容相同
	FileCoolers       = "coolers"
	FileFans          = "fans"
	FileCompatibility = "compatibility"
)

// CatalogFileRepository 目录的 JSON 文件读写（每个类别一个文件 + compatibility meta）
type CatalogFileRepository struct {
	fs     afero.Fs
	dir    string
	suffix string
	logger *logrus.Logger
}

func NewCatalogFileRepository(fs afero.Fs, dir, suffix string, logger *logrus.Logger) *CatalogFileRepository {
	if suffix == "" {
		suffix = ".json"
	}
	return &CatalogFileRepository{fs: fs, dir: dir, suffix: suffix, logger: logger}
}

func (r *CatalogFileRepository) path(base string) string {
	return filepath.Join(r.dir, base+r.suffix)
}

// encode 两空格缩进、不转义 HTML；相同输入得到相同字节
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteCatalog 按固定顺序写出全部文件；空类别写为 []
func (r *CatalogFileRepository) WriteCatalog(ctx context.Context, c *model.Catalog) error {
	if err := r.fs.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	fillEmpty(c)
	outputs := []struct {
		name string
		data any
	}{
		{FileCPUs, c.CPUs},
		{FileGPUs, c.GPUs},
		{FileMotherboards, c.Motherboards},
		{FilePSUs, c.PSUs},
		{FileCases, c.Cases},
		{FileRAM, c.RAM},
		{FileMemory, c.RAM},
		{FileCoolers, c.Coolers},
		{FileFans, c.Fans},
		{FileCompatibility, c.Compat},
	}
	for _, out := range outputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		raw, err := encode(out.data)
		if err != nil {
			return fmt.Errorf("序列化%s失败: %w", out.name, err)
		}
		path := r.path(out.name)
		if err := afero.WriteFile(r.fs, path, raw, 0o644); err != nil {
			return fmt.Errorf("写入%s失败: %w", path, err)
		}
		r.logger.WithField("path", path).Debug("已写出目录文件")
	}
	r.logger.WithFields(logrus.Fields{
		"dir":   r.dir,
		"files": len(outputs),
	}).Info("目录文件写出完成")
	return nil
}

// readInto 文件不存在返回 false；存在但损坏返回错误
func (r *CatalogFileRepository) readInto(base string, v any) (bool, error) {
	raw, err := afero.ReadFile(r.fs, r.path(base))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("读取%s失败: %w", r.path(base), err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("解析%s失败: %w", r.path(base), err)
	}
	return true, nil
}

// ReadCatalog 读取已输出的目录；缺失的类别视为空集合，一个文件都没有时返回 ErrCatalogNotLoaded
func (r *CatalogFileRepository) ReadCatalog(ctx context.Context) (*model.Catalog, error) {
	c := &model.Catalog{}
	targets := []struct {
		name string
		dst  any
	}{
		{FileCPUs, &c.CPUs},
		{FileGPUs, &c.GPUs},
		{FileMotherboards, &c.Motherboards},
		{FilePSUs, &c.PSUs},
		{FileCases, &c.Cases},
		{FileRAM, &c.RAM},
		{FileCoolers, &c.Coolers},
		{FileFans, &c.Fans},
		{FileCompatibility, &c.Compat},
	}
	found := 0
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ok, err := r.readInto(t.name, t.dst)
		if err != nil {
			return nil, err
		}
		if ok {
			found++
		}
	}
	if found == 0 {
		return nil, fmt.Errorf("%w: %s 下没有目录文件", model.ErrCatalogNotLoaded, r.dir)
	}
	// ram 缺失时尝试别名文件
	if len(c.RAM) == 0 {
		if _, err := r.readInto(FileMemory, &c.RAM); err != nil {
			return nil, err
		}
	}
	fillEmpty(c)
	return c, nil
}

func fillEmpty(c *model.Catalog) {
	if c.CPUs == nil {
		c.CPUs = []*model.CPUComponent{}
	}
	if c.GPUs == nil {
		c.GPUs = []*model.GPUComponent{}
	}
	if c.Motherboards == nil {
		c.Motherboards = []*model.MotherboardComponent{}
	}
	if c.PSUs == nil {
		c.PSUs = []*model.PSUComponent{}
	}
	if c.Cases == nil {
		c.Cases = []*model.CaseComponent{}
	}
	if c.RAM == nil {
		c.RAM = []*model.RAMComponent{}
	}
	if c.Coolers == nil {
		c.Coolers = []*model.CoolerComponent{}
	}
	if c.Fans == nil {
		c.Fans = []*model.FanComponent{}
	}
}
