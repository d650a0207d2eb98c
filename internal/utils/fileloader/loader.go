// Package fileloader 读取本地原始数据文件（JSON/CSV），文件系统与缓存均由调用方注入
package fileloader

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"PCQuote/internal/model"

	"github.com/spf13/afero"
)

// Item 一条未定型的原始记录
type Item = map[string]any

// Cache 按路径缓存解析结果，由调用方创建并传入；nil 表示不缓存
type Cache struct {
	mu    sync.Mutex
	items map[string][]Item
}

func NewCache() *Cache {
	return &Cache{items: make(map[string][]Item)}
}

func (c *Cache) get(path string) ([]Item, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[path]
	return v, ok
}

func (c *Cache) put(path string, items []Item) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[path] = items
}

// Len 已缓存的文件数
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Reset 清空缓存，下一次读取重新解析文件
func (c *Cache) Reset() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string][]Item)
}

// Loader 原始文件读取器
type Loader struct {
	fs    afero.Fs
	cache *Cache
}

func New(fs afero.Fs, cache *Cache) *Loader {
	return &Loader{fs: fs, cache: cache}
}

// ReadJSONFile 读取单个 JSON 文件：数组逐条展开，单个对象视为一条
// 文件不存在返回 SourceReadError（调用方按需忽略）
func (l *Loader) ReadJSONFile(source model.SourceTag, path string) ([]Item, error) {
	if cached, ok := l.cache.get(path); ok {
		return cached, nil
	}
	raw, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, &model.SourceReadError{Source: source, Path: path, Err: err}
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &model.SourceReadError{Source: source, Path: path, Err: fmt.Errorf("JSON解析失败: %w", err)}
	}
	var items []Item
	switch v := parsed.(type) {
	case []any:
		for _, el := range v {
			if obj, ok := el.(map[string]any); ok {
				items = append(items, obj)
			}
		}
	case map[string]any:
		items = append(items, v)
	default:
		return nil, &model.SourceReadError{Source: source, Path: path, Err: errors.New("顶层既不是数组也不是对象")}
	}
	l.cache.put(path, items)
	return items, nil
}

// ReadCSVFile 读取带表头的 CSV，每行转为 表头->字符串值
func (l *Loader) ReadCSVFile(source model.SourceTag, path string) ([]Item, error) {
	if cached, ok := l.cache.get(path); ok {
		return cached, nil
	}
	f, err := l.fs.Open(path)
	if err != nil {
		return nil, &model.SourceReadError{Source: source, Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, &model.SourceReadError{Source: source, Path: path, Err: fmt.Errorf("CSV表头解析失败: %w", err)}
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	var items []Item
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &model.SourceReadError{Source: source, Path: path, Err: fmt.Errorf("CSV解析失败: %w", err)}
		}
		item := make(Item, len(header))
		for i, h := range header {
			if i < len(row) {
				item[h] = strings.TrimSpace(row[i])
			}
		}
		items = append(items, item)
	}
	l.cache.put(path, items)
	return items, nil
}

// ReadDir 读取目录下指定后缀的全部文件（按文件名排序）
// 单个文件失败不影响其它文件，错误逐个返回供调用方记录
func (l *Loader) ReadDir(source model.SourceTag, dir string, ext string) ([]Item, []error) {
	exists, err := afero.DirExists(l.fs, dir)
	if err != nil || !exists {
		return nil, nil
	}
	entries, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		return nil, []error{&model.SourceReadError{Source: source, Path: dir, Err: err}}
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ext) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var items []Item
	var errs []error
	for _, name := range names {
		path := filepath.Join(dir, name)
		var got []Item
		var err error
		if strings.EqualFold(ext, ".csv") {
			got, err = l.ReadCSVFile(source, path)
		} else {
			got, err = l.ReadJSONFile(source, path)
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		items = append(items, got...)
	}
	return items, errs
}

// ReadOptionalJSON 文件不存在时返回空且不报错
func (l *Loader) ReadOptionalJSON(source model.SourceTag, path string) ([]Item, error) {
	exists, err := afero.Exists(l.fs, path)
	if err != nil || !exists {
		return nil, nil
	}
	return l.ReadJSONFile(source, path)
}
