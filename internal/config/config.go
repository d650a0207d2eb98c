package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// 目录规范化 ID 冲突处理策略
const (
	CollisionSuffix = "suffix" // 后出现的簇追加 _2、_3…
	CollisionFail   = "fail"   // 直接报错终止构建
)

// Config 全局配置结构体（与 config/config.yaml 对应）
type Config struct {
	Server    ServerConfig            `mapstructure:"server"`    // 服务器配置
	Postgres  PostgresConfig          `mapstructure:"postgres"`  // 可选的目录落库
	Pipeline  PipelineConfig          `mapstructure:"pipeline"`  // 离线合并流水线
	Sources   map[string]SourceConfig `mapstructure:"sources"`   // 各原始数据来源
	Evaluator EvaluatorConfig         `mapstructure:"evaluator"` // 兼容性评估参数
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// PostgresConfig PostgreSQL 配置，enabled=false 时只写文件不落库
type PostgresConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// PipelineConfig 流水线输入输出与合并参数
type PipelineConfig struct {
	RawDir             string  `mapstructure:"raw_dir"`              // 原始数据根目录
	OutDir             string  `mapstructure:"out_dir"`              // 目录文件输出目录
	FileSuffix         string  `mapstructure:"file_suffix"`          // 输出文件后缀
	ConflictToleranceW float64 `mapstructure:"conflict_tolerance_w"` // TDP 冲突容差（瓦）
	IDCollisionPolicy  string  `mapstructure:"id_collision_policy"`  // suffix / fail
}

// SourceConfig 单个来源配置，Dir 为相对 raw_dir 的路径（也可为绝对路径）
type SourceConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// EvaluatorConfig 功耗模型参数
type EvaluatorConfig struct {
	ExtraHeadroomW float64 `mapstructure:"extra_headroom_w"` // 平台/风扇额外余量
	PSUStepW       float64 `mapstructure:"psu_step_w"`       // 推荐电源向上取整步长，0 不取整
}

// LoadConfig 加载配置文件，path 为空时在 ./config 下查找 config.yaml
// 配置文件缺失时使用默认值；敏感项从 .env / 环境变量覆盖（不提交 git）
func LoadConfig(path string) (*Config, error) {
	// 1. 加载 .env（若存在）
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	// 2. 读取 config.yaml
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("配置校验失败: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")

	v.SetDefault("postgres.enabled", false)
	v.SetDefault("postgres.max_open_conns", 10)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime", "1h")

	v.SetDefault("pipeline.raw_dir", "data/raw")
	v.SetDefault("pipeline.out_dir", "data/processed")
	v.SetDefault("pipeline.file_suffix", ".min.json")
	v.SetDefault("pipeline.conflict_tolerance_w", 5)
	v.SetDefault("pipeline.id_collision_policy", CollisionSuffix)

	v.SetDefault("sources.buildcores.enabled", true)
	v.SetDefault("sources.buildcores.dir", "buildcores-open-db/open-db")
	v.SetDefault("sources.dbgpu.enabled", true)
	v.SetDefault("sources.dbgpu.dir", "dbgpu")
	v.SetDefault("sources.pcpart.enabled", true)
	v.SetDefault("sources.pcpart.dir", "pc-part-dataset/data/json")

	v.SetDefault("evaluator.extra_headroom_w", 50)
	v.SetDefault("evaluator.psu_step_w", 50)
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("PCQUOTE_POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("PCQUOTE_RAW_DIR"); v != "" {
		cfg.Pipeline.RawDir = v
	}
	if v := os.Getenv("PCQUOTE_OUT_DIR"); v != "" {
		cfg.Pipeline.OutDir = v
	}
}

func (c *Config) validate() error {
	switch c.Pipeline.IDCollisionPolicy {
	case CollisionSuffix, CollisionFail:
	default:
		return fmt.Errorf("id_collision_policy 只能为 %s 或 %s，当前: %q", CollisionSuffix, CollisionFail, c.Pipeline.IDCollisionPolicy)
	}
	if c.Pipeline.ConflictToleranceW < 0 {
		return fmt.Errorf("conflict_tolerance_w 不能为负: %v", c.Pipeline.ConflictToleranceW)
	}
	if c.Evaluator.ExtraHeadroomW < 0 {
		return fmt.Errorf("extra_headroom_w 不能为负: %v", c.Evaluator.ExtraHeadroomW)
	}
	if c.Evaluator.PSUStepW < 0 {
		return fmt.Errorf("psu_step_w 不能为负: %v", c.Evaluator.PSUStepW)
	}
	if c.Postgres.Enabled && c.Postgres.DSN == "" {
		return errors.New("postgres.enabled=true 时必须提供 dsn（或设置 PCQUOTE_POSTGRES_DSN）")
	}
	return nil
}

// SourceDir 来源的实际目录：相对路径拼接在 raw_dir 下
func (c *Config) SourceDir(name string) string {
	src, ok := c.Sources[name]
	if !ok || src.Dir == "" {
		return filepath.Join(c.Pipeline.RawDir, name)
	}
	if filepath.IsAbs(src.Dir) {
		return src.Dir
	}
	return filepath.Join(c.Pipeline.RawDir, src.Dir)
}

// GetGORMConfig 获取 gorm 配置
func (p *PostgresConfig) GetGORMConfig() gorm.Config {
	return gorm.Config{}
}
