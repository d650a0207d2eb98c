package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"PCQuote/internal/adapter"
	_ "PCQuote/internal/adapter/buildcores"
	_ "PCQuote/internal/adapter/dbgpu"
	_ "PCQuote/internal/adapter/pcpart"
	"PCQuote/internal/api"
	"PCQuote/internal/config"
	"PCQuote/internal/interfaces"
	"PCQuote/internal/model"
	"PCQuote/internal/repository"
	"PCQuote/internal/service"
	"PCQuote/internal/utils/fileloader"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// cli 命令行参数与原始数据/目录所在的文件系统
type cli struct {
	fs        afero.Fs
	config    string
	verbose   bool
	selection string
}

// app 每个子命令共用的依赖
type app struct {
	cfg    *config.Config
	logger *logrus.Logger
	fs     afero.Fs
	store  repository.CatalogRepository
}

func newRootCmd() *cobra.Command {
	return newRootCmdWithFs(afero.NewOsFs())
}

func newRootCmdWithFs(fs afero.Fs) *cobra.Command {
	c := &cli{fs: fs}
	root := &cobra.Command{
		Use:   "pcquote",
		Short: "PC component catalog builder and compatibility evaluator",
		Long: `pcquote merges pre-fetched PC component datasets into one canonical catalog
and evaluates component selections for compatibility and power.

  build     run the merge pipeline and write the catalog files
  serve     load the catalog and expose the HTTP API
  evaluate  evaluate a selection file against the catalog`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&c.config, "config", "c", "", "Path to config.yaml (default ./config/config.yaml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")

	evaluateCmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate a selection of component ids",
		Long: `Evaluate a JSON selection against the emitted catalog and print the result.

Example selection file:
  {"cpu_id": "cpu_amd_ryzen_5_7600", "motherboard_id": "motherboard_msi_b650", "psu_id": "psu_corsair_rm850e"}`,
		RunE: c.runEvaluate,
	}
	evaluateCmd.Flags().StringVarP(&c.selection, "selection", "s", "", "Path to the selection JSON file")
	_ = evaluateCmd.MarkFlagRequired("selection")

	root.AddCommand(
		&cobra.Command{Use: "build", Short: "Run the catalog merge pipeline", RunE: c.runBuild},
		&cobra.Command{Use: "serve", Short: "Serve the catalog and evaluation API", RunE: c.runServe},
		evaluateCmd,
	)
	return root
}

func (c *cli) newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.LoadConfig(c.config)
	if err != nil {
		return nil, fmt.Errorf("加载配置文件失败: %w", err)
	}
	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(logrus.InfoLevel)
	if c.verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	logger.Info("配置文件加载成功")
	return &app{cfg: cfg, logger: logger, fs: c.fs}, nil
}

func (a *app) catalogFiles() *repository.CatalogFileRepository {
	return repository.NewCatalogFileRepository(a.fs, a.cfg.Pipeline.OutDir, a.cfg.Pipeline.FileSuffix, a.logger)
}

// catalogStore 启用 postgres 时返回数据库仓库，只连接一次
func (a *app) catalogStore() (repository.CatalogRepository, error) {
	if !a.cfg.Postgres.Enabled {
		return nil, nil
	}
	if a.store == nil {
		db, err := openDatabase(&a.cfg.Postgres, a.logger)
		if err != nil {
			return nil, err
		}
		a.store = repository.NewCatalogRepository(db)
	}
	return a.store, nil
}

// pipeline 组装流水线；启用 postgres 时同时落库
func (a *app) pipeline() (*service.PipelineService, error) {
	cache := fileloader.NewCache()
	registry := adapter.NewSourceRegistry(a.cfg, fileloader.New(a.fs, cache), a.logger)
	if registry.Count() == 0 {
		return nil, fmt.Errorf("没有可用的数据来源")
	}

	repo, err := a.catalogStore()
	if err != nil {
		return nil, err
	}
	var store interfaces.CatalogStore
	if repo != nil {
		store = repo
	}
	p := service.NewPipelineService(registry.Adapters(), a.catalogFiles(), store, a.cfg.Pipeline, a.logger)
	return p.WithCache(cache), nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func (c *cli) runBuild(cmd *cobra.Command, args []string) error {
	a, err := c.newApp(cmd)
	if err != nil {
		return err
	}
	p, err := a.pipeline()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	report, err := p.Run(ctx)
	if err != nil {
		if service.IsIDCollision(err) {
			return fmt.Errorf("%w（如需自动追加后缀，将 pipeline.id_collision_policy 设为 %s）", err, config.CollisionSuffix)
		}
		return err
	}
	out := cmd.OutOrStdout()
	for _, cat := range model.AllCategories {
		fmt.Fprintf(out, "%-12s %d\n", cat, report.Counts[string(cat)])
	}
	fmt.Fprintf(out, "conflicts    %d\nrun_id       %s\n", report.Conflicts, report.RunID)
	return nil
}

func (c *cli) runServe(cmd *cobra.Command, args []string) error {
	a, err := c.newApp(cmd)
	if err != nil {
		return err
	}
	p, err := a.pipeline()
	if err != nil {
		a.logger.WithError(err).Warn("流水线不可用，/sync/build 将返回错误")
	}
	svc := service.NewCatalogService(a.catalogFiles(), p, a.cfg.Evaluator, a.logger)
	if a.store != nil {
		svc.WithRunHistory(a.store)
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()
	if err := svc.Load(ctx); err != nil {
		// 目录可稍后通过 /sync/build 生成
		a.logger.WithError(err).Warn("启动时未能加载目录")
	}

	gin.SetMode(a.cfg.Server.Mode)
	r := api.NewRouter(svc, a.logger, a.cfg.Server.Mode != gin.ReleaseMode)
	a.logger.Infof("Gin运行模式: %s", a.cfg.Server.Mode)

	port := a.cfg.Server.Port
	a.logger.Infof("服务启动成功，端口：%d", port)
	if err := r.Run(fmt.Sprintf(":%d", port)); err != nil {
		return fmt.Errorf("启动服务失败: %w", err)
	}
	return nil
}

func (c *cli) runEvaluate(cmd *cobra.Command, args []string) error {
	a, err := c.newApp(cmd)
	if err != nil {
		return err
	}
	raw, err := afero.ReadFile(a.fs, c.selection)
	if err != nil {
		return fmt.Errorf("读取选择文件失败: %w", err)
	}
	var req model.SelectionRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("解析选择文件失败: %w", err)
	}

	svc := service.NewCatalogService(a.catalogFiles(), nil, a.cfg.Evaluator, a.logger)
	if err := svc.Load(cmd.Context()); err != nil {
		return err
	}
	res, err := svc.Evaluate(req)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
