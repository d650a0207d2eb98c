package api

import (
	"errors"
	"net/http"

	"PCQuote/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type SyncHandler struct {
	catalogService *service.CatalogService
	logger         *logrus.Logger
}

func NewSyncHandler(catalogService *service.CatalogService, logger *logrus.Logger) *SyncHandler {
	return &SyncHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// BuildCatalogHandler 重新执行目录构建流水线并加载新目录
// @Summary 重建组件目录
// @Success 200 {object} service.BuildReport
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /sync/build [post]
func (h *SyncHandler) BuildCatalogHandler(c *gin.Context) {
	report, err := h.catalogService.Rebuild(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrBuildRunning) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logger.Errorf("目录构建失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, report)
}

// LatestRunHandler 最近一次落库的构建记录（需启用 postgres）
// @Router /sync/runs/latest [get]
func (h *SyncHandler) LatestRunHandler(c *gin.Context) {
	run, err := h.catalogService.LatestRun(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Warn("查询构建记录失败")
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, run)
}
