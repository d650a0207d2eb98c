package api

import (
	"errors"
	"net/http"
	"strconv"

	"PCQuote/internal/model"
	"PCQuote/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CatalogHandler 提供给前端的目录查询与选择评估接口
type CatalogHandler struct {
	catalogService *service.CatalogService
	logger         *logrus.Logger
}

// NewCatalogHandler 创建 CatalogHandler
func NewCatalogHandler(catalogService *service.CatalogService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// statusOf 业务错误 → HTTP 状态码
func statusOf(err error) int {
	switch {
	case errors.Is(err, model.ErrUnknownCategory), errors.Is(err, model.ErrComponentNotFound),
		errors.Is(err, model.ErrNoBuildRun), errors.Is(err, model.ErrRunHistoryDisabled):
		return http.StatusNotFound
	case errors.Is(err, model.ErrCatalogNotLoaded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// Meta 目录统计、范围与档位表
// GET /api/catalog/meta
func (h *CatalogHandler) Meta(c *gin.Context) {
	meta, err := h.catalogService.Meta()
	if err != nil {
		h.logger.WithError(err).Error("Meta failed")
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meta)
}

// List 类别组件列表
// GET /api/catalog/:category?page=1&page_size=50
func (h *CatalogHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))

	result, err := h.catalogService.List(c.Param("category"), page, pageSize)
	if err != nil {
		h.logger.WithError(err).WithField("category", c.Param("category")).Error("List failed")
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Evaluate 按 ID 评估一次选择
// POST /api/evaluate {"cpu_id": "...", "motherboard_id": "...", ...}
func (h *CatalogHandler) Evaluate(c *gin.Context) {
	var req model.SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	result, err := h.catalogService.Evaluate(req)
	if err != nil {
		h.logger.WithError(err).Error("Evaluate failed")
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Health 存活检查
// GET /health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
