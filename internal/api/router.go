package api

import (
	"PCQuote/internal/service"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter 注册全部路由；withPprof 为 true 时挂载 pprof
func NewRouter(catalogService *service.CatalogService, logger *logrus.Logger, withPprof bool) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if withPprof {
		// 注册ppof 方便调试和监测性能问题
		pprof.Register(r)
	}

	r.GET("/health", Health)

	catalogHandler := NewCatalogHandler(catalogService, logger)
	r.GET("/api/catalog/meta", catalogHandler.Meta)
	r.GET("/api/catalog/:category", catalogHandler.List)
	r.POST("/api/evaluate", catalogHandler.Evaluate)

	syncHandler := NewSyncHandler(catalogService, logger)
	r.POST("/sync/build", syncHandler.BuildCatalogHandler)
	r.GET("/sync/runs/latest", syncHandler.LatestRunHandler)
	return r
}
