package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/overlap-backend-go/internal/archive"
	"github.com/jengzang/overlap-backend-go/internal/config"
	"github.com/jengzang/overlap-backend-go/internal/database"
	"github.com/jengzang/overlap-backend-go/internal/handler"
	"github.com/jengzang/overlap-backend-go/internal/middleware"
	"github.com/jengzang/overlap-backend-go/internal/normalize"
	"github.com/jengzang/overlap-backend-go/internal/repository"
	"github.com/jengzang/overlap-backend-go/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Overlap Backend API is running",
		})
	})

	// Wire the pipeline: loader -> repositories -> services -> handlers
	db := database.GetDB()
	pointRepo := repository.NewPointRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	loader := archive.NewLoader(normalize.New(cfg.IncludeWaypoints))

	ingestService := service.NewIngestService(loader, pointRepo)
	pointService := service.NewPointService(pointRepo)
	overlapService := service.NewOverlapService(pointRepo, matchRepo, cfg.TimeThresholdMin, cfg.DistThresholdKm)

	archiveHandler := handler.NewArchiveHandler(ingestService)
	pointHandler := handler.NewPointHandler(pointService)
	overlapHandler := handler.NewOverlapHandler(overlapService)

	auth := middleware.JWTAuth(cfg.JWTSecret)

	// API 路由组
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(120, time.Minute))
	{
		// 档案上传接口
		api.POST("/archives", auth, archiveHandler.UploadArchive)

		// 点位查询接口
		api.GET("/points", pointHandler.GetPoints)
		api.GET("/users", pointHandler.GetUsers)

		// 重叠检测接口
		api.POST("/overlaps", auth, overlapHandler.DetectOverlaps)
		api.GET("/overlaps", overlapHandler.GetMatches)
	}

	return r
}
