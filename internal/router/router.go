// Package router assembles the HTTP engine.
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/db"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/docs"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/handler"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/metrics"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/middleware"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/service"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Options struct {
	Store     *db.Store
	Log       zerolog.Logger
	Version   string
	StartTime time.Time
}

func New(opts Options) *gin.Engine {
	metrics.Register()

	e := gin.New()
	// Recovery must stay innermost; Logger and Metrics read the recovered status.
	e.Use(
		middleware.RequestID(),
		middleware.Logger(opts.Log),
		middleware.Metrics(),
		middleware.Recovery(opts.Log),
	)

	e.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
	})

	docs.SwaggerInfo.Version = opts.Version

	authors := service.NewAuthorService(opts.Store.Authors, opts.Store.Books, opts.Log)
	books := service.NewBookService(opts.Store.Books, opts.Store.Authors, opts.Log)

	handler.NewHealthHandler(opts.Store.Pinger, opts.Store.Driver, opts.StartTime, opts.Version).RegisterRoutes(e)

	api := e.Group("")
	{
		handler.NewAuthorHandler(authors).RegisterRoutes(api)
		handler.NewBookHandler(books).RegisterRoutes(api)
	}

	e.GET("/metrics", gin.WrapH(promhttp.Handler()))
	e.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return e
}
