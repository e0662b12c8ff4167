//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/nextpdf/ai-service/internal/bootstrap"
	summary "github.com/nextpdf/ai-service/internal/domain/summary"
	"github.com/nextpdf/ai-service/internal/infra/config"
	httpiface "github.com/nextpdf/ai-service/internal/interface/http"
	"github.com/nextpdf/ai-service/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideSummaryConfig,
		provideGenerator,
		provideChunker,
		provideExtractor,
		provideStorage,
		provideHandlerQueue,
		provideTaskQueue,
		provideResultSink,
		provideSummaryRepository,
		summary.NewService,
		httpiface.NewSummaryHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
