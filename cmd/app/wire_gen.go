// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package main

import (
	"github.com/nextpdf/ai-service/internal/bootstrap"
	"github.com/nextpdf/ai-service/internal/domain/summary"
	"github.com/nextpdf/ai-service/internal/infra/config"
	"github.com/nextpdf/ai-service/internal/interface/http"
	"github.com/nextpdf/ai-service/pkg/logger"
)

// Injectors from wire.go:

func initializeApp() (*bootstrap.App, error) {
	configConfig, err := config.Load()
	if err != nil {
		return nil, err
	}
	slogLogger := logger.New()
	summaryConfig := provideSummaryConfig(configConfig)
	generator, err := provideGenerator(configConfig, slogLogger)
	if err != nil {
		return nil, err
	}
	chunker := provideChunker(configConfig)
	textExtractor := provideExtractor()
	objectStorage := provideStorage(configConfig, slogLogger)
	handlerQueue := provideHandlerQueue(configConfig, slogLogger)
	taskQueue := provideTaskQueue(handlerQueue)
	resultSink := provideResultSink(configConfig, slogLogger)
	summaryRepository := provideSummaryRepository(configConfig, slogLogger)
	service := summary.NewService(summaryConfig, generator, chunker, textExtractor, objectStorage, taskQueue, resultSink, summaryRepository, slogLogger)
	summaryHandler := http.NewSummaryHandler(service, slogLogger)
	server := http.NewRouter(configConfig, summaryHandler)
	app := bootstrap.NewApp(configConfig, slogLogger, server, handlerQueue, service)
	return app, nil
}
