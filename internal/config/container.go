package config

import (
	"time"

	"maritime-ai-server/internal/domain"
	"maritime-ai-server/internal/repository"
	"maritime-ai-server/internal/service"
	"maritime-ai-server/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config *AppConfig
	Logger domain.Logger

	FileStore      domain.FileStore
	PortRepository *repository.PortRepository
	Geocoder       domain.Geocoder
	Weather        domain.WeatherClient
	Locator        domain.Locator

	Summarizer    domain.Summarizer
	Pipeline      domain.PipelineService
	PortDirectory domain.PortDirectory
	Chat          domain.ChatService
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	// Initialize repositories and external clients
	fileStore, err := repository.NewFileRepository(config.GetUploadPath(), appLogger)
	if err != nil {
		return nil, err
	}

	portRepo, err := repository.NewPortRepository(config.PortsDBPath, config.PortsCSVPath, appLogger)
	if err != nil {
		return nil, err
	}

	geocoder := repository.NewNominatimClient(config.NominatimURL, appLogger)
	weather := repository.NewOpenMeteoClient(config.OpenMeteoURL, appLogger)
	locator := repository.NewGeoIPClient(config.IPAPIURL, config.IpifyURL, appLogger)

	llmTimeout := time.Duration(config.LLMTimeout) * time.Second
	openAI := repository.NewOpenAIClient(config.OpenAIBaseURL, config.OpenAIKey, config.OpenAIModel, llmTimeout, appLogger)
	ollama := repository.NewOllamaClient(config.OllamaHost, config.OllamaModel, llmTimeout, appLogger)

	// Initialize services
	summarizer := service.NewSummarizer(openAI, ollama, config.OpenAIKey != "", appLogger)

	extractor := service.NewTextExtractor(appLogger)
	ocrEngine := service.NewOCREngine(service.NewExecRunner(), service.OCROptions{
		TesseractPath: config.TesseractPath,
		Language:      config.OCRLanguage,
		DPI:           config.OCRDPI,
		Workers:       config.OCRWorkers,
	}, appLogger)
	matcher := service.NewClauseMatcher()
	pipeline := service.NewPipelineService(fileStore, extractor, ocrEngine, matcher, summarizer, appLogger)

	portDirectory := service.NewPortService(portRepo, geocoder, appLogger)
	chat := service.NewChatService(summarizer, portDirectory, weather, locator, appLogger)

	return &Container{
		Config:         config,
		Logger:         appLogger,
		FileStore:      fileStore,
		PortRepository: portRepo,
		Geocoder:       geocoder,
		Weather:        weather,
		Locator:        locator,
		Summarizer:     summarizer,
		Pipeline:       pipeline,
		PortDirectory:  portDirectory,
		Chat:           chat,
	}, nil
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}

// Close releases resources held by the container
func (c *Container) Close() error {
	if c.PortRepository != nil {
		return c.PortRepository.Close()
	}
	return nil
}
