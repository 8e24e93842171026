package config

import (
	"os"
	"strconv"
	"strings"
)

// AppConfig holds every tunable the server reads from the environment.
// The handler and service layers see it through domain.Config; the
// container wires the richer fields into the concrete constructors.
type AppConfig struct {
	ServerPort  string
	UploadPath  string
	MaxFileSize int64
	LogLevel    string
	CORSOrigins []string

	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string
	OllamaHost    string
	OllamaModel   string
	LLMTimeout    int

	TesseractPath string
	OCRLanguage   string
	OCRDPI        int
	OCRWorkers    int

	PortsDBPath  string
	PortsCSVPath string

	NominatimURL string
	OpenMeteoURL string
	IPAPIURL     string
	IpifyURL     string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() *AppConfig {
	return &AppConfig{
		// Render (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:  getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8000")),
		UploadPath:  getEnvOrDefault("UPLOAD_PATH", "./uploads"),
		MaxFileSize: getEnvInt64OrDefault("MAX_FILE_SIZE", 10*1024*1024), // 10MB default
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		CORSOrigins: getEnvSliceOrDefault("CORS_ALLOWED_ORIGINS", []string{
			"https://maritime-ai-frontend.onrender.com",
			"http://localhost:5173",
		}),

		OpenAIKey:     getEnvOrDefault("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OllamaHost:    getEnvOrDefault("OLLAMA_HOST", "http://127.0.0.1:11434"),
		OllamaModel:   getEnvOrDefault("OLLAMA_MODEL", "llama3.1:8b"),
		LLMTimeout:    getEnvIntOrDefault("LLM_TIMEOUT_SECONDS", 45),

		TesseractPath: getEnvOrDefault("TESSERACT_PATH", "tesseract"),
		OCRLanguage:   getEnvOrDefault("OCR_LANGUAGE", "eng"),
		OCRDPI:        getEnvIntOrDefault("OCR_DPI", 300),
		OCRWorkers:    getEnvIntOrDefault("OCR_WORKERS", 4),

		PortsDBPath:  getEnvOrDefault("PORTS_DB_PATH", "./data/ports.db"),
		PortsCSVPath: getEnvOrDefault("PORTS_CSV_PATH", ""),

		NominatimURL: getEnvOrDefault("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		OpenMeteoURL: getEnvOrDefault("OPEN_METEO_URL", "https://api.open-meteo.com"),
		IPAPIURL:     getEnvOrDefault("IP_API_URL", "http://ip-api.com"),
		IpifyURL:     getEnvOrDefault("IPIFY_URL", "https://api.ipify.org"),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetUploadPath returns the upload directory path
func (c *AppConfig) GetUploadPath() string {
	return c.UploadPath
}

// GetMaxFileSize returns the maximum allowed file size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetCORSOrigins returns the allowed CORS origins
func (c *AppConfig) GetCORSOrigins() []string {
	return c.CORSOrigins
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvSliceOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		return defaultValue
	}
	return origins
}
