package confs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadConfig loads environment variables from a .env file if present.
// Missing files are fine; the process environment wins either way.
func LoadConfig() error {
	if err := godotenv.Load(); err != nil {
		// Only log when the file exists but could not be read.
		if !os.IsNotExist(err) {
			log.Printf("warning: could not load .env: %v", err)
		}
	}
	return nil
}

// JWTSecret returns the HMAC signing key for session tokens, with a
// development fallback when unset.
func JWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-insecure-secret-change"
	}
	return []byte(secret)
}

// MLServiceURL returns the base URL of the external forecasting service.
func MLServiceURL() string {
	url := os.Getenv("ML_SERVICE_URL")
	if url == "" {
		url = "http://127.0.0.1:5001"
	}
	return url
}

// GeminiAPIKey returns the Gemini key; empty means the chat assistant
// answers in offline mode.
func GeminiAPIKey() string { return os.Getenv("GEMINI_API_KEY") }

// OpenAIAPIKey returns the OpenAI key, tried when no Gemini key is set.
func OpenAIAPIKey() string { return os.Getenv("OPENAI_API_KEY") }

// GovAPIKey returns the data.gov.in key; when empty the market sync
// falls back to the simulated feed.
func GovAPIKey() string { return os.Getenv("GOV_API_KEY") }

// ServerAddr returns the listen address for the HTTP server.
// SERVER_ADDR wins; PORT alone binds all interfaces on that port.
func ServerAddr() string {
	if addr := os.Getenv("SERVER_ADDR"); addr != "" {
		return addr
	}
	if port := os.Getenv("PORT"); port != "" {
		return "0.0.0.0:" + port
	}
	return "0.0.0.0:5000"
}
