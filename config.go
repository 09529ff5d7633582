package dropio

import "os"

// ConfigFromEnv builds a Config from DROPIO_* environment variables,
// falling back to the default endpoints.
func ConfigFromEnv() Config {
	return Config{
		APIKey:    getEnv("DROPIO_API_KEY", ""),
		APISecret: getEnv("DROPIO_API_SECRET", ""),
		BaseURL:   getEnv("DROPIO_BASE_URL", DefaultBaseURL),
		APIURL:    getEnv("DROPIO_API_URL", DefaultAPIURL),
		UploadURL: getEnv("DROPIO_UPLOAD_URL", DefaultUploadURL),
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
