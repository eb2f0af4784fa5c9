package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every process-level setting, loaded once in main and
// passed down explicitly.
type Config struct {
	Port      string
	MongoURI  string
	MongoDB   string
	JWTSecret string

	GeocoderAPIKey  string
	GeocoderTimeout time.Duration
	// StrictGeocoding makes an unresolvable address fail the bootcamp
	// write instead of persisting without a location.
	StrictGeocoding bool

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
}

// Load reads the optional .env file and assembles the configuration from
// the environment, falling back to development defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it, using environment variables")
	}

	return Config{
		Port:      getenv("PORT", "8080"),
		MongoURI:  getenv("MONGO_URI", "mongodb://localhost:27017/devcamper"),
		MongoDB:   getenv("MONGO_DB", "devcamper"),
		JWTSecret: getenv("JWT_SECRET", "dev-secret"),

		GeocoderAPIKey:  os.Getenv("GEOCODER_API_KEY"),
		GeocoderTimeout: duration("GEOCODER_TIMEOUT", 10*time.Second),
		StrictGeocoding: os.Getenv("GEOCODER_STRICT") == "true",

		MinioEndpoint:  getenv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", "minioadmin"),
		MinioUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s %q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
