package config

import (
	"log"
	"os"
)

// Config holds runtime configuration loaded from env.
type Config struct {
	FirebaseCredentialsPath string
	FirebaseWebAPIKey       string
	FirebaseProjectID       string
	StorageBucket           string
	TMDBAPIKey              string
	TMDBBaseURL             string
	TMDBImageBaseURL        string
	TMDBLanguage            string
	ValkeyAddr              string
	ValkeyPassword          string
	Env                     string
}

func FromEnv() Config {
	return Config{
		FirebaseCredentialsPath: os.Getenv("FIREBASE_CREDENTIALS_PATH"),
		FirebaseWebAPIKey:       os.Getenv("FIREBASE_WEB_API_KEY"),
		FirebaseProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
		StorageBucket:           os.Getenv("FIREBASE_STORAGE_BUCKET"),
		TMDBAPIKey:              os.Getenv("TMDB_API_KEY"),
		TMDBBaseURL:             getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		TMDBImageBaseURL:        getEnv("TMDB_IMAGE_BASE_URL", "https://image.tmdb.org/t/p/w500"),
		TMDBLanguage:            getEnv("TMDB_LANGUAGE", "en-US"),
		ValkeyAddr:              os.Getenv("VALKEY_ADDR"),
		ValkeyPassword:          os.Getenv("VALKEY_PASSWORD"),
		Env:                     getEnv("ENV", "development"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func MustHave(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("missing required env %s", key)
	}
	return v
}
