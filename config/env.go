package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

const (
	defaultAppPort      = "3000"
	defaultAppEnv       = "local"
	defaultPublicURL    = "http://localhost:3000"
	defaultDatabaseName = "delivery"
	defaultUploadsDir   = "uploads"
	defaultImage        = "logo.png"
	defaultStorageDisk  = "local"
	defaultMaxBodyBytes = 10 << 20
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load merges config/app.json and .env over the built-in defaults.
// Process environment variables always win over both files.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_ENV":        defaultAppEnv,
		"APP_PORT":       defaultAppPort,
		"PUBLIC_URL":     defaultPublicURL,
		"MONGO_URI":      "",
		"MONGO_DATABASE": defaultDatabaseName,
		"UPLOADS_DIR":    defaultUploadsDir,
		"DEFAULT_IMAGE":  defaultImage,
		"STORAGE_DISK":   defaultStorageDisk,
		"CORS_ORIGINS":   "*",
		"LOG_TO_MONGO":   "false",
		"RATE_LIMIT":     "0",
	}
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

func AppPort() string {
	_ = Load()
	return get("APP_PORT", defaultAppPort)
}

// PublicURL is the externally reachable base of this server, used to build
// image URLs for the local disk.
func PublicURL() string {
	_ = Load()
	return strings.TrimRight(get("PUBLIC_URL", defaultPublicURL), "/")
}

// MongoURI has no default: an empty value makes startup fail.
func MongoURI() string {
	_ = Load()
	return get("MONGO_URI", "")
}

func MongoDatabase() string {
	_ = Load()
	return get("MONGO_DATABASE", defaultDatabaseName)
}

func LogToMongo() bool {
	_ = Load()
	return Bool("LOG_TO_MONGO", false)
}

// CORSOrigins returns the comma-separated CORS_ORIGINS list.
func CORSOrigins() []string {
	_ = Load()
	var out []string
	for _, o := range strings.Split(get("CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func MaxBodyBytes() int64 {
	_ = Load()
	n, err := strconv.ParseInt(get("MAX_BODY_BYTES", ""), 10, 64)
	if err != nil || n <= 0 {
		return defaultMaxBodyBytes
	}
	return n
}

// RateLimit is the per-client request budget per minute; 0 disables it.
func RateLimit() int {
	_ = Load()
	n, err := strconv.Atoi(get("RATE_LIMIT", "0"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ── Storage ──────────────────────────────────────────────────────────────────

func StorageDefault() string {
	_ = Load()
	return strings.ToLower(get("STORAGE_DISK", defaultStorageDisk))
}

func UploadsDir() string {
	_ = Load()
	return get("UPLOADS_DIR", defaultUploadsDir)
}

func DefaultImage() string {
	_ = Load()
	return get("DEFAULT_IMAGE", defaultImage)
}

func StorageS3Bucket() string   { _ = Load(); return get("S3_BUCKET", "") }
func StorageS3Region() string   { _ = Load(); return get("S3_REGION", "us-east-1") }
func StorageS3Key() string      { _ = Load(); return get("S3_KEY", "") }
func StorageS3Secret() string   { _ = Load(); return get("S3_SECRET", "") }
func StorageS3Endpoint() string { _ = Load(); return get("S3_ENDPOINT", "") }
func StorageS3URL() string      { _ = Load(); return get("S3_URL", "") }

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		switch v := val.(type) {
		case string:
			out[k] = strings.TrimSpace(v)
		case bool:
			out[k] = strconv.FormatBool(v)
		case float64:
			out[k] = strconv.FormatFloat(v, 'f', -1, 64)
		}
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.ToUpper(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		out[key] = strings.Trim(strings.TrimSpace(value), `"'`)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}

func get(key, fallback string) string {
	if env := strings.TrimSpace(os.Getenv(key)); env != "" {
		return env
	}

	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

// Get reads any config key by name with an optional fallback.
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}

// Bool reads a boolean key; unparseable values yield fallback.
func Bool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(Get(key, strconv.FormatBool(fallback)))
	if err != nil {
		return fallback
	}
	return b
}
