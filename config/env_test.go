package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFilesMergesJSONThenDotEnv(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "app.json")
	envPath := filepath.Join(dir, ".env")

	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"mongo_database":"from-json","app_port":8081,"log_to_mongo":true}`), 0o644))
	require.NoError(t, os.WriteFile(envPath, []byte("# comment\nexport MONGO_DATABASE=\"from-env\"\nUPLOADS_DIR=media\nbroken-line\n"), 0o644))

	t.Cleanup(func() {
		mu.Lock()
		values = defaultValues()
		mu.Unlock()
	})
	require.NoError(t, loadFromFiles(jsonPath, envPath))

	assert.Equal(t, "from-env", get("MONGO_DATABASE", ""))
	assert.Equal(t, "8081", get("APP_PORT", ""))
	assert.Equal(t, "true", get("LOG_TO_MONGO", ""))
	assert.Equal(t, "media", get("UPLOADS_DIR", ""))
	assert.Equal(t, defaultImage, get("DEFAULT_IMAGE", ""))
}

func TestMissingFilesAreNotErrors(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() {
		mu.Lock()
		values = defaultValues()
		mu.Unlock()
	})
	assert.NoError(t, loadFromFiles(filepath.Join(dir, "nope.json"), filepath.Join(dir, ".nope")))
}

func TestEnvironmentOverridesFiles(t *testing.T) {
	t.Setenv("MONGO_DATABASE", "from-process")
	assert.Equal(t, "from-process", MongoDatabase())
}

func TestMongoURIHasNoDefault(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	assert.Empty(t, MongoURI())
}

func TestTypedAccessors(t *testing.T) {
	t.Setenv("PUBLIC_URL", "http://10.0.0.5:3000/")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("MAX_BODY_BYTES", "not-a-number")
	t.Setenv("LOG_TO_MONGO", "yes-please")

	assert.Equal(t, "http://10.0.0.5:3000", PublicURL())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, CORSOrigins())
	assert.Equal(t, int64(defaultMaxBodyBytes), MaxBodyBytes())
	assert.False(t, LogToMongo())

	t.Setenv("RATE_LIMIT", "-4")
	assert.Equal(t, 0, RateLimit())
	t.Setenv("RATE_LIMIT", "120")
	assert.Equal(t, 120, RateLimit())
}
