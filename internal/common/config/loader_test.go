package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
app:
  name: career-workers
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: localhost
    database: careers
    user: ${CAREER_TEST_DB_USER}
  redis:
    address: localhost:6379
  elasticsearch:
    addresses: ["http://localhost:9200"]
scoring:
  strict_grades: true
workers:
  generate-career-recommendations:
    enabled: true
    timeout: 15000
  search-careers:
    enabled: false
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("CAREER_TEST_DB_USER", "scorer")

	cfg, err := LoadFromFile(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "scorer", cfg.Database.Postgres.User)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.True(t, cfg.Scoring.StrictGrades)
	assert.Equal(t, 200, cfg.Scoring.ParallelThreshold)
	assert.Equal(t, 10*time.Minute, cfg.Scoring.CacheTTL())
	assert.Equal(t, "careers", cfg.Search.Index)
	assert.Equal(t, ":8080", cfg.Server.Address)

	gen := GetWorkerConfig(cfg, "generate-career-recommendations")
	assert.Equal(t, 15000, gen.Timeout)
	assert.Equal(t, defaultWorkerMaxJobs, gen.MaxJobsActive)
	assert.Equal(t, defaultMaxRetries, gen.MaxRetries)

	assert.False(t, IsWorkerEnabled(cfg, "search-careers"))
	assert.True(t, IsWorkerEnabled(cfg, "profile-student-strengths"))
}

func TestLoadFromFile_MissingBroker(t *testing.T) {
	_, err := LoadFromFile(writeConfig(t, "database:\n  postgres:\n    host: localhost\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "camunda.broker_address")
}

func TestResolveTimeout(t *testing.T) {
	assert.Equal(t, 2*time.Second, ResolveTimeout(WorkerConfig{Timeout: 2000}, 5*time.Second))
	assert.Equal(t, 5*time.Second, ResolveTimeout(WorkerConfig{}, 5*time.Second))
	assert.Equal(t, 30*time.Second, ResolveTimeout(WorkerConfig{}, 0))
}

func TestPostgresDSN(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "careers", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=careers sslmode=disable", p.GetDSN())
}
