package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/fadedpez/blackjack/internal/logging"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) SetupTest() {
	// Run from an empty directory so no stray .env is picked up
	s.T().Chdir(s.T().TempDir())
	for _, key := range []string{
		"STARTING_BANK", "STORAGE_TYPE", "DATA_DIR", "LOG_LEVEL", "ENVIRONMENT",
		"ELASTICSEARCH_URL", "ELASTICSEARCH_INDEX_PREFIX",
	} {
		s.T().Setenv(key, "")
	}
}

func (s *ConfigTestSuite) TestDefaults() {
	cfg, err := Load()
	s.Require().NoError(err)

	s.Equal(int64(100), cfg.StartingBank)
	s.Equal(StorageMemory, cfg.StorageType)
	s.Equal("blackjack", cfg.ElasticsearchIndexPrefix)
	s.Empty(cfg.ElasticsearchURL)
	s.Equal(logging.INFO, cfg.Level())
	s.True(cfg.IsDevelopment())
}

func (s *ConfigTestSuite) TestOverrides() {
	dataDir := filepath.Join(s.T().TempDir(), "db")
	s.T().Setenv("STARTING_BANK", "250")
	s.T().Setenv("STORAGE_TYPE", "sqlite")
	s.T().Setenv("DATA_DIR", dataDir)
	s.T().Setenv("LOG_LEVEL", "debug")
	s.T().Setenv("ENVIRONMENT", "production")

	cfg, err := Load()
	s.Require().NoError(err)

	s.Equal(int64(250), cfg.StartingBank)
	s.Equal(StorageSQLite, cfg.StorageType)
	s.Equal(filepath.Join(dataDir, "blackjack.db"), cfg.DatabasePath())
	s.DirExists(dataDir)
	s.Equal(logging.DEBUG, cfg.Level())
	s.False(cfg.IsDevelopment())
}

func (s *ConfigTestSuite) TestInvalid() {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{"non numeric bank", "STARTING_BANK", "lots"},
		{"negative bank", "STARTING_BANK", "-5"},
		{"unknown storage", "STORAGE_TYPE", "postgres"},
		{"unknown log level", "LOG_LEVEL", "verbose"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.T().Setenv(tc.key, tc.value)
			_, err := Load()
			s.Error(err)
		})
	}
}
