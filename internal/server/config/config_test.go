package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.EndpointAddr)
	assert.Equal(t, "outbox", cfg.OutboxBucket)
	assert.Equal(t, 120*time.Second, cfg.RetryAccessAfter)
	assert.Equal(t, 30*time.Second, cfg.TokenValidity)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_DrsServerURI(t *testing.T) {
	tests := []struct {
		uri     string
		wantErr bool
	}{
		{"drs://localhost:8080/", false},
		{"drs://files.example.org/", false},
		{"http://localhost:8080/", true},
		{"drs://localhost:8080", true},
		{"drs:///", true},
		{"", true},
	}

	for _, tc := range tests {
		cfg := &Config{}
		cfg.LoadDefaults()
		cfg.DrsServerURI = tc.uri

		err := cfg.Validate()
		if tc.wantErr {
			assert.Error(t, err, "uri %q", tc.uri)
		} else {
			assert.NoError(t, err, "uri %q", tc.uri)
		}
	}
}

func TestParseJson_Overlay(t *testing.T) {
	retry := 60
	jc := JsonConfig{
		EndpointAddr:     ":9999",
		OutboxBucket:     "staging",
		RetryAccessAfter: &retry,
	}
	data, err := json.Marshal(jc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"drsgate", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseJson(cfg))

	assert.Equal(t, ":9999", cfg.EndpointAddr)
	assert.Equal(t, "staging", cfg.OutboxBucket)
	assert.Equal(t, 60*time.Second, cfg.RetryAccessAfter)

	// fields absent from the file keep their defaults
	assert.Equal(t, 30*time.Second, cfg.TokenValidity)
	assert.Equal(t, "drs://localhost:8080/", cfg.DrsServerURI)
}

func TestParseFlags(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"drsgate", "-a", ":7070", "-r", "15", "-b", "outbox-test"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":7070", cfg.EndpointAddr)
	assert.Equal(t, 15*time.Second, cfg.RetryAccessAfter)
	assert.Equal(t, "outbox-test", cfg.OutboxBucket)
}
