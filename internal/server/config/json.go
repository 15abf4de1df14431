package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/drsgate/internal/flagx"
)

// JsonConfig mirrors Config for JSON unmarshalling. Durations are expressed
// as integer seconds; fields left out of the file keep their current values.
type JsonConfig struct {
	EndpointAddr       string `json:"endpoint_addr"`
	DatabaseDSN        string `json:"database_dsn"`
	OutboxBucket       string `json:"outbox_bucket"`
	DrsServerURI       string `json:"drs_server_uri"`
	RetryAccessAfter   *int   `json:"retry_access_after"`
	TokenValiditySecs  *int   `json:"token_validity_seconds"`
	EkssBaseURL        string `json:"ekss_base_url"`
	SecretKey          string `json:"secret_key"`
	AmqpURL            string `json:"amqp_url"`
	EventExchange      string `json:"event_exchange"`
	RegistrationQueue  string `json:"registration_queue"`
	S3RootUser         string `json:"s3_root_user"`
	S3RootPassword     string `json:"s3_root_password"`
	S3Region           string `json:"s3_region"`
	S3BaseEndpoint     string `json:"s3_base_endpoint"`
}

// parseJson overlays configuration values from the JSON file named by the
// -c/-config flags, if any, onto the provided Config.
func parseJson(config *Config) error {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return nil
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return fmt.Errorf("config file read error: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("config file parse error: %w", err)
	}

	overlay := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	overlay(&config.EndpointAddr, c.EndpointAddr)
	overlay(&config.DatabaseDSN, c.DatabaseDSN)
	overlay(&config.OutboxBucket, c.OutboxBucket)
	overlay(&config.DrsServerURI, c.DrsServerURI)
	overlay(&config.EkssBaseURL, c.EkssBaseURL)
	overlay(&config.SecretKey, c.SecretKey)
	overlay(&config.AmqpURL, c.AmqpURL)
	overlay(&config.EventExchange, c.EventExchange)
	overlay(&config.RegistrationQueue, c.RegistrationQueue)
	overlay(&config.S3RootUser, c.S3RootUser)
	overlay(&config.S3RootPassword, c.S3RootPassword)
	overlay(&config.S3Region, c.S3Region)
	overlay(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.RetryAccessAfter != nil {
		config.RetryAccessAfter = time.Duration(*c.RetryAccessAfter) * time.Second
	}
	if c.TokenValiditySecs != nil {
		config.TokenValidity = time.Duration(*c.TokenValiditySecs) * time.Second
	}

	return nil
}
