package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/akarpov87/custauth/internal/flagx"
	"github.com/akarpov87/custauth/internal/timex"
)

// JsonConfig is the intermediate DTO for reading JSON configuration files.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "20m" and integer nanoseconds. After unmarshalling,
// its fields are copied into the runtime Config struct.
type JsonConfig struct {
	EndpointAddrHTTP     string         `json:"endpoint_addr_http"`
	StorageBackend       string         `json:"storage_backend"`
	DatabaseDSN          string         `json:"database_dsn"`
	SessionSecretKey     string         `json:"session_secret_key"`
	ResetSecretKey       string         `json:"reset_secret_key"`
	SessionTokenValidity timex.Duration `json:"session_token_validity"`
	ResetTokenValidity   timex.Duration `json:"reset_token_validity"`
	AWSRegion            string         `json:"aws_region"`
	AWSAccessKeyID       string         `json:"aws_access_key_id"`
	AWSSecretAccessKey   string         `json:"aws_secret_access_key"`
	AWSBaseEndpoint      string         `json:"aws_base_endpoint"`
	CustomerTable        string         `json:"customer_table"`
	TokenTable           string         `json:"token_table"`
	EmailBackend         string         `json:"email_backend"`
	EmailFrom            string         `json:"email_from"`
	ResetLinkBase        string         `json:"reset_link_base"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. If the file cannot be
// read or contains invalid JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.StorageBackend = c.StorageBackend
	config.DatabaseDSN = c.DatabaseDSN
	config.SessionSecretKey = c.SessionSecretKey
	config.ResetSecretKey = c.ResetSecretKey
	config.SessionTokenValidity = time.Duration(c.SessionTokenValidity.Duration)
	config.ResetTokenValidity = time.Duration(c.ResetTokenValidity.Duration)
	config.AWSRegion = c.AWSRegion
	config.AWSAccessKeyID = c.AWSAccessKeyID
	config.AWSSecretAccessKey = c.AWSSecretAccessKey
	config.AWSBaseEndpoint = c.AWSBaseEndpoint
	config.CustomerTable = c.CustomerTable
	config.TokenTable = c.TokenTable
	config.EmailBackend = c.EmailBackend
	config.EmailFrom = c.EmailFrom
	config.ResetLinkBase = c.ResetLinkBase
}
