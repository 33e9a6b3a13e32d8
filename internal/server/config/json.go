package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/LorenzoDOrtona/life-logger/internal/flagx"
	"github.com/LorenzoDOrtona/life-logger/internal/timex"
)

// JsonConfig is the unmarshalling DTO for the JSON config file. Absent
// fields keep their current values.
type JsonConfig struct {
	EndpointAddr    *string         `json:"endpoint_addr"`
	DatabaseDSN     *string         `json:"database_dsn"`
	SecretKey       *string         `json:"secret_key"`
	InMemory        *bool           `json:"inmemory"`
	ShutdownTimeout *timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays cfg with values from the file named by -c/-config.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.EndpointAddr != nil {
		cfg.EndpointAddr = *jc.EndpointAddr
	}
	if jc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *jc.DatabaseDSN
	}
	if jc.SecretKey != nil {
		cfg.SecretKey = *jc.SecretKey
	}
	if jc.InMemory != nil {
		cfg.InMemory = *jc.InMemory
	}
	if jc.ShutdownTimeout != nil {
		cfg.ShutdownTimeout = time.Duration(jc.ShutdownTimeout.Duration)
	}
}
