package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/bottlerun/bottlerun/internal/flagx"
	"github.com/bottlerun/bottlerun/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so JSON can specify the timeout either as a string
// like "12s" or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL          string         `json:"api_base_url"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	DatabasePath        string         `json:"database_path"`
	CredentialsPath     string         `json:"credentials_path"`
	CheckoutClearPolicy string         `json:"checkout_clear_policy"`
}

// parseJson overlays Config with values loaded from a JSON file whose
// path is supplied via the -c/-config flags. Absent flags mean no JSON
// is loaded. Read or unmarshal errors panic; only populated JSON fields
// override the existing Config values.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.CredentialsPath != "" {
		cfg.CredentialsPath = jc.CredentialsPath
	}
	if jc.CheckoutClearPolicy != "" {
		cfg.CheckoutClearPolicy = jc.CheckoutClearPolicy
	}
}
