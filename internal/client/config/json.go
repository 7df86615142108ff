package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/docker/go-units"

	"github.com/dangolden/bidsmart/internal/flagx"
	"github.com/dangolden/bidsmart/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// use timex.Duration so JSON can specify them either as strings like "2s"
// or as integer nanoseconds; sizes are human-readable strings like
// "10MiB" parsed with go-units.
type JsonConfig struct {
	WorkflowBaseURL string `json:"workflow_base_url"`
	WorkflowID      string `json:"workflow_id"`
	WorkflowAPIKey  string `json:"workflow_api_key"`

	VerificationBaseURL string `json:"verification_base_url"`
	VerificationToken   string `json:"verification_token"`
	VerificationAPIKey  string `json:"verification_api_key"`

	ProjectID   string `json:"project_id"`
	CallbackURL string `json:"callback_url"`

	PollInterval timex.Duration `json:"poll_interval"`
	PollTimeout  timex.Duration `json:"poll_timeout"`

	MaxDocumentSize  string `json:"max_document_size"`
	MaxPayloadSize   string `json:"max_payload_size"`
	MaxDocumentCount int    `json:"max_document_count"`

	DevMode bool   `json:"dev_mode"`
	DBPath  string `json:"db_path"`
}

// parseJson overlays Config with values loaded from a JSON file located
// via the -c or -config flags. Only fields the file actually sets are
// copied, so a partial file keeps the defaults for everything else.
// Read, unmarshal, and size-parse errors panic; the caller treats a
// broken config file as fatal.
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

	setString(&cfg.WorkflowBaseURL, jc.WorkflowBaseURL)
	setString(&cfg.WorkflowID, jc.WorkflowID)
	setString(&cfg.WorkflowAPIKey, jc.WorkflowAPIKey)
	setString(&cfg.VerificationBaseURL, jc.VerificationBaseURL)
	setString(&cfg.VerificationToken, jc.VerificationToken)
	setString(&cfg.VerificationAPIKey, jc.VerificationAPIKey)
	setString(&cfg.ProjectID, jc.ProjectID)
	setString(&cfg.CallbackURL, jc.CallbackURL)
	setString(&cfg.DBPath, jc.DBPath)

	if jc.PollInterval.Duration != 0 {
		cfg.PollInterval = time.Duration(jc.PollInterval.Duration)
	}
	if jc.PollTimeout.Duration != 0 {
		cfg.PollTimeout = time.Duration(jc.PollTimeout.Duration)
	}

	setSize(&cfg.MaxDocumentBytes, jc.MaxDocumentSize)
	setSize(&cfg.MaxPayloadBytes, jc.MaxPayloadSize)
	if jc.MaxDocumentCount != 0 {
		cfg.MaxDocumentCount = jc.MaxDocumentCount
	}

	if jc.DevMode {
		cfg.DevMode = true
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setSize(dst *int64, v string) {
	if v == "" {
		return
	}
	size, err := units.RAMInBytes(v)
	if err != nil {
		panic(err)
	}
	*dst = size
}
