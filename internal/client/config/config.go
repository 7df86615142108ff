package config

import (
	"time"

	"github.com/docker/go-units"

	"github.com/dangolden/bidsmart/internal/client/validation"
)

// Config holds runtime settings for the BidSmart CLI.
type Config struct {
	// WorkflowBaseURL is the base URL of the remote workflow engine API.
	WorkflowBaseURL string
	// WorkflowID names the analysis workflow to run.
	WorkflowID string
	// WorkflowAPIKey is the bearer credential for the workflow engine.
	WorkflowAPIKey string

	// VerificationBaseURL is the base URL of the verification functions.
	VerificationBaseURL string
	// VerificationToken and VerificationAPIKey authenticate against the
	// backing service.
	VerificationToken  string
	VerificationAPIKey string

	ProjectID   string
	CallbackURL string

	// PollInterval is the fixed spacing between job status polls.
	PollInterval time.Duration
	// PollTimeout bounds the total wall-clock wait for a job.
	PollTimeout time.Duration

	// MaxDocumentBytes caps a single document's raw size.
	MaxDocumentBytes int64
	// MaxPayloadBytes caps a batch's estimated encoded size.
	MaxPayloadBytes int64
	// MaxDocumentCount caps the number of documents per batch.
	MaxDocumentCount int

	// DevMode surfaces dev-only affordances such as the verification
	// code echo. Must stay off in production.
	DevMode bool

	// DBPath locates the client-local state database.
	DBPath string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.WorkflowBaseURL = "https://workflows.bidsmart.app/api/v1"
	c.WorkflowID = "bid-analysis"
	c.VerificationBaseURL = "https://auth.bidsmart.app/functions/v1"
	c.PollInterval = 2 * time.Second
	c.PollTimeout = 600 * time.Second
	c.MaxDocumentBytes = 10 * units.MiB
	c.MaxPayloadBytes = 5 * units.MiB
	c.MaxDocumentCount = 5
	c.DevMode = false
	c.DBPath = "bidsmart.db"
}

// Limits exposes the admission ceilings in the validator's terms.
func (c *Config) Limits() validation.Limits {
	return validation.Limits{
		MaxDocumentBytes: c.MaxDocumentBytes,
		MaxPayloadBytes:  c.MaxPayloadBytes,
		MaxDocumentCount: c.MaxDocumentCount,
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
