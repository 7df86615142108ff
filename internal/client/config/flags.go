package config

import (
	"flag"
	"os"
	"time"

	"github.com/dangolden/bidsmart/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the workflow engine API
//	-w string   workflow id to run
//	-k string   workflow API key
//	-i int      poll interval in seconds
//	-t int      poll timeout in seconds
//	-d string   path to the client state database
//	-dev        enable dev-mode affordances
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-w", "-k", "-i", "-t", "-d", "-dev"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.WorkflowBaseURL, "a", cfg.WorkflowBaseURL, "base URL of the workflow engine API")
	fs.StringVar(&cfg.WorkflowID, "w", cfg.WorkflowID, "workflow id to run")
	fs.StringVar(&cfg.WorkflowAPIKey, "k", cfg.WorkflowAPIKey, "workflow API key")
	pollInterval := fs.Int("i", int(cfg.PollInterval.Seconds()), "poll interval (in seconds)")
	pollTimeout := fs.Int("t", int(cfg.PollTimeout.Seconds()), "poll timeout (in seconds)")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path to the client state database")
	fs.BoolVar(&cfg.DevMode, "dev", cfg.DevMode, "enable dev-mode affordances")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.PollInterval = time.Duration(*pollInterval) * time.Second
	cfg.PollTimeout = time.Duration(*pollTimeout) * time.Second
}
