// Package config loads runtime configuration for the BidSmart CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the workflow engine API
//	-w string   workflow id to run
//	-k string   workflow API key
//	-i int      poll interval (seconds)
//	-t int      poll timeout (seconds)
//	-d string   path to the client state database
//	-dev        enable dev-mode affordances
//
// # JSON schema
//
// Durations accept strings like "2s" or integer nanoseconds; sizes accept
// human-readable strings like "10MiB":
//
//	{
//	  "workflow_base_url": "https://workflows.bidsmart.app/api/v1",
//	  "workflow_id": "bid-analysis",
//	  "workflow_api_key": "...",
//	  "verification_base_url": "https://auth.bidsmart.app/functions/v1",
//	  "poll_interval": "2s",
//	  "poll_timeout": "600s",
//	  "max_document_size": "10MiB",
//	  "max_payload_size": "5MiB",
//	  "max_document_count": 5
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
