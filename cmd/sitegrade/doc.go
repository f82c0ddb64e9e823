// Package main hosts the sitegrade command line.
//
// Architecture overview:
//   - Input: URLs come from positional arguments and/or a --file with one URL per line. Blank lines and
//     lines starting with # are skipped. Bare hosts get https:// prepended.
//   - Pipeline: internal/batch fans URLs out to internal/analyzer over an errgroup bounded by
//     batch.concurrency. Each analysis fetches with the Colly-based fetcher, parses with goquery, extracts
//     metrics and scores them. Every URL yields exactly one success or failure result.
//   - Output: the aggregated report is written to stdout as markdown, json or yaml. Logs go to stderr.
//   - Configuration & plumbing: Viper populates config from defaults, an optional file and SITEGRADE_*
//     environment variables; flags override both. zap provides structured logging, Prometheus collectors
//     record fetches and scores (dumped to stderr with --print-metrics), and OpenTelemetry spans are
//     exported over OTLP/HTTP when telemetry.tracing_enabled is set.
//
// Quick checklist:
//   - Run locally: go run ./cmd/sitegrade analyze example.com https://go.dev
//   - Tune: --concurrency, --timeout, --format, or SITEGRADE_BATCH_CONCURRENCY and friends.
package main
