// Package services defines shared utilities consumed by the pipeline, the bot,
// and the external integrations under this directory.
//
// Key responsibilities:
//   - Context helpers that stamp correlation identifiers, command names, and
//     source URLs for logging.
//   - Structured error markers plus the Wrap helper that translate failures
//     into the two outcomes users see ("no speech" vs generic failure).
//
// Use these helpers when wiring new integrations so error handling and
// observability stay uniform across request handling.
package services
