// Package main hosts the hookscript CLI entrypoint and command graph.
//
// Subcommands run the full URL-to-script pipeline, format or resolve saved
// transcripts offline, serve the Discord /format command, and manage
// configuration. Wiring lives here; behavior lives in internal packages.
package main
