// Package config loads, normalizes, and validates hookscript configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// DISCORD_BOT_TOKEN and DEEPGRAM_API_KEY. The Config type centralizes every
// knob the bot and CLI need so credentials, working directories, and script
// formatting rules are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical language tags, and clear validation errors.
package config
