// Package discordbot serves the /format slash command.
//
// Each interaction is deferred right away, then processed on its own
// goroutine under a concurrency limit. Finished scripts are sent back as one
// or more code-block follow-ups (Discord caps messages at 2000 characters)
// with an embed pointing at the source video. The Discord session is reached
// only through the Responder interface so the handler can be tested without a
// gateway connection.
package discordbot
