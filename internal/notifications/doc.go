// Package notifications pushes operator alerts to ntfy.
//
// The bot reports finished scripts and failed requests here. When no topic is
// configured NewService returns a no-op implementation, so callers never need
// to check whether notifications are enabled.
package notifications
