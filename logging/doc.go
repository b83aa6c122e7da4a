// Package logging configures the SDK's structured logger: level and
// format selection, per-component fields, and an optional Sentry hook for
// warning-and-worse entries.
package logging
