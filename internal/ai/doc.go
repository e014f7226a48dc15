// Package ai is the summarizer client: a thin wrapper over the Anthropic
// Messages API used for transcript extraction, journal digests, and
// identity regeneration.
//
// The engine treats it as an opaque text-to-text function with a bounded
// per-call timeout. When no API key is configured the engine runs without
// it and the dependent operations degrade with a user-visible notice.
package ai
