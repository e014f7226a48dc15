// Package mcp exposes the engine over the Model Context Protocol:
// newline-delimited JSON-RPC 2.0 on stdin/stdout.
//
// Six tools are served: remember, recall, reflect, identity, forget, and
// auto_extract. Logging goes to stderr; stdout carries only protocol
// frames.
package mcp
