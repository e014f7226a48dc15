// Package api exposes the six memory operations over HTTP. It is an
// optional surface, disabled by default; the stdio tool transport is the
// primary interface.
package api
