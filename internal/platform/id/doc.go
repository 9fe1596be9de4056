// Package id generates request and invocation identifiers.
//
// Identifiers are random UUIDv4 bytes rendered as unpadded lowercase base32,
// giving 26 characters that are safe in gRPC metadata values and log lines.
package id
