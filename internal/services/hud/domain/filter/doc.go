// Package filter holds per-consumer allow and block lists for HUD
// categories, the suggestions offered when editing them, and the function
// builders use to apply them.
//
// A Store is created once per process and shared by every build. Builds
// receive a Scope bound to one consumer: they read filter configuration and
// publish suggestions through it but never change a configuration. Users
// change configurations with SetFilter and ClearFilter, which write through
// to the configured Persister.
package filter
