// Package server runs an HTTP handler on a loopback or configured address
// and shuts it down gracefully. clerkctl uses it to serve the fake Frontend
// API, both in-process for --dev runs and standalone with `clerkctl fake`.
package server
