// Package app wires the enrollment pipeline into a runnable application:
// configuration, logging, metrics, cache, services, and the HTTP server
// with graceful shutdown.
package app
