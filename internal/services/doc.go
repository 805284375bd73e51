// Package services holds the application-facing entry points over the
// enrollment pipeline: cache-or-fetch dataset access, year discovery, and
// health reporting. Handlers and the batch CLI talk to these services, not
// to the pipeline directly.
package services
