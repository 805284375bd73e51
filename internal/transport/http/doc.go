// Package http exposes the processed enrollment datasets over a read-only
// chi API. Handlers validate parameters, delegate to the service layer, and
// report failures as RFC 7807 problem details.
package http
