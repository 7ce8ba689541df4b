// Package connection provides the transport between trilium-cli and an
// ETAPI server.
//
// This package contains:
//
//   - http.go: HTTPClient (auth header, rate limit, request observer) and
//     response decoding into *domain.RemoteError on non-2xx statuses
//   - etapi.go: ETAPIClient, the typed ETAPI routes
//   - manager.go: Manager, which validates settings and builds the client
//
// Requests are sequential, carry no client timeout and are never retried.
package connection
