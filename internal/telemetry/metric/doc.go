// Package metric records Prometheus metrics for one CLI invocation.
//
// A CLI process is too short-lived to be scraped, so the registry is
// written out once at exit in the node_exporter textfile format when a
// metrics file is configured.
package metric
