// Package tlsroots builds the trust store used for https ETAPI servers.
//
// The system roots are always trusted. A custom CA bundle, given as a PEM
// file or a directory of PEM files, is added on top of them so that
// self-hosted servers behind a private CA can be reached.
package tlsroots
