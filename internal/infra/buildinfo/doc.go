// Package buildinfo provides build-time version information.
//
// Values are injected at build time via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/trilium-cli/internal/infra/buildinfo.Version=v1.0.0 \
//	  -X github.com/yndnr/trilium-cli/internal/infra/buildinfo.Commit=abc123"
package buildinfo
