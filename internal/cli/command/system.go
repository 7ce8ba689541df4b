package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/trilium-cli/internal/core/domain"
	"github.com/yndnr/trilium-cli/internal/infra/buildinfo"
)

// AppInfoCommand returns the app-info command.
func AppInfoCommand() *cli.Command {
	return &cli.Command{
		Name:   "app-info",
		Usage:  "Show server version information (also a credentials check)",
		Action: action(appInfo),
	}
}

type appInfoResult struct {
	OK      bool            `json:"ok"`
	AppInfo *domain.AppInfo `json:"appInfo"`
}

func appInfo(c *cli.Context, rt *runtime) (any, error) {
	svc, err := EnsureConnected(c)
	if err != nil {
		return nil, err
	}
	info, err := svc.API().AppInfo(rt.ctx)
	if err != nil {
		return nil, err
	}
	return &appInfoResult{OK: true, AppInfo: info}, nil
}

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Show CLI build information",
		Action: action(version),
	}
}

type versionResult struct {
	OK bool `json:"ok"`
	buildinfo.Info
}

func version(c *cli.Context, rt *runtime) (any, error) {
	return &versionResult{OK: true, Info: buildinfo.Get()}, nil
}
