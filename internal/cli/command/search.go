package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/trilium-cli/internal/core/domain"
	"github.com/yndnr/trilium-cli/internal/core/service"
)

// SearchNotesCommand returns the search-notes command.
func SearchNotesCommand() *cli.Command {
	return &cli.Command{
		Name:  "search-notes",
		Usage: "Search notes with the Trilium search syntax",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Search query"},
			&cli.IntFlag{Name: "limit", Usage: "Maximum number of results", Value: service.DefaultSearchLimit},
		},
		Action: action(searchNotes),
	}
}

type searchNotesResult struct {
	OK    bool                 `json:"ok"`
	Count int                  `json:"count"`
	Notes []domain.NoteSummary `json:"notes"`
}

func searchNotes(c *cli.Context, rt *runtime) (any, error) {
	query, err := requireString(c, "query")
	if err != nil {
		return nil, err
	}
	if c.Int("limit") < 1 {
		return nil, domain.ErrInvalidArgument.WithDetailsf("search-notes --limit must be positive, got %d", c.Int("limit"))
	}

	svc, err := EnsureConnected(c)
	if err != nil {
		return nil, err
	}
	notes, err := svc.Search(rt.ctx, query, c.Int("limit"))
	if err != nil {
		return nil, err
	}
	return &searchNotesResult{OK: true, Count: len(notes), Notes: notes}, nil
}
