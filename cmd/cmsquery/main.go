package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nkitsaini/sveltia-cms/pkg/services"
)

var state *services.State

func loadState(c *cli.Context) error {
	state = services.NewState(nil)
	state.StrictKeyPaths = c.Bool("strict")
	state.ScanConcurrency = c.Int("concurrency")
	return state.Reload(c.Context, c.String("repo"), c.String("config"), c.Int("concurrency"))
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	app := &cli.App{
		Name:  "cmsquery",
		Usage: "Query the collections and entries of a CMS content repository",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "repo",
				Aliases: []string{"r"},
				Value:   "./repo",
				Usage:   "Path to the content repository",
				EnvVars: []string{"REPO_PATH"},
			},
			&cli.StringFlag{
				Name:    "config",
				Value:   "static/admin/config.yml",
				Usage:   "CMS config path, relative to the repository",
				EnvVars: []string{"SITE_CONFIG_PATH"},
			},
			&cli.IntFlag{
				Name:    "concurrency",
				Value:   20,
				Usage:   "Maximum concurrent file reads and URL resolutions",
				EnvVars: []string{"SCAN_CONCURRENCY"},
			},
			&cli.BoolFlag{
				Name:    "strict",
				Usage:   "Fail key path resolution on the first unmatched segment",
				EnvVars: []string{"STRICT_KEY_PATHS"},
			},
		},
		Before: loadState,
		Commands: []*cli.Command{
			{
				Name:      "collection",
				Usage:     "Show a collection with its resolved i18n settings",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					col := state.GetCollection(c.Args().First())
					if col.Name == "" {
						return cli.Exit(fmt.Sprintf("collection %q not found", c.Args().First()), 1)
					}
					return printJSON(col)
				},
			},
			{
				Name:      "entries",
				Usage:     "List the entries of a collection",
				ArgsUsage: "<collection>",
				Action: func(c *cli.Context) error {
					return printJSON(state.GetEntriesByCollection(c.Args().First()))
				},
			},
			{
				Name:      "field",
				Usage:     "Resolve a key path to its field definition",
				ArgsUsage: "<collection> <key path>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Usage: "File name inside a file collection"},
					&cli.StringFlag{Name: "entry", Usage: "Entry ID used to pick variant types"},
					&cli.StringFlag{Name: "locale", Usage: "Locale of the entry content (default: the collection's default locale)"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() < 2 {
						return cli.Exit("usage: field <collection> <key path>", 2)
					}
					col := state.GetCollection(c.Args().Get(0))
					if col.Name == "" {
						return cli.Exit(fmt.Sprintf("collection %q not found", c.Args().Get(0)), 1)
					}
					if err := services.CheckFileScope(col, c.String("file")); err != nil {
						return cli.Exit(err.Error(), 2)
					}
					valueMap := map[string]any{}
					if id := c.String("entry"); id != "" {
						entry := state.GetEntry(id)
						if entry == nil {
							return cli.Exit(fmt.Sprintf("entry %q not found", id), 1)
						}
						valueMap = services.Flatten(entry.Locales[services.ContentLocale(col, c.String("locale"))].Content)
					}
					field := state.GetFieldByKeyPath(col.Name, c.String("file"), c.Args().Get(1), valueMap)
					if field == nil {
						return cli.Exit("field not found", 1)
					}
					return printJSON(field)
				},
			},
			{
				Name:      "refs",
				Usage:     "List entries referencing a media asset URL",
				ArgsUsage: "<url>",
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "timeout", Usage: "Abort the scan after this long"},
				},
				Action: func(c *cli.Context) error {
					ctx := c.Context
					if d := c.Duration("timeout"); d > 0 {
						var cancel context.CancelFunc
						ctx, cancel = context.WithTimeout(ctx, d)
						defer cancel()
					}
					entries, err := state.GetEntriesByAssetURL(ctx, c.Args().First(), &services.PublicFolderResolver{State: state})
					if err != nil {
						return err
					}
					ids := make([]string, 0, len(entries))
					for _, e := range entries {
						ids = append(ids, e.ID)
					}
					return printJSON(ids)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
