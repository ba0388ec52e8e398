package main

import (
	"testing"

	"github.com/poiesic/realsearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSetupLogger(t *testing.T) {
	newApp := func(action cli.ActionFunc) *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "log-level",
					Aliases: []string{"l"},
					Value:   "info",
				},
			},
			Before: setupLogger,
			Action: action,
		}
	}

	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			t.Run(level, func(t *testing.T) {
				app := newApp(func(c *cli.Context) error { return nil })
				require.NoError(t, app.Run([]string{"test", "--log-level", level}))
			})
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		app := newApp(func(c *cli.Context) error { return nil })
		require.NoError(t, app.Run([]string{"test", "--log-level", "DEBUG"}))
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		app := newApp(func(c *cli.Context) error { return nil })
		err := app.Run([]string{"test", "--log-level", "loud"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("alias -l works", func(t *testing.T) {
		app := newApp(func(c *cli.Context) error {
			assert.Equal(t, "debug", c.String("log-level"))
			return nil
		})
		require.NoError(t, app.Run([]string{"test", "-l", "debug"}))
	})
}

func TestQueryFromArgs(t *testing.T) {
	runWith := func(t *testing.T, args []string) (core.Query, error) {
		t.Helper()
		var query core.Query
		var queryErr error
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "role"},
				&cli.StringFlag{Name: "property-type"},
				&cli.Float64Flag{Name: "price-min"},
				&cli.Float64Flag{Name: "price-max"},
			},
			Action: func(c *cli.Context) error {
				query, queryErr = queryFromArgs(c)
				return nil
			},
		}
		require.NoError(t, app.Run(append([]string{"test"}, args...)))
		return query, queryErr
	}

	t.Run("joins args into query text", func(t *testing.T) {
		query, err := runWith(t, []string{"median", "price", "in", "Dallas, TX"})
		require.NoError(t, err)
		assert.Equal(t, "median price in Dallas, TX", query.Text)
	})

	t.Run("binds role and filters", func(t *testing.T) {
		query, err := runWith(t, []string{
			"--role", "investor",
			"--property-type", "condo",
			"--price-min", "100000",
			"--price-max", "500000",
			"condos", "in", "Austin",
		})
		require.NoError(t, err)
		assert.Equal(t, core.RoleInvestor, query.Role)
		assert.Equal(t, "condo", query.Filters.PropertyType)
		assert.Equal(t, 100000.0, query.Filters.PriceMin)
		assert.Equal(t, 500000.0, query.Filters.PriceMax)
	})

	t.Run("empty args fail", func(t *testing.T) {
		_, err := runWith(t, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query text is required")
	})
}

func TestReembedCommandFlags(t *testing.T) {
	// Find the reembed command on a fresh app definition so the flag defaults
	// stay in sync with main.
	t.Run("missing db flag fails", func(t *testing.T) {
		app := &cli.App{
			Name: "realsearch",
			Commands: []*cli.Command{
				{
					Name:   "reembed",
					Action: reembedCommand,
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "db", Required: true},
						&cli.StringFlag{Name: "embedding-model", Required: true},
					},
				},
			},
		}
		err := app.Run([]string{"realsearch", "reembed", "--embedding-model", "test-model"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db")
	})

	t.Run("missing embedding-model flag fails", func(t *testing.T) {
		app := &cli.App{
			Name: "realsearch",
			Commands: []*cli.Command{
				{
					Name:   "reembed",
					Action: reembedCommand,
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "db", Required: true},
						&cli.StringFlag{Name: "embedding-model", Required: true},
					},
				},
			},
		}
		err := app.Run([]string{"realsearch", "reembed", "--db", t.TempDir()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "embedding-model")
	})
}
