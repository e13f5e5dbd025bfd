package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/vivahmatch/backend/internal/client"
	"github.com/vivahmatch/backend/internal/constants"
	"github.com/vivahmatch/backend/internal/filterstate"
	"github.com/vivahmatch/backend/internal/models"
	"github.com/vivahmatch/backend/internal/utils"
)

// session holds what every command needs once the global flags are parsed.
type session struct {
	client  *client.Client
	store   filterstate.Storage
	manager *filterstate.Manager
	out     *printer
}

// maxConcurrentFetches bounds the parallel requests of the show command.
const maxConcurrentFetches = 4

func newApp(stdout, stderr io.Writer) *cli.App {
	s := &session{}

	return &cli.App{
		Name:                      "matchctl",
		Usage:                     "search profiles and manage saved filter presets",
		Version:                   version,
		Writer:                    stdout,
		ErrWriter:                 stderr,
		DisableSliceFlagSeparator: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Usage:   "API base URL",
				Value:   constants.DefaultAPIBaseURL,
				EnvVars: []string{"VIVAHMATCH_API_URL"},
			},
			&cli.StringFlag{
				Name:    "state-dir",
				Usage:   "directory for presets, latest search and the saved token",
				EnvVars: []string{"VIVAHMATCH_STATE_DIR"},
			},
			&cli.BoolFlag{
				Name:  "ephemeral",
				Usage: "keep state in memory only",
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "bearer token, overrides the saved one",
				EnvVars: []string{"VIVAHMATCH_TOKEN"},
			},
			&cli.StringFlag{
				Name:  "exclude-user",
				Usage: "user id to exclude from search results",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "per-request timeout",
				Value: constants.DefaultClientTimeout,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print JSON instead of tables",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			setupLogger(stderr, c.String("log-level"))
			return s.open(c, stdout)
		},
		After: func(c *cli.Context) error {
			if s.manager != nil {
				s.manager.Close()
			}
			return nil
		},
		Commands: []*cli.Command{
			searchCommand(s),
			clearCommand(s),
			presetsCommand(s),
			featuredCommand(s),
			showCommand(s),
			catalogCommand(s),
			loginCommand(s),
		},
	}
}

// setupLogger writes console logs to w. An unknown level falls back to warn.
func setupLogger(w io.Writer, level string) {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		With().
		Timestamp().
		Logger()
	if err := utils.SetLogLevel(level); err != nil {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
		log.Warn().Err(err).Str("level", utils.GetLogLevel()).Msg("Using default log level")
	}
}

func (s *session) open(c *cli.Context, stdout io.Writer) error {
	s.out = &printer{w: stdout, json: c.Bool("json")}

	if c.Bool("ephemeral") {
		s.store = filterstate.NewMemoryStore()
	} else {
		store, err := filterstate.NewFileStore(stateDir(c.String("state-dir")))
		if err != nil {
			return err
		}
		s.store = store
	}

	token := c.String("token")
	if token == "" {
		if saved, err := s.store.Get(constants.StorageKeyAccessToken); err == nil {
			if err := json.Unmarshal(saved, &token); err != nil {
				log.Warn().Err(err).Msg("Ignoring unreadable saved token")
			}
		}
	}
	s.client = client.New(c.String("server"), client.WithTimeout(c.Duration("timeout")), client.WithToken(token))

	manager, err := filterstate.New(s.store, s.client, filterstate.Config{ExcludeUserID: c.String("exclude-user")})
	if err != nil {
		return err
	}
	s.manager = manager
	return nil
}

func stateDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, constants.DefaultClientStateDir)
	}
	return constants.DefaultClientStateDir
}

func searchCommand(s *session) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "update the working filter and search",
		UsageText: "matchctl search [--fresh] [--set field=value ...]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "set",
				Usage: "field=value; lists are comma separated, an empty value clears the field",
			},
			&cli.BoolFlag{
				Name:  "fresh",
				Usage: "clear the working filter first",
			},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("fresh") {
				if err := s.manager.ClearFilters(); err != nil {
					return err
				}
			}
			for _, assignment := range c.StringSlice("set") {
				key, raw, ok := strings.Cut(assignment, "=")
				if !ok {
					return fmt.Errorf("--set expects field=value, got %q", assignment)
				}
				value, err := filterstate.ParseFieldValue(strings.TrimSpace(key), raw)
				if err != nil {
					return err
				}
				if err := s.manager.SetField(strings.TrimSpace(key), value); err != nil {
					return err
				}
			}
			return s.runSearch(c.Context)
		},
	}
}

func (s *session) runSearch(ctx context.Context) error {
	profiles, err := s.manager.Search(ctx)
	if err != nil {
		return describe(err)
	}
	return s.out.profiles(profiles)
}

func clearCommand(s *session) *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "reset the working filter and forget the latest search",
		Action: func(c *cli.Context) error {
			if err := s.manager.ClearFilters(); err != nil {
				return err
			}
			return s.out.message("Filters cleared")
		},
	}
}

func presetsCommand(s *session) *cli.Command {
	return &cli.Command{
		Name:  "presets",
		Usage: "manage saved filter presets",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "show saved presets",
				Action: func(c *cli.Context) error {
					return s.out.presets(s.manager.Presets(), s.manager.Active())
				},
			},
			{
				Name:  "save",
				Usage: "save the working filter as a new preset",
				Action: func(c *cli.Context) error {
					preset, err := s.manager.SaveCurrentAsPreset()
					if err != nil {
						return err
					}
					return s.out.message(fmt.Sprintf("Saved %s (%s)", preset.Name, preset.ID))
				},
			},
			{
				Name:      "load",
				Usage:     "make a preset the working filter and search",
				ArgsUsage: "<id|name>",
				Action: func(c *cli.Context) error {
					preset, err := s.resolvePreset(c.Args().First())
					if err != nil {
						return err
					}
					if err := s.manager.LoadPreset(preset.ID); err != nil {
						return err
					}
					return s.runSearch(c.Context)
				},
			},
			{
				Name:      "rename",
				Usage:     "give a preset a custom name",
				ArgsUsage: "<id|name> <new name>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 2 {
						return fmt.Errorf("rename expects a preset and a new name")
					}
					preset, err := s.resolvePreset(c.Args().First())
					if err != nil {
						return err
					}
					name := strings.Join(c.Args().Tail(), " ")
					if err := s.manager.RenamePreset(preset.ID, name); err != nil {
						return err
					}
					return s.out.message(fmt.Sprintf("Renamed %s to %s", preset.Name, name))
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a preset",
				ArgsUsage: "<id|name>",
				Action: func(c *cli.Context) error {
					preset, err := s.resolvePreset(c.Args().First())
					if err != nil {
						return err
					}
					if err := s.manager.DeletePreset(preset.ID); err != nil {
						return err
					}
					return s.out.message(fmt.Sprintf("Deleted %s", preset.Name))
				},
			},
		},
	}
}

func (s *session) resolvePreset(ref string) (models.SavedFilterPreset, error) {
	if ref == "" {
		return models.SavedFilterPreset{}, fmt.Errorf("a preset id or name is required")
	}
	preset, ok := s.manager.FindPreset(ref)
	if !ok {
		return models.SavedFilterPreset{}, fmt.Errorf("%w: %s", filterstate.ErrPresetNotFound, ref)
	}
	return preset, nil
}

func featuredCommand(s *session) *cli.Command {
	return &cli.Command{
		Name:  "featured",
		Usage: "list random verified profiles",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "number of profiles, 0 for the server default",
			},
		},
		Action: func(c *cli.Context) error {
			if c.Int("limit") < 0 {
				return fmt.Errorf("--limit must not be negative")
			}
			profiles, err := s.client.Featured(c.Context, c.Int("limit"))
			if err != nil {
				return describe(err)
			}
			return s.out.profiles(profiles)
		},
	}
}

func showCommand(s *session) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "fetch profiles by id",
		ArgsUsage: "<profile id> ...",
		Action: func(c *cli.Context) error {
			ids := c.Args().Slice()
			if len(ids) == 0 {
				return fmt.Errorf("show expects at least one profile id")
			}

			profiles := make([]*models.Profile, len(ids))
			g, ctx := errgroup.WithContext(c.Context)
			g.SetLimit(maxConcurrentFetches)
			for i, id := range ids {
				i, id := i, id
				g.Go(func() error {
					p, err := s.client.GetProfile(ctx, id)
					if err != nil {
						return fmt.Errorf("profile %s: %w", id, describe(err))
					}
					profiles[i] = p
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			return s.out.profiles(profiles)
		},
	}
}

func catalogCommand(s *session) *cli.Command {
	return &cli.Command{
		Name:      "catalog",
		Usage:     "print the option lists accepted by filters",
		ArgsUsage: "[list name]",
		Action: func(c *cli.Context) error {
			lists, err := s.client.Catalog(c.Context)
			if err != nil {
				return describe(err)
			}
			if name := c.Args().First(); name != "" {
				values, ok := lists[name]
				if !ok {
					return fmt.Errorf("unknown catalog list %q", name)
				}
				lists = map[string][]string{name: values}
			}
			return s.out.catalog(lists)
		},
	}
}

func loginCommand(s *session) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "log in and remember the access token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"VIVAHMATCH_PASSWORD"}},
		},
		Action: func(c *cli.Context) error {
			result, err := s.client.Login(c.Context, c.String("email"), c.String("password"))
			if err != nil {
				return describe(err)
			}
			data, err := json.Marshal(result.AccessToken)
			if err != nil {
				return err
			}
			if err := s.store.Set(constants.StorageKeyAccessToken, data); err != nil {
				return err
			}
			return s.out.message(fmt.Sprintf("Logged in as %s", result.User.Email))
		},
	}
}

// describe turns API errors into a readable message, keeping field details.
func describe(err error) error {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || apiErr.Message == "" {
		return err
	}
	if len(apiErr.Details) == 0 {
		return errors.New(apiErr.Message)
	}
	fields := make([]string, 0, len(apiErr.Details))
	for field := range apiErr.Details {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+apiErr.Details[field])
	}
	return fmt.Errorf("%s (%s)", apiErr.Message, strings.Join(parts, "; "))
}
