package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/idilsaglam/items/internal/app"
	"github.com/idilsaglam/items/internal/config"
	"github.com/idilsaglam/items/internal/logging"
	"github.com/idilsaglam/items/internal/model"
	"github.com/idilsaglam/items/internal/remote"
	"github.com/idilsaglam/items/internal/store/jsonstore"
	"github.com/idilsaglam/items/internal/tui"
	"github.com/idilsaglam/items/internal/ui"
)

// Options carry what root flags and the environment decided.
type Options struct {
	Config *config.Config
	// Interactive runs the full-screen view; tui.Run when nil.
	Interactive func(*app.Controller) error
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
// With no arguments it starts the interactive view.
func Run(args []string, opt Options) int {
	cmd, a := "tui", []string(nil)
	if len(args) > 0 {
		cmd, a = args[0], args[1:]
	}

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "tui":
		return withSession(opt, "", doTUI(opt))

	case "health":
		return withSession(opt, "", doHealth)

	case "ls":
		return withSession(opt, "", doList)

	case "add":
		return withSession(opt, strings.TrimSpace(strings.Join(a, " ")), doAdd)

	case "import":
		if len(a) != 1 {
			ui.Fail("usage: items import <drafts.json>")
			return 2
		}
		return withSession(opt, "", func(s *session) int { return doImport(s, a[0]) })

	case "export":
		if len(a) != 1 {
			ui.Fail("usage: items export <snapshot.json>")
			return 2
		}
		return withSession(opt, "", func(s *session) int { return doExport(s, a[0]) })
	}

	ui.Fail("unknown subcommand: " + cmd)
	ui.Println("")
	PrintHelp()
	return 2
}

func PrintHelp() {
	ui.Println(`items - a terminal client for the items API

Usage:
  items [flags] [subcommand] [args]

Subcommands:
  tui                  Interactive view (default)
  health               Print the API health payload
  ls                   List items
  add [name...]        Create an item (random name unless given), then list
  import <file.json>   Create every draft in a JSON array, in order
  export <file.json>   Write the current collection to a file

Flags:
  -api <url>           API base URL (env ITEMS_API_URL)
  -theme <name>        classic | neon | mono (env ITEMS_THEME)
  -color / -no-color   force or disable colors

Examples:
  items ls
  items add "Desk lamp"
  items export items.json
`)
}

// session wires one controller for a subcommand and records what it absorbed.
type session struct {
	ctrl   *app.Controller
	client *remote.Client
	log    *zap.Logger
	failed  error
	health  remote.Health
	created *model.Item
}

func withSession(opt Options, name string, fn func(*session) int) int {
	cfg := opt.Config
	if cfg == nil {
		ui.Fail("no configuration")
		return 1
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		ui.Fail("logger: " + err.Error())
		return 1
	}
	defer func() { _ = logger.Sync() }()

	s := &session{log: logger}
	s.client = remote.New(cfg.APIURL, remote.WithLogger(logger))

	ctrlOpts := []app.Option{
		app.WithLogger(logger),
		app.WithFailureHook(func(op string, err error) { s.failed = err }),
		app.WithHealthHook(func(h remote.Health) { s.health = h }),
		app.WithCreatedHook(func(it model.Item) { s.created = &it }),
	}
	if name != "" {
		ctrlOpts = append(ctrlOpts, app.WithDraftSource(func() model.Draft {
			d := app.RandomDraft()
			d.Name = name
			return d
		}))
	}
	s.ctrl = app.New(s.client, ctrlOpts...)
	return fn(s)
}

// -------------- subcommand impls ----------------

func doTUI(opt Options) func(*session) int {
	run := opt.Interactive
	if run == nil {
		run = tui.Run
	}
	return func(s *session) int {
		if err := run(s.ctrl); err != nil {
			ui.Fail("tui: " + err.Error())
			return 1
		}
		return 0
	}
}

func doHealth(s *session) int {
	s.ctrl.Await(s.ctrl.CheckHealth())
	if s.failed != nil {
		ui.Fail(s.failed.Error())
		return 1
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, s.health, "", "  "); err != nil {
		pretty.Reset()
		pretty.Write(s.health)
	}
	ui.Panel([]string{
		ui.C(ui.Current().Title, "API Health Status"),
		"",
		pretty.String(),
	})
	return 0
}

func doList(s *session) int {
	s.ctrl.Await(s.ctrl.RefreshItems())
	if s.failed != nil {
		ui.Fail(s.failed.Error())
		return 1
	}
	printItems(s.ctrl.State().Items)
	return 0
}

func doAdd(s *session) int {
	s.ctrl.Await(s.ctrl.CreateRandomItem())
	if s.created != nil {
		ui.OK(fmt.Sprintf("created #%d %s", s.created.ID, s.created.Name))
	}
	if s.failed != nil {
		ui.Fail(s.failed.Error())
		return 1
	}
	printItems(s.ctrl.State().Items)
	return 0
}

func doImport(s *session, path string) int {
	drafts, err := jsonstore.LoadDrafts(path)
	if err != nil {
		ui.Fail("import: " + err.Error())
		return 1
	}
	ctx := context.Background()
	for i, d := range drafts {
		it, err := s.client.CreateItem(ctx, d)
		if err != nil {
			s.log.Error("Error creating item", zap.String("name", d.Name), zap.Error(err))
			ui.Fail(fmt.Sprintf("import: draft %d of %d: %v", i+1, len(drafts), err))
			return 1
		}
		s.log.Info("Created new item", zap.Int64("id", it.ID), zap.String("name", it.Name))
	}
	ui.OK(fmt.Sprintf("imported %d items", len(drafts)))
	return 0
}

func doExport(s *session, path string) int {
	s.ctrl.Await(s.ctrl.RefreshItems())
	if s.failed != nil {
		ui.Fail(s.failed.Error())
		return 1
	}
	items := s.ctrl.State().Items
	if err := jsonstore.SaveItems(path, items); err != nil {
		ui.Fail("export: " + err.Error())
		return 1
	}
	ui.OK(fmt.Sprintf("exported %d items to %s", len(items), path))
	return 0
}

// -------------- rendering helpers --------------

func stats(items []model.Item) (available, unavailable int) {
	for _, it := range items {
		if it.IsAvailable {
			available++
		} else {
			unavailable++
		}
	}
	return
}

func printItems(items []model.Item) {
	t := ui.Current()
	a, u := stats(items)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(t.Title, "Items from API"),
		ui.C(t.Success, t.SymAvailable), a,
		ui.C(t.Pending, t.SymUnavailable), u,
		ui.C(t.Accent, "Total"), len(items),
	)

	lines := []string{header, ui.C(t.Muted, ui.RatioBar(a, a+u, 28)), ""}
	lines = append(lines, itemLines(items)...)
	lines = append(lines, "", ui.C(t.Muted, "Tip: create one with `items add`"))
	ui.Panel(lines)
}

func itemLines(items []model.Item) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{ui.C(t.Muted, "No items found.")}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		mark := t.SymUnavailable
		if it.IsAvailable {
			mark = t.SymAvailable
		}
		name := it.Name
		if len(name) > 60 {
			name = name[:57] + "..."
		}
		line := fmt.Sprintf("%s %s - $%.2f",
			ui.C(t.Muted, fmt.Sprintf("#%d", it.ID)), ui.C(t.Title, name), it.Price)
		if it.Description != "" {
			line += ui.C(t.Muted, " ("+it.Description+")")
		}
		out = append(out, line+" "+mark)
	}
	return out
}
