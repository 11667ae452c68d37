// Package main is a demo harness for the gridstorm data grid: sample
// data, a few built-in plugins, and a scripted one.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/gridstorm/grid"
	"github.com/dshills/gridstorm/internal/logging"
	"github.com/dshills/gridstorm/luaplugin"
	"github.com/dshills/gridstorm/plugin"
	"github.com/dshills/gridstorm/render"
	"github.com/dshills/gridstorm/rowmodel"
)

func main() {
	os.Exit(run())
}

func run() int {
	logPath := flag.String("log", "", "debug log file")
	pageSize := flag.Int("page-size", 12, "rows per page")
	flag.Parse()

	log := logging.Nop()
	if *logPath != "" {
		var err error
		log, err = logging.NewFile(*logPath, logging.LevelDebug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: open log: %v\n", err)
			return 1
		}
	}

	plugins, err := demoPlugins()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: plugin wiring: %v\n", err)
		return 1
	}

	g, err := grid.New(grid.Options{
		Columns: []rowmodel.Column{
			{Key: "id", Title: "ID", Width: 6},
			{Key: "name", Title: "Name"},
			{Key: "age", Title: "Age", Width: 6},
			{Key: "status", Title: "Status", Width: 12},
		},
		Rows:     demoRows(),
		Plugins:  plugins,
		PageSize: *pageSize,
		Logger:   log,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	term, err := render.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: terminal: %v\n", err)
		return 1
	}
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: terminal init: %v\n", err)
		return 1
	}
	defer term.Shutdown()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		term.Shutdown()
		os.Exit(0)
	}()

	g.Render(term)
	for {
		ev := term.PollEvent()
		if ev.Type == render.EventKey && ev.Key == render.KeyRune && ev.Rune == 'q' {
			return 0
		}
		if g.HandleEvent(ev) || ev.Type == render.EventResize {
			g.Render(term)
		}
	}
}

func demoPlugins() ([]*plugin.Instance, error) {
	filters := plugin.Define(plugin.Options{
		ID: "filters", Name: "Filters",
		Slots: plugin.Slots{SidePanel: &plugin.SidePanelSlot{
			Position: plugin.PanelRight,
			Render: func(cfg plugin.Config) plugin.PanelRenderFunc {
				return func(rc *plugin.Context, s render.Surface, area render.Rect) {
					y := area.Y
					for _, f := range rc.Table.Filters() {
						text := fmt.Sprintf("%s %s %v", f.Column, f.Op, f.Value)
						render.DrawText(s, area, area.X, y, render.Style{}, " "+text)
						y++
					}
					if y == area.Y {
						render.DrawText(s, area, area.X, y, render.Style{}, " no filters")
					}
				}
			},
		}},
	})

	columns := plugin.Define(plugin.Options{
		ID: "columns", Name: "Columns",
		ColumnMenuItems: []plugin.ColumnMenuItem{
			plugin.ColumnItem("hide", func(ctx plugin.ColumnMenuContext) plugin.MenuEntry {
				return plugin.MenuEntry{
					Label:   "Hide column",
					OnClick: func() { ctx.Table.SetColumnVisible(ctx.Column.Key, false) },
				}
			}),
			plugin.ColumnItem("sort-desc", func(ctx plugin.ColumnMenuContext) plugin.MenuEntry {
				return plugin.MenuEntry{
					Label: "Sort descending",
					OnClick: func() {
						ctx.Table.SetSorting([]rowmodel.Sort{{Column: ctx.Column.Key, Desc: true}})
					},
				}
			}),
		},
	})

	totals, err := luaplugin.Load(`
plugin {
	id = "totals",
	name = "Totals",
	config = { label = { type = "string", default = "Rows" } },
	footer = function(ctx)
		return ctx.config.label .. ": " .. ctx.rowCount .. "  selected: " .. ctx.selectedCount
	end,
}
`)
	if err != nil {
		return nil, err
	}

	var out []*plugin.Instance
	for _, desc := range []*plugin.Descriptor{filters, columns, totals} {
		inst, err := desc.Configure(nil)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

func demoRows() []*rowmodel.Row {
	names := []string{
		"Ada Lovelace", "Grace Hopper", "Alan Turing", "Edsger Dijkstra",
		"Barbara Liskov", "Donald Knuth", "Ken Thompson", "Dennis Ritchie",
		"Frances Allen", "John Backus", "Niklaus Wirth", "Tony Hoare",
		"Radia Perlman", "Leslie Lamport", "Margaret Hamilton", "Rob Pike",
	}
	statuses := []string{"active", "idle", "away"}

	rows := make([]*rowmodel.Row, len(names))
	for i, name := range names {
		rows[i] = rowmodel.NewRow(fmt.Sprintf("%d", i+1), map[string]any{
			"id":     fmt.Sprintf("%d", i+1),
			"name":   name,
			"age":    24 + (i*7)%60,
			"status": statuses[i%len(statuses)],
		})
	}
	return rows
}
