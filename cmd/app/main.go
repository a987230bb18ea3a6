package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	sqliteadapter "github.com/atvirokodosprendimai/cabinetry/internal/adapters/db/sqlite"
	httpadapter "github.com/atvirokodosprendimai/cabinetry/internal/adapters/http"
	rpcadapter "github.com/atvirokodosprendimai/cabinetry/internal/adapters/rpcjson"
	"github.com/atvirokodosprendimai/cabinetry/internal/application"
	"github.com/atvirokodosprendimai/cabinetry/internal/config"
	"github.com/atvirokodosprendimai/cabinetry/internal/domain"
	"github.com/atvirokodosprendimai/cabinetry/internal/logging"
	"github.com/atvirokodosprendimai/cabinetry/internal/planning"
	"github.com/atvirokodosprendimai/cabinetry/internal/units"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	root := &cli.Command{
		Name:  "cabinetry",
		Usage: "Modular cabinetry planning server and CLI",
		Commands: []*cli.Command{
			serverCommand(),
			configCommand(),
			planCommand(),
			projectsCommand(),
			standardsCommand(),
			modulesCommand(),
			outputsCommand(),
		},
	}

	if err := root.Run(context.Background(), args); err != nil {
		log.Fatal(err)
	}
}

func serverCommand() *cli.Command {
	return &cli.Command{
		Name:  "server",
		Usage: "Run HTTP and JSON-RPC servers",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "YAML config file"},
			&cli.StringFlag{Name: "addr", Usage: "HTTP listen address"},
			&cli.StringFlag{Name: "rpc-socket", Usage: "JSON-RPC unix socket path"},
			&cli.StringFlag{Name: "db-path", Usage: "SQLite database path"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
			&cli.StringFlag{Name: "log-format", Usage: "json or console"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			if c.IsSet("addr") {
				cfg.HTTP.Addr = c.String("addr")
			}
			if c.IsSet("rpc-socket") {
				cfg.RPC.Socket = c.String("rpc-socket")
			}
			if c.IsSet("db-path") {
				cfg.DB.Path = c.String("db-path")
			}
			if c.IsSet("log-level") {
				cfg.Log.Level = c.String("log-level")
			}
			if c.IsSet("log-format") {
				cfg.Log.Format = c.String("log-format")
			}
			return runServer(ctx, cfg)
		},
	}
}

func runServer(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	db, err := sqliteadapter.Open(cfg.DB.Path)
	if err != nil {
		return err
	}
	version, err := sqliteadapter.RunMigrations(ctx, db)
	if err != nil {
		return err
	}
	logger.Info("database ready", zap.String("path", cfg.DB.Path), zap.Int64("schema_version", version))

	repo := sqliteadapter.NewPlanRepository(db)
	service := application.NewPlanService(repo, logger)

	router := httpadapter.NewRouter(service, httpadapter.Options{Logger: logger, Metrics: cfg.Metrics.Enabled})
	srv := &http.Server{Addr: cfg.HTTP.Addr, Handler: router, ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout}
	rpcSrv, err := rpcadapter.Start(cfg.RPC.Socket, service, logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = rpcSrv.Close()
	}()
	logger.Info("json-rpc listening", zap.String("socket", cfg.RPC.Socket))

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Show or change CLI connection settings",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "transport", Usage: "uds or http"},
			&cli.StringFlag{Name: "server", Usage: "HTTP server base URL"},
			&cli.StringFlag{Name: "socket", Usage: "JSON-RPC unix socket path"},
			&cli.StringFlag{Name: "unit", Usage: "display unit: mm, inches or ft-in"},
			&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			changed := false
			for _, name := range []string{"transport", "server", "socket", "unit"} {
				if c.IsSet(name) {
					changed = true
				}
			}
			if c.IsSet("transport") {
				cfg.Transport = c.String("transport")
			}
			if c.IsSet("server") {
				cfg.Server = c.String("server")
			}
			if c.IsSet("socket") {
				cfg.Socket = c.String("socket")
			}
			if c.IsSet("unit") {
				if !units.Valid(c.String("unit")) {
					return fmt.Errorf("unsupported unit %q", c.String("unit"))
				}
				cfg.Unit = c.String("unit")
			}
			if changed {
				if err := saveConfig(cfg); err != nil {
					return err
				}
			}
			if c.Bool("json") {
				return printJSON(cfg)
			}
			printKV([][2]string{
				{"transport", cfg.Transport},
				{"server", cfg.Server},
				{"socket", cfg.Socket},
				{"unit", cfg.Unit},
			})
			return nil
		},
	}
}

func planCommand() *cli.Command {
	return &cli.Command{
		Name:  "plan",
		Usage: "Compute outputs offline from a YAML or JSON file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true, Usage: "file with modules and standards"},
			&cli.BoolFlag{Name: "defaults", Usage: "use the default standards when the file has none"},
			&cli.StringFlag{Name: "unit", Usage: "display unit: mm, inches or ft-in"},
			&cli.StringFlag{Name: "output", Value: sectionAll, Usage: "cut-list, doors, hardware, takeoff or all"},
			&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			in, err := loadPlanInput(c.String("input"))
			if err != nil {
				return err
			}
			if len(in.Standards) == 0 && c.Bool("defaults") {
				in.Standards = planning.DefaultStandards()
			}
			out, err := computePlan(ctx, in)
			if err != nil {
				return err
			}
			if c.Bool("json") {
				return printJSON(out)
			}
			unit, err := displayUnit(c)
			if err != nil {
				return err
			}
			return printOutputs(out, c.String("output"), unit)
		},
	}
}

func projectsCommand() *cli.Command {
	return &cli.Command{
		Name:  "projects",
		Usage: "Project commands",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List projects",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "q", Usage: "filter by name or client"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out []domain.Project
					if err := doProjectsList(ctx, cfg, c.String("q"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printProjects(out)
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "Create project",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "client"},
					&cli.StringFlag{Name: "unit", Value: units.MM, Usage: "mm, inches or ft-in"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out domain.Project
					if err := doProjectsCreate(ctx, cfg, c.String("name"), c.String("client"), c.String("unit"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printProject(out)
					return nil
				},
			},
			{
				Name:      "show",
				Usage:     "Show project",
				ArgsUsage: "<project-id>",
				Flags:     []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					id, err := argID(c, "project-id")
					if err != nil {
						return err
					}
					var out domain.Project
					if err := doProjectsGet(ctx, cfg, id, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printProject(out)
					return nil
				},
			},
		},
	}
}

func standardsCommand() *cli.Command {
	return &cli.Command{
		Name:  "standards",
		Usage: "Project material standards",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List standards of a project",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "project", Required: true},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out []domain.Standard
					if err := doStandardsList(ctx, cfg, c.Uint("project"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printStandards(out)
					return nil
				},
			},
			{
				Name:  "add",
				Usage: "Add a standard",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "project", Required: true},
					&cli.StringFlag{Name: "category", Required: true, Usage: "carcass, shutter, back_panel, countertop, hardware, edgeband or general"},
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "material"},
					&cli.StringFlag{Name: "brand"},
					&cli.FloatFlag{Name: "thickness", Usage: "thickness in mm"},
					&cli.StringFlag{Name: "finish"},
					&cli.FloatFlag{Name: "rate-sqft"},
					&cli.FloatFlag{Name: "rate-unit"},
					&cli.FloatFlag{Name: "edge-band", Usage: "edge band width in mm"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					in := domain.Standard{
						ProjectID:   c.Uint("project"),
						Category:    c.String("category"),
						Name:        c.String("name"),
						Material:    c.String("material"),
						Brand:       c.String("brand"),
						ThicknessMM: c.Float("thickness"),
						Finish:      c.String("finish"),
						RatePerSqft: c.Float("rate-sqft"),
						RatePerUnit: c.Float("rate-unit"),
						EdgeBandMM:  c.Float("edge-band"),
					}
					var out domain.Standard
					if err := doStandardsCreate(ctx, cfg, in, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printStandards([]domain.Standard{out})
					return nil
				},
			},
			{
				Name:  "defaults",
				Usage: "Load the default standards into a project",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "project", Required: true},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out []domain.Standard
					if err := doStandardsDefaults(ctx, cfg, c.Uint("project"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printStandards(out)
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a standard",
				ArgsUsage: "<standard-id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					id, err := argID(c, "standard-id")
					if err != nil {
						return err
					}
					if err := doStandardsDelete(ctx, cfg, id); err != nil {
						return err
					}
					fmt.Fprintf(stdout, "deleted standard %d\n", id)
					return nil
				},
			},
		},
	}
}

func moduleFlags() []cli.Flag {
	def := planning.DefaultModule()
	return []cli.Flag{
		&cli.StringFlag{Name: "type", Value: def.ModuleType, Usage: "base, wall, tall, drawer, corner, shelf or hanging"},
		&cli.StringFlag{Name: "zone"},
		&cli.FloatFlag{Name: "width", Value: def.WidthMM, Usage: "width in mm"},
		&cli.FloatFlag{Name: "height", Value: def.HeightMM, Usage: "height in mm"},
		&cli.FloatFlag{Name: "depth", Value: def.DepthMM, Usage: "depth in mm"},
		&cli.IntFlag{Name: "doors", Value: def.DoorCount},
		&cli.StringFlag{Name: "door-style", Value: def.DoorStyle},
		&cli.StringFlag{Name: "open", Value: def.DoorOpenType, Usage: "hinged, sliding, lift_up, flap or none"},
		&cli.IntFlag{Name: "drawers", Value: def.DrawerCount},
		&cli.StringFlag{Name: "drawer-heights", Value: string(def.DrawerHeightsMM), Usage: "JSON list of front heights in mm"},
		&cli.IntFlag{Name: "shelves", Value: def.ShelfCount},
		&cli.StringFlag{Name: "shelf-type", Value: def.ShelfType, Usage: "fixed, adjustable, pullout or none"},
		&cli.BoolFlag{Name: "back", Value: def.HasBackPanel, Usage: "include a back panel"},
		&cli.StringFlag{Name: "back-type", Value: def.BackPanelType, Usage: "recessed, nailed or none"},
		&cli.StringFlag{Name: "carcass", Usage: "carcass material override"},
		&cli.StringFlag{Name: "shutter", Usage: "shutter material override"},
		&cli.StringFlag{Name: "hardware", Value: string(def.HardwareJSON), Usage: `custom hardware as JSON, e.g. {"Sink Tray": 1}`},
		&cli.StringFlag{Name: "notes"},
	}
}

func moduleFromFlags(c *cli.Command) domain.Module {
	return domain.Module{
		ProjectID:       c.Uint("project"),
		Name:            c.String("name"),
		ModuleType:      c.String("type"),
		Zone:            c.String("zone"),
		WidthMM:         c.Float("width"),
		HeightMM:        c.Float("height"),
		DepthMM:         c.Float("depth"),
		DoorCount:       c.Int("doors"),
		DoorStyle:       c.String("door-style"),
		DoorOpenType:    c.String("open"),
		DrawerCount:     c.Int("drawers"),
		DrawerHeightsMM: domain.JSONText(c.String("drawer-heights")),
		ShelfCount:      c.Int("shelves"),
		ShelfType:       c.String("shelf-type"),
		HasBackPanel:    c.Bool("back"),
		BackPanelType:   c.String("back-type"),
		CarcassMaterial: c.String("carcass"),
		ShutterMaterial: c.String("shutter"),
		HardwareJSON:    domain.JSONText(c.String("hardware")),
		Notes:           c.String("notes"),
	}
}

func modulesCommand() *cli.Command {
	return &cli.Command{
		Name:  "modules",
		Usage: "Cabinet modules of a project",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List modules in position order",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "project", Required: true},
					&cli.StringFlag{Name: "unit", Usage: "display unit: mm, inches or ft-in"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out []domain.Module
					if err := doModulesList(ctx, cfg, c.Uint("project"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					unit, err := displayUnitWith(c, cfg)
					if err != nil {
						return err
					}
					printModules(out, unit)
					return nil
				},
			},
			{
				Name:  "add",
				Usage: "Add a module",
				Flags: append([]cli.Flag{
					&cli.UintFlag{Name: "project", Required: true},
					&cli.StringFlag{Name: "name", Required: true},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				}, moduleFlags()...),
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out domain.Module
					if err := doModulesCreate(ctx, cfg, moduleFromFlags(c), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printModules([]domain.Module{out}, cfg.Unit)
					return nil
				},
			},
			{
				Name:      "update",
				Usage:     "Replace a module from a YAML or JSON file",
				ArgsUsage: "<module-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Required: true},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					id, err := argID(c, "module-id")
					if err != nil {
						return err
					}
					in, err := loadModuleFile(c.String("file"), planning.DefaultModule())
					if err != nil {
						return err
					}
					in.ID = id
					var out domain.Module
					if err := doModulesUpdate(ctx, cfg, in, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printModules([]domain.Module{out}, cfg.Unit)
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a module",
				ArgsUsage: "<module-id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					id, err := argID(c, "module-id")
					if err != nil {
						return err
					}
					if err := doModulesDelete(ctx, cfg, id); err != nil {
						return err
					}
					fmt.Fprintf(stdout, "deleted module %d\n", id)
					return nil
				},
			},
			{
				Name:      "duplicate",
				Usage:     "Copy a module to the end of its project",
				ArgsUsage: "<module-id>",
				Flags:     []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					id, err := argID(c, "module-id")
					if err != nil {
						return err
					}
					var out domain.Module
					if err := doModulesDuplicate(ctx, cfg, id, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printModules([]domain.Module{out}, cfg.Unit)
					return nil
				},
			},
		},
	}
}

func outputsCommand() *cli.Command {
	return &cli.Command{
		Name:  "outputs",
		Usage: "Generated schedules and takeoff",
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Regenerate all outputs of a project",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "project", Required: true},
					&cli.StringFlag{Name: "type", Value: sectionTakeoff, Usage: "cut-list, doors, hardware, takeoff or all"},
					&cli.StringFlag{Name: "unit", Usage: "display unit: mm, inches or ft-in"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out domain.OutputSet
					if err := doOutputsGenerate(ctx, cfg, c.Uint("project"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					unit, err := displayUnitWith(c, cfg)
					if err != nil {
						return err
					}
					fmt.Fprintf(stdout, "run %s: %d panels, %d doors, %d hardware rows\n",
						out.RunID, len(out.CutList), len(out.DoorSchedule), len(out.HardwareSchedule))
					return printOutputs(out.Outputs, c.String("type"), unit)
				},
			},
			{
				Name:  "show",
				Usage: "Show stored outputs of a project",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "project", Required: true},
					&cli.StringFlag{Name: "type", Value: sectionAll, Usage: "cut-list, doors, hardware, takeoff or all"},
					&cli.StringFlag{Name: "unit", Usage: "display unit: mm, inches or ft-in"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out domain.OutputSet
					if err := doOutputsGet(ctx, cfg, c.Uint("project"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					unit, err := displayUnitWith(c, cfg)
					if err != nil {
						return err
					}
					return printOutputs(out.Outputs, c.String("type"), unit)
				},
			},
			{
				Name:  "runs",
				Usage: "List generation runs, newest first",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "project", Required: true},
					&cli.IntFlag{Name: "limit", Value: 20},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out []domain.GenerationRun
					if err := doRunsList(ctx, cfg, c.Uint("project"), c.Int("limit"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printRuns(out)
					return nil
				},
			},
		},
	}
}

func argID(c *cli.Command, name string) (uint, error) {
	raw := c.Args().First()
	if raw == "" {
		return 0, fmt.Errorf("missing <%s>", name)
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return uint(v), nil
}

// displayUnit resolves the unit for offline commands: flag, then saved CLI
// config, then millimetres.
func displayUnit(c *cli.Command) (string, error) {
	cfg, err := loadConfig()
	if err != nil {
		cfg = defaultCLIConfig()
	}
	return displayUnitWith(c, cfg)
}

func displayUnitWith(c *cli.Command, cfg cliConfig) (string, error) {
	if !c.IsSet("unit") {
		return cfg.withDefaults().Unit, nil
	}
	unit := c.String("unit")
	if !units.Valid(unit) {
		return "", fmt.Errorf("unsupported unit %q (use mm, inches or ft-in)", unit)
	}
	return unit, nil
}

func jsonMarshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
