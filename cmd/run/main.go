package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/riftbound/script-runtime/ecs"
	"github.com/riftbound/script-runtime/engine"
	"github.com/riftbound/script-runtime/runtime"
)

func main() {
	var (
		configFile  = flag.String("config", "", "YAML config file with search_paths")
		paths       = flag.String("paths", "examples/scripts", "comma-separated script search paths (ignored with -config)")
		module      = flag.String("module", "actor", "script module name")
		class       = flag.String("class", "Actor", "exported class name")
		entities    = flag.Int("entities", 3, "number of scripted entities to create")
		ticks       = flag.Int("ticks", 10, "update ticks to run")
		dt          = flag.Float64("dt", 1.0/60.0, "seconds per tick")
		interactive = flag.Bool("i", false, "interactive stepper")
		verbose     = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "logger: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync()
		engine.SetLogger(log)
	}

	cfg := runtime.Config{SearchPaths: strings.Split(*paths, ",")}
	if *configFile != "" {
		var err error
		cfg, err = runtime.LoadConfig(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
	}

	world := ecs.NewWorld(64)
	bus := ecs.NewEventBus()

	rt, err := runtime.New(world, bus, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create runtime: %v\n", err)
		os.Exit(1)
	}
	defer rt.Close()

	for i := 0; i < *entities; i++ {
		e := world.Create()
		x, y := float64(i)*2.0, 0.0
		if _, err := rt.Attach(e, *module, *class, x, y); err != nil {
			fmt.Fprintf(os.Stderr, "attach %s.%s to %v: %v\n", *module, *class, e, err)
			os.Exit(1)
		}
	}

	if *interactive {
		if err := runInteractive(rt); err != nil {
			fmt.Fprintf(os.Stderr, "interactive: %v\n", err)
			os.Exit(1)
		}
		return
	}

	for i := 0; i < *ticks; i++ {
		if err := rt.Update(*dt); err != nil {
			fmt.Fprintf(os.Stderr, "tick %d: %v\n", i, err)
			os.Exit(1)
		}
	}

	for _, e := range world.Entities() {
		line := fmt.Sprintf("entity %v", e)
		if pos, ok := ecs.Get[*ecs.Position](world, e); ok {
			line += fmt.Sprintf(" position=(%.3f, %.3f)", pos.X, pos.Y)
		}
		if slot, ok := rt.SlotOf(e); ok {
			line += fmt.Sprintf(" script=%s.%s", slot.Module, slot.Class)
		}
		fmt.Println(line)
	}
}
