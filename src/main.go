package main

import (
	"context"
	"errors"
	"fmt"
	"ledlife/src/config"
	"ledlife/src/universe"
	"ledlife/src/view"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/integrii/flaggy"
	"golang.org/x/sync/errgroup"
)

func main() {
	log.SetPrefix("ledlife: ")
	cfg := initOptions()
	order, err := cfg.StripOrder()
	if err != nil {
		log.Fatal(err)
	}

	var renderers []universe.Renderer
	var ui *view.ConsoleUI
	if cfg.Interactive {
		ui = view.NewViewTerminal()
		renderers = append(renderers, ui)
	} else if cfg.ConsoleStrip {
		renderers = append(renderers, view.NewConsoleStrip(os.Stdout, cfg.Colors))
	}
	var strip *view.WebsocketStrip
	if cfg.Listen != "" {
		strip = view.NewWebsocketStrip(order)
		renderers = append(renderers, strip)
	}

	stateCh := make(chan universe.Status, 10) //the buffered channel to getting the universe status
	finished := make(chan struct{}, 1)
	go func() {
		for st := range stateCh {
			if st.RunningMode == universe.RunningStateFinished {
				select {
				case finished <- struct{}{}:
				default:
				}
			}
		}
	}()

	u := universe.NewBaseUniverse(cfg.UniverseOptions(), view.Tee(renderers...), stateCh)

	g, ctx := errgroup.WithContext(context.Background())
	stopped := make(chan struct{})

	if strip != nil {
		mux := http.NewServeMux()
		mux.Handle("/strip", strip)
		server := &http.Server{Addr: cfg.Listen, Handler: mux}
		g.Go(func() error {
			log.Printf("strip server is listening on %s/strip", cfg.Listen)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("strip server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			select {
			case <-stopped:
			case <-ctx.Done():
			}
			strip.Close()
			return server.Shutdown(context.Background())
		})
	}

	g.Go(func() error {
		defer close(stopped)
		if ui != nil {
			u.RegisterViewer(ui)
			u.Run()
			ui.Start()
			return nil
		}
		err := simulate(ctx, u, cfg, finished)
		u.Pause()
		u.Shutdown()
		return err
	})

	err = g.Wait()
	u.Close()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}

//simulate runs the console front end: the simulation goes on until Ctrl+C opens the menu
func simulate(ctx context.Context, u universe.Universe, cfg config.Config, finished chan struct{}) error {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	out := view.NewConsoleOut(os.Stdout, cfg.Colors)
	u.RegisterViewer(out)
	menu := view.NewConsoleMenu(u, os.Stdin, os.Stdout, cfg.Colors)

	if !menu.Accept() {
		return nil
	}
	//Ctrl+C pressed while the grid was offered does not open the menu
	drainSignals(interrupt)
	out.Start()
	u.Run()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-finished:
			return nil
		case sig := <-interrupt:
			if sig != os.Interrupt {
				return nil
			}
			//the running tick is committed before the menu opens
			u.Pause()
			fmt.Println()
			if menu.Run() == view.MenuQuit {
				return nil
			}
			drainSignals(interrupt)
			u.Run()
		}
	}
}

func drainSignals(ch chan os.Signal) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

func initOptions() config.Config {
	cfg := config.Default()
	path := configPath(os.Args[1:])
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			flaggy.ShowHelpAndExit(err.Error())
		}
	}

	unmute := !cfg.Muted
	quiet := !cfg.ConsoleStrip
	noColors := !cfg.Colors

	flaggy.SetName("ledlife")
	flaggy.SetDescription("Conway's Game of Life on a 7x7 led panel")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.String(&path, "c", "config", "YAML configuration file, the flags override its values")
	flaggy.Duration(&cfg.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 500ms")
	flaggy.Duration(&cfg.TerminalPause, "t", "terminalPause", "Pause after the grid died or locked down")
	flaggy.Int(&cfg.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps (0 is unlimited)")
	flaggy.Int(&cfg.ChanceInit, "p", "chance", "Chance in percent for a cell to start alive")
	flaggy.Int(&cfg.Brightness, "b", "brightness", "Strip brightness between 1 and 255")
	flaggy.Int64(&cfg.Seed, "", "seed", "Random seed, 0 seeds from the clock")
	flaggy.Bool(&unmute, "u", "unmute", "Print a message when the grid dies or locks down")
	flaggy.Bool(&cfg.Interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&quiet, "q", "quiet", "Do not print the strip to the console")
	flaggy.Bool(&noColors, "", "noColors", "Disable colored console output")
	flaggy.String(&cfg.Listen, "l", "listen", "Address to serve websocket strips on, for example :8080")
	flaggy.String(&cfg.ChannelOrder, "o", "order", "Color channel order of the strip ["+strings.Join([]string{"rgb", "grb", "brg"}, "|")+"]")

	flaggy.Parse()

	cfg.Muted = !unmute
	cfg.ConsoleStrip = !quiet
	cfg.Colors = !noColors

	if err := cfg.Validate(); err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}
	return cfg
}

//configPath finds the config flag before the flags are parsed, so the file can provide the defaults
func configPath(args []string) string {
	for i, a := range args {
		for _, name := range []string{"-c", "--config"} {
			if a == name && i+1 < len(args) {
				return args[i+1]
			}
			if strings.HasPrefix(a, name+"=") {
				return strings.TrimPrefix(a, name+"=")
			}
		}
	}
	return ""
}
