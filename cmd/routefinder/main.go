package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/routefinder/internal/config"
	"github.com/jask/routefinder/internal/controller"
	"github.com/jask/routefinder/internal/logging"
	"github.com/jask/routefinder/internal/present"
	"github.com/jask/routefinder/internal/routing"
	"github.com/jask/routefinder/internal/tui"
)

func main() {
	os.Exit(run())
}

// run wires the program and returns its exit code so deferred cleanup runs
// before the process exits.
func run() int {
	printConfig := flag.Bool("print-config", false, "print the effective configuration as TOML and exit")
	check := flag.Bool("check", false, "check the routing service and print network info, then exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [start destination]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Printf("config: %v", err)
		return 1
	}

	if *printConfig {
		if err := config.WriteTo(os.Stdout, cfg); err != nil {
			log.Printf("print config: %v", err)
			return 1
		}
		return 0
	}

	logger, err := logging.Open(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		log.Printf("warn: logging disabled: %v", err)
	}
	defer logger.Close()

	client, err := routing.NewHTTPClient(cfg.API.BaseURL,
		routing.WithTimeout(cfg.API.Timeout),
		routing.WithLogger(logger.Logger),
	)
	if err != nil {
		log.Printf("routing client: %v", err)
		return 1
	}
	presenter := present.New(cfg.UI.DistanceUnit, cfg.UI.DistancePrecision)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case *check:
		return runCheck(ctx, os.Stdout, client)
	case flag.NArg() == 2:
		return runOnce(ctx, os.Stdout, client, presenter, flag.Arg(0), flag.Arg(1))
	case flag.NArg() != 0:
		flag.Usage()
		return 2
	}

	ctrl := controller.New(client, controller.WithLogger(logger.Logger))
	p := tea.NewProgram(tui.New(ctx, client, ctrl, presenter, logger.Logger), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
		return 1
	}
	return 0
}

// runOnce resolves a single route and prints it. It returns the process
// exit code: 0 on success, 1 when the query failed.
func runOnce(ctx context.Context, w io.Writer, router routing.Router, presenter present.Presenter, start, end string) int {
	ctrl := controller.New(router, controller.WithSink(controller.SinkFunc(func(s controller.State) {
		if s.IsLoading() {
			fmt.Fprintln(w, tui.RenderState(s, presenter, ""))
		}
	})))
	state := ctrl.Run(ctx, start, end)
	fmt.Fprintln(w, tui.RenderState(state, presenter, ""))
	if state.Status() != controller.StatusSucceeded {
		return 1
	}
	return 0
}

// runCheck prints the service status and network summary.
func runCheck(ctx context.Context, w io.Writer, client routing.Client) int {
	code := 0
	if err := client.Health(ctx); err != nil {
		fmt.Fprintf(w, "Server: Offline (%v)\n", err)
		code = 1
	} else {
		fmt.Fprintln(w, "Server: Live")
	}
	info, err := client.Graph(ctx)
	if err != nil {
		fmt.Fprintln(w, tui.RenderGraph(nil, err))
		return 1
	}
	view := present.PresentGraph(info)
	fmt.Fprintln(w, tui.RenderGraph(&view, nil))
	return code
}
