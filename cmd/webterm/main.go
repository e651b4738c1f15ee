//go:build js && wasm

// Package main runs the webterm demo in the browser.
package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"syscall/js"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/webterm/internal/bridge/tcellbridge"
	"github.com/dshills/webterm/internal/config"
	"github.com/dshills/webterm/internal/logging"
	"github.com/dshills/webterm/internal/renderer/backend"
	"github.com/dshills/webterm/internal/renderer/canvas"
	"github.com/dshills/webterm/internal/renderer/dom"
	"github.com/dshills/webterm/internal/renderer/gpu"
	"github.com/dshills/webterm/internal/renderer/term"
	"github.com/dshills/webterm/internal/web/jsweb"
)

// Version information (set via ldflags during build).
var version = "dev"

//go:embed webterm.toml
var defaultConfig []byte

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "webterm: %v\n", err)
		os.Exit(1)
	}
	select {}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logging.New(os.Stderr, cfg.LoggingOptions())
	log.Info("starting", "version", version, "backend", cfg.Backend)

	win := jsweb.Global()
	b, err := newBackend(win, cfg, log)
	if err != nil {
		return fmt.Errorf("create %s backend: %w", cfg.Backend, err)
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	size := b.Size()
	screen.SetSize(size.Width, size.Height)

	t := term.New(b, cfg.TerminalOptions(log))
	br := tcellbridge.New(screen, log)
	if err := br.Attach(t); err != nil {
		log.Warn("input disabled", "error", err)
	}

	app := newDemo(screen)
	app.draw()
	go func() {
		app.run()
		log.Info("demo stopped")
	}()

	t.Run(win, br.Render, func(err error) bool {
		log.Error("frame failed", "error", err)
		return true
	})
	return nil
}

// loadConfig reads the embedded TOML settings, or the JSON document in
// window.webtermConfig when the page provides one.
func loadConfig() (config.Options, error) {
	if v := js.Global().Get("webtermConfig"); v.Type() == js.TypeString {
		return config.LoadJSON("window.webtermConfig", []byte(v.String()))
	} else if v.Type() == js.TypeObject {
		doc := js.Global().Get("JSON").Call("stringify", v).String()
		return config.LoadJSON("window.webtermConfig", []byte(doc))
	}
	return config.LoadTOML("webterm.toml", defaultConfig)
}

func newBackend(win *jsweb.Window, cfg config.Options, log *slog.Logger) (backend.Backend, error) {
	kind, err := cfg.Kind()
	if err != nil {
		return nil, err
	}

	switch kind {
	case config.BackendDOM:
		opts, err := cfg.DOMBackendOptions(log)
		if err != nil {
			return nil, err
		}
		return dom.New(win, opts)
	case config.BackendGPU:
		opts, err := cfg.GPUBackendOptions(log, gpu.OpenInNewTab(win, log))
		if err != nil {
			return nil, err
		}
		return gpu.NewFromWindow(win, gpu.NewJSBuilder(js.Global().Get("webtermRenderer")), opts)
	default:
		opts, err := cfg.CanvasBackendOptions(log)
		if err != nil {
			return nil, err
		}
		return canvas.New(win, opts)
	}
}
