// Command routesim is an interactive testbed for decentralized routing
// algorithms. It reads line commands from stdin, from scripts, and
// optionally from TCP clients, all driving one shared simulation.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/graphnet/routesim/command"
	"github.com/graphnet/routesim/config"
	"github.com/graphnet/routesim/sim"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configPath string
	execLines  []string
	scriptPath string
	listenAddr string
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "routesim",
		Short:         "Testbed for decentralized routing algorithms",
		Long:          "routesim builds network topologies, runs pluggable routing algorithms\non them, and measures packet arrival and path stretch.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(opts)
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "TOML configuration file")
	cmd.Flags().StringArrayVarP(&opts.execLines, "exec", "e", nil, "command to run at startup (repeatable)")
	cmd.Flags().StringVarP(&opts.scriptPath, "script", "s", "", "command script to run at startup")
	cmd.Flags().StringVarP(&opts.listenAddr, "listen", "l", "", "TCP address for remote line commands")

	return cmd
}

func run(opts options) error {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return err
		}
	}
	if opts.listenAddr != "" {
		cfg.Listen = opts.listenAddr
	}

	log := newLogger(cfg)
	st := sim.NewState(log)
	st.SetSeed(cfg.Seed)
	if err := st.SetAlgorithm(cfg.Algorithm); err != nil {
		return err
	}
	if cfg.HopLimit > 0 {
		if err := st.SetParam("hop_limit", strconv.Itoa(cfg.HopLimit)); err != nil {
			return err
		}
	}

	in := command.New(st, log, cfg.Seed)
	in.SetProgressDefault(cfg.Progress)
	in.SetExportPath(cfg.Export)

	// One session mutex: stdin, startup commands, and TCP clients share
	// the interpreter.
	var mu sync.Mutex
	exec := func(w io.Writer, line string) error {
		mu.Lock()
		defer mu.Unlock()

		return in.Execute(w, line)
	}

	for _, line := range opts.execLines {
		if err := exec(os.Stdout, line); errors.Is(err, command.ErrExit) {
			return nil
		}
	}
	if opts.scriptPath != "" {
		if err := exec(os.Stdout, "run "+opts.scriptPath); errors.Is(err, command.ErrExit) {
			return nil
		}
	}

	done := make(chan struct{})
	var once sync.Once
	quit := func() { once.Do(func() { close(done) }) }

	if cfg.Listen != "" {
		ln, err := net.Listen("tcp", cfg.Listen)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", cfg.Listen, err)
		}
		defer ln.Close()
		log.WithField("addr", cfg.Listen).Info("command listener started")
		go serve(ln, log, exec, quit)
	}

	go repl(log, exec, quit)

	<-done

	return nil
}

// newLogger builds the process logger from configuration: stderr by
// default, a rotated file when one is configured.
func newLogger(cfg config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetLevel(cfg.LogLevel())
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.Log.File != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
		})
	}

	return log
}

// repl reads commands from stdin until EOF or exit.
func repl(log *logrus.Logger, exec func(io.Writer, string) error, quit func()) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		if err := exec(os.Stdout, scanner.Text()); errors.Is(err, command.ErrExit) {
			quit()

			return
		}
	}
	if err := scanner.Err(); err != nil {
		log.WithError(err).Error("stdin read failed")
	}
	quit()
}

// serve accepts TCP clients; each connection is its own command
// session writing responses back on the same stream. An exit from a
// remote client ends the whole simulator, matching local behavior.
func serve(ln net.Listener, log *logrus.Logger, exec func(io.Writer, string) error, quit func()) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		log.WithField("remote", conn.RemoteAddr().String()).Info("client connected")

		go func(conn net.Conn) {
			defer conn.Close()
			scanner := bufio.NewScanner(conn)
			for scanner.Scan() {
				if err := exec(conn, scanner.Text()); errors.Is(err, command.ErrExit) {
					quit()

					return
				}
			}
		}(conn)
	}
}
