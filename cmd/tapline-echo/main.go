// Command tapline-echo demonstrates the event tap over live TCP
// connections. It runs either an echo server or an interactive client;
// both sides carry a tap handler in their pipelines, so every lifecycle
// event and every frame shows up in the log output.
//
// Usage:
//
//	# Terminal 1: echo server with hex-dumped frames
//	tapline-echo -listen :9000
//
//	# Terminal 2: interactive client
//	tapline-echo -connect 127.0.0.1:9000
//
//	# Capture events to a file for later analysis with tapline-log
//	tapline-echo -listen :9000 -capture events.tlog
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chzyer/readline"

	"github.com/tapline-io/tapline-go/pkg/buffer"
	"github.com/tapline-io/tapline-go/pkg/logging"
	"github.com/tapline-io/tapline-go/pkg/pipeline"
	"github.com/tapline-io/tapline-go/pkg/tap"
	"github.com/tapline-io/tapline-go/pkg/transport"
	"github.com/tapline-io/tapline-go/pkg/version"
)

type config struct {
	listen    string
	connect   string
	level     string
	logConfig string
	capture   string
}

func main() {
	var cfg config
	flag.StringVar(&cfg.listen, "listen", "", "Run an echo server on this address")
	flag.StringVar(&cfg.connect, "connect", "", "Connect to an echo server at this address")
	flag.StringVar(&cfg.level, "level", "debug", "Severity the tap logs events at")
	flag.StringVar(&cfg.logConfig, "log-config", "", "Path to a YAML logging config file")
	flag.StringVar(&cfg.capture, "capture", "", "Also capture events to this file")
	showVersion := flag.Bool("version", false, "Print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("tapline-echo " + version.Current)
		return
	}

	if (cfg.listen == "") == (cfg.connect == "") {
		fmt.Fprintln(os.Stderr, "Error: exactly one of -listen or -connect is required")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config) error {
	if err := setupLogging(cfg); err != nil {
		return err
	}

	level, err := logging.ParseSeverity(cfg.level)
	if err != nil {
		return err
	}

	handler, err := tap.New(tap.WithName("tap"), tap.WithLevel(level))
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.listen != "" {
		return runServer(ctx, cfg.listen, handler)
	}
	return runClient(ctx, cancel, cfg.connect, handler)
}

// setupLogging installs the process-wide backend before the first
// logger is handed out.
func setupLogging(cfg config) error {
	if cfg.logConfig != "" {
		logCfg, err := logging.LoadConfig(cfg.logConfig)
		if err != nil {
			return err
		}
		candidates, err := logCfg.Candidates()
		if err != nil {
			return err
		}
		return logging.SetCandidates(candidates...)
	}

	if cfg.capture != "" {
		capture, err := logging.NewCaptureProvider(cfg.capture)
		if err != nil {
			return err
		}
		return logging.SetProvider(logging.NewMultiProvider(logging.NewConsoleProvider(), capture))
	}

	// Default candidate chain applies.
	return nil
}

// echoHandler writes every inbound frame back to the peer.
type echoHandler struct {
	pipeline.InboundAdapter
}

func (h *echoHandler) ChannelRead(ctx pipeline.Context, msg any) {
	if err := ctx.Write(msg); err != nil {
		ctx.FireExceptionCaught(err)
		return
	}
	ctx.Flush()
}

func runServer(ctx context.Context, address string, handler *tap.LogHandler) error {
	srv := transport.NewServer(transport.ServerConfig{
		Address: address,
		Initializer: func(p *pipeline.Pipeline) error {
			if err := p.AddLast("tap", handler); err != nil {
				return err
			}
			return p.AddLast("echo", &echoHandler{})
		},
	})

	if err := srv.Start(ctx); err != nil {
		return err
	}
	fmt.Printf("Echo server listening on %s\n", srv.Addr())

	<-ctx.Done()
	return srv.Stop()
}

// printer writes decoded frames through the readline instance so output
// does not mangle the prompt.
type printer struct {
	pipeline.InboundAdapter

	rl *readline.Instance
}

func (h *printer) ChannelRead(_ pipeline.Context, msg any) {
	v, ok := msg.(buffer.View)
	if !ok {
		return
	}
	b := make([]byte, v.ReadableBytes())
	for i := range b {
		b[i] = v.ByteAt(i)
	}
	fmt.Fprintf(h.rl.Stdout(), "< %s\n", b)
}

func runClient(ctx context.Context, cancel context.CancelFunc, address string, handler *tap.LogHandler) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	ch, err := transport.Dial(ctx, address, transport.DefaultConfig(),
		func(p *pipeline.Pipeline) error {
			if err := p.AddLast("tap", handler); err != nil {
				return err
			}
			return p.AddLast("printer", &printer{rl: rl})
		})
	if err != nil {
		return err
	}

	go func() {
		_ = ch.Serve(ctx)
		cancel()
	}()
	defer ch.Close()

	fmt.Fprintf(rl.Stdout(), "Connected to %s as %s. Type a line to send it; 'exit' quits.\n",
		address, ch)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			return nil
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			return nil
		}

		if err := ch.Write([]byte(input)); err != nil {
			fmt.Fprintf(rl.Stderr(), "write failed: %v\n", err)
			return nil
		}
	}
}
