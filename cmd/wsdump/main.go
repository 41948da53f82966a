// Command wsdump decodes WebSocket frame streams and dumps frame headers.
//
// It reads raw frame bytes from a file or stdin, or accepts TCP
// connections (with an optional RFC 6455 handshake) and decodes each
// stream incrementally, logging every frame head and optionally writing
// NDJSON records.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	_ "go.uber.org/automaxprocs"

	"github.com/matthunz/ws-frame/config"
	"github.com/matthunz/ws-frame/internal/dump"
	"github.com/matthunz/ws-frame/pool"
	"github.com/matthunz/ws-frame/protocol"
	"github.com/matthunz/ws-frame/stream"
	"github.com/matthunz/ws-frame/transport"
	"github.com/matthunz/ws-frame/transport/tcp"
)

func main() {
	cfg := config.NewConfig()
	if err := cfg.ParseFlags(os.Args[1:]); err != nil {
		logrus.Fatalf("flag parsing error: %v", err)
	}

	if err := run(cfg); err != nil {
		logrus.Fatal(err)
	}
}

func run(cfg *config.Config) error {
	logger := newLogger(cfg.Data.Global.LogLevel)

	var out *dump.Writer
	if cfg.Data.Dump.Output != "" {
		var err error
		out, err = dump.Open(cfg.Data.Dump.Output)
		if err != nil {
			return err
		}
		defer func() {
			if err := out.Close(); err != nil {
				logger.Error(err)
			}
		}()
	}

	switch {
	case cfg.Data.Input.Path != "":
		return runInput(cfg, logger, out)
	case cfg.Data.Listen.Addr != "":
		return runListen(cfg, logger, out)
	default:
		return fmt.Errorf("nothing to do: set --input or --listen")
	}
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	switch level {
	case "panic":
		logger.SetLevel(logrus.PanicLevel)
	case "fatal":
		logger.SetLevel(logrus.FatalLevel)
	case "error", "err":
		logger.SetLevel(logrus.ErrorLevel)
	case "warning", "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "info":
		logger.SetLevel(logrus.InfoLevel)
	case "debugging", "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "tracing", "trace":
		logger.SetLevel(logrus.TraceLevel)
	}
	return logger
}

// readerOptions assembles stream options common to both modes.
func readerOptions(cfg *config.Config, logger *logrus.Logger, bp *pool.BytePool) []stream.Option {
	opts := []stream.Option{
		stream.WithLogger(logger),
		stream.WithPool(bp),
	}
	if cfg.Data.Dump.Limit > 0 {
		opts = append(opts, stream.WithLimit(cfg.Data.Dump.Limit))
	}
	if cfg.Data.Dump.Compat126 {
		opts = append(opts, stream.WithCompat126())
	}
	return opts
}

// frameHandler logs each frame and records it when a dump writer is set.
func frameHandler(peer string, logger *logrus.Logger, out *dump.Writer) stream.Handler {
	return stream.HandlerFunc(func(f *protocol.Frame) error {
		logger.WithFields(logrus.Fields{
			"peer":   peer,
			"opcode": f.Head.Op.String(),
			"fin":    f.Head.Finished,
			"masked": f.Mask != nil,
			"len":    len(f.Payload),
		}).Info("frame")
		if out == nil {
			return nil
		}
		return out.Write(dump.NewRecord(peer, f))
	})
}

func runInput(cfg *config.Config, logger *logrus.Logger, out *dump.Writer) error {
	src := os.Stdin
	if cfg.Data.Input.Path != "-" {
		f, err := os.Open(cfg.Data.Input.Path)
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	}

	r := stream.NewReader(src, readerOptions(cfg, logger, pool.NewBytePool())...)
	defer r.Close()
	return r.Run(frameHandler("", logger, out))
}

func runListen(cfg *config.Config, logger *logrus.Logger, out *dump.Writer) error {
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	bp := pool.NewBytePool()
	srv := tcp.NewServer(tcp.Config{
		Addr:      cfg.Data.Listen.Addr,
		Handshake: cfg.Data.Listen.Handshake,
		Log:       logger,
	})

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(func(nc *transport.NetConn) {
			peer := nc.RemoteAddr().String()
			r := stream.NewReader(nc, readerOptions(cfg, logger, bp)...)
			defer r.Close()
			defer nc.Close()

			if err := r.Run(frameHandler(peer, logger, out)); err != nil {
				logger.WithField("peer", peer).Error(err)
			}
			logger.WithFields(logrus.Fields{
				"peer": peer,
				"rx":   nc.BytesRead(),
			}).Debug("connection done")
		})
	}()

	select {
	case err := <-serveErr:
		return err
	case <-gracefulShutdown:
		_, _ = os.Stdout.Write([]byte{'\n'})
		if err := srv.Close(); err != nil {
			logger.Error(err)
		}
		return <-serveErr
	}
}
