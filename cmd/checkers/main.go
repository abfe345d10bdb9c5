package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/park285/justcheckers-go/internal/adapter/checkerspresenter"
	"github.com/park285/justcheckers-go/internal/checkersbuilder"
	appcfg "github.com/park285/justcheckers-go/internal/config"
	"github.com/park285/justcheckers-go/internal/obslog"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.Init(cfg.Log); err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer obslog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := checkersbuilder.New(ctx, cfg)
	if err != nil {
		log.Fatalf("init error: %v", err)
	}
	defer deps.Close()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	presenter := checkerspresenter.NewPresenter(
		func(_, message string) error {
			if _, err := fmt.Fprintln(out, message); err != nil {
				return err
			}
			return out.Flush()
		},
		pngWriter(cfg.RenderDir),
	)

	sess := newSession(cfg, deps.Manager, deps.Formatter, presenter)
	if err := sess.start(ctx, cfg.Variant); err != nil {
		log.Fatalf("start error: %v", err)
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			obslog.L().Error("stdin_read_error", zap.Error(err))
		}
	}()

	for {
		fmt.Fprint(out, sess.prompt())
		_ = out.Flush()
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok || !sess.handle(ctx, line) {
				return
			}
		}
	}
}

// pngWriter saves board images into dir, one file per target name. It
// returns nil when no directory is configured.
func pngWriter(dir string) func(target string, png []byte) error {
	if dir == "" {
		return nil
	}
	return func(target string, png []byte) error {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		path := filepath.Join(dir, target+".png")
		if err := os.WriteFile(path, png, 0o644); err != nil {
			return err
		}
		obslog.L().Debug("board_image_written", zap.String("path", path), zap.Int("bytes", len(png)))
		return nil
	}
}
