package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/camnotes"
	"github.com/aretw0/camnotes/pkg/core"
)

func main() {
	count := flag.Int("count", 500, "Number of notes to append")
	keep := flag.Bool("keep", false, "Keep the benchmark data directories after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "camnotes_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ctx := context.TODO()

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d notes):\n", *count)
	for _, adapter := range []string{"fs", "sqlite"} {
		appendTook, loadTook, err := run(ctx, filepath.Join(benchDir, adapter), adapter, *count, logger)
		if err != nil {
			panic(err)
		}
		fmt.Printf("  %-6s append: %v (%v/op)  reload: %v\n",
			adapter, appendTook, appendTook/time.Duration(*count), loadTook)
	}
	fmt.Printf("--------------------------------------------------\n")
}

// run appends count notes one by one (every append rewrites the whole
// snapshot) and then reloads them in a fresh App, as a new CLI run would.
func run(ctx context.Context, dir, adapter string, count int, logger *slog.Logger) (time.Duration, time.Duration, error) {
	open := func() (*camnotes.App, error) {
		app, err := camnotes.New(dir,
			camnotes.WithAdapter(adapter),
			camnotes.WithLogger(logger),
			camnotes.WithDevSafety(false),
		)
		if err != nil {
			return nil, err
		}
		return app, app.Store.Load(ctx)
	}

	app, err := open()
	if err != nil {
		return 0, 0, err
	}

	start := time.Now()
	for i := 0; i < count; i++ {
		id := fmt.Sprintf("note_%d.jpg", i)
		note := core.Note{
			ID:      id,
			FileURI: filepath.Join(app.Files.Dir(), id),
			Caption: fmt.Sprintf("Benchmark note %d", i),
		}
		if err := app.Store.Append(ctx, note); err != nil {
			return 0, 0, err
		}
	}
	appendTook := time.Since(start)
	if err := app.Close(); err != nil {
		return 0, 0, err
	}

	start = time.Now()
	reopened, err := open()
	if err != nil {
		return 0, 0, err
	}
	defer reopened.Close()
	if n := reopened.Store.Len(); n != count {
		return 0, 0, fmt.Errorf("%s: reloaded %d notes, want %d", adapter, n, count)
	}
	return appendTook, time.Since(start), nil
}
