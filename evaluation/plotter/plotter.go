package main

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/mason-leap-lab/go-utils/config"
	"github.com/mason-leap-lab/go-utils/logger"

	"github.com/mason-leap-lab/gmbcplot/common/aws/s3"
	"github.com/mason-leap-lab/gmbcplot/common/results"
	"github.com/mason-leap-lab/gmbcplot/evaluation/plotter/options"
	"github.com/mason-leap-lab/gmbcplot/evaluation/plotter/preview"
	"github.com/mason-leap-lab/gmbcplot/evaluation/plotter/renderers"
)

var (
	log logger.Logger = logger.NilLogger
)

func main() {
	opts := options.NewOptions()
	flags, err := config.ValidateOptions(opts)
	if err == nil && flags.NArg() > 0 {
		opts.Results = flags.Arg(0)
	}
	// Check usage.
	if err == config.ErrPrintUsage {
		fmt.Fprintf(os.Stderr, "Usage: ./plotter [options] [results_dir]\n")
		fmt.Fprintf(os.Stderr, "Available options:\n")
		flags.PrintDefaults()
		os.Exit(0)
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	log = config.GetDefaultLogger()
	if opts.InflateFile != "" {
		if err := inflate(opts.InflateFile); err != nil {
			log.Error("Failed to inflate %s: %v", opts.InflateFile, err)
			os.Exit(1)
		}
		return
	}
	if err := run(opts); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}

func run(opts *options.Options) error {
	runID := uuid.New().String()

	renderer, ok := renderers.LoadRenderer(opts.Mode())
	if !ok {
		return fmt.Errorf("unsupported renderer: %s", opts.Mode())
	}
	if err := renderer.Configure(opts); err != nil {
		return fmt.Errorf("error on configuring renderer: %w", err)
	}

	var fetcher *s3.Fetcher
	if opts.S3Bucket != "" {
		fetcher = s3.NewFetcher(s3.NewSession(opts.S3Region), opts.S3Bucket, opts.S3Prefix)
		fetchAll(fetcher, renderer.Files(), opts)
	}

	var cache *results.Cache
	if opts.CacheDir != "" {
		var err error
		if cache, err = results.NewCache(opts.CacheDir); err != nil {
			return fmt.Errorf("error on opening cache %s: %w", opts.CacheDir, err)
		}
	}

	if opts.RecordFile != "" {
		recorder, err := renderers.NewRecorder(opts.RecordFile, runID)
		if err != nil {
			return fmt.Errorf("error on creating record %s: %w", opts.RecordFile, err)
		}
		defer func() {
			if err := recorder.Close(); err != nil {
				log.Warn("Failed to flush record %s: %v", opts.RecordFile, err)
			}
		}()
		renderer.SetRecorder(recorder)
	}

	if err := renderer.Load(results.NewLoader(cache)); err != nil {
		return err
	}

	dir := opts.OutputDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	files, err := renderer.Render(dir)
	if err != nil {
		return fmt.Errorf("error on rendering %s: %w", opts.Mode(), err)
	}
	renderer.Summarize(os.Stdout)

	if opts.Upload {
		uploadAll(fetcher, runID, files, opts)
	}

	if opts.Show {
		view, err := preview.NewPreview(" "+opts.Mode()+" ", renderer.Series())
		if err != nil {
			log.Warn("Preview unavailable: %v", err)
			return nil
		}
		defer view.Close()
		view.Start()
	}
	return nil
}

// fetchAll downloads result files missing locally. Failures are left to the loader to report.
func fetchAll(fetcher *s3.Fetcher, files []string, opts *options.Options) {
	locator := opts.Locator()
	for _, name := range files {
		ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
		found, err := fetcher.Fetch(ctx, name, locator.Path(name))
		cancel()
		if err != nil {
			log.Warn("Failed to fetch %s: %v", name, err)
		} else if !found {
			log.Debug("%s is not available in s3://%s", name, opts.S3Bucket)
		}
	}
}

func uploadAll(fetcher *s3.Fetcher, runID string, files []string, opts *options.Options) {
	for _, file := range files {
		ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
		_, err := fetcher.Upload(ctx, path.Join("plots", runID, filepath.Base(file)), file)
		cancel()
		if err != nil {
			log.Warn("Failed to upload %s: %v", file, err)
		}
	}
}

func inflate(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Println("run,mode,label,n,mean,std,window")
	return renderers.Inflate(f, os.Stdout)
}
