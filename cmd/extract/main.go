package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shoppey/cart-scraper/internal/browser"
	"github.com/shoppey/cart-scraper/internal/extractor"
	"github.com/shoppey/cart-scraper/internal/models"
	"github.com/shoppey/cart-scraper/internal/queue"
	"github.com/shoppey/cart-scraper/internal/ratelimit"
)

func main() {
	var (
		urls       = flag.String("urls", "", "Comma-separated list of product page URLs")
		urlFile    = flag.String("file", "", "File with one URL or local .html path per line")
		output     = flag.String("output", "", "Output file for JSON lines (default stdout)")
		headless   = flag.Bool("headless", getEnvBool("HEADLESS", true), "Run browser in headless mode")
		workers    = flag.Int("workers", getEnvInt("EXTRACT_WORKERS", 1), "Number of concurrent extraction workers")
		maxRetries = flag.Int("retries", getEnvInt("MAX_RETRIES", 3), "Navigation retries per page")
		rateMin    = flag.Duration("rate-min", 2*time.Second, "Minimum delay between fetches")
		rateMax    = flag.Duration("rate-max", 5*time.Second, "Maximum delay between fetches")
	)
	flag.Parse()

	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	targets, err := collectTargets(*urls, *urlFile)
	if err != nil {
		logger.Error("failed to read targets", "error", err)
		os.Exit(1)
	}
	if len(targets) == 0 {
		fmt.Fprintln(os.Stderr, "usage: extract -urls <url,...> | -file <path>")
		os.Exit(2)
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			logger.Error("failed to create output file", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("received shutdown signal")
		cancel()
	}()

	q := queue.NewInMemoryQueue()
	for _, t := range targets {
		if err := q.Push(queue.NewTask(t, 0)); err != nil {
			logger.Error("failed to enqueue target", "target", t, "error", err)
		}
	}
	q.Close()

	needsBrowser := false
	for _, t := range targets {
		if !isLocalFile(t) {
			needsBrowser = true
			break
		}
	}

	var b *browser.Browser
	if needsBrowser {
		browserOpts := browser.DefaultOptions()
		browserOpts.Headless = *headless

		b, err = browser.New(browserOpts)
		if err != nil {
			logger.Error("failed to create browser", "error", err)
			os.Exit(1)
		}
		defer b.Close()
	}

	limiter := ratelimit.NewAdaptiveRateLimiter(*rateMin, *rateMax)
	ext := extractor.New(logger)

	var (
		outMu sync.Mutex
		wg    sync.WaitGroup
	)
	enc := json.NewEncoder(out)

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			for {
				task, err := q.Pop(ctx)
				if err != nil {
					if !errors.Is(err, queue.ErrQueueClosed) && !errors.Is(err, context.Canceled) {
						logger.Error("queue pop failed", "worker", worker, "error", err)
					}
					return
				}

				result, err := processTarget(ctx, b, ext, limiter, task, *maxRetries)
				if err != nil {
					logger.Error("extraction failed", "worker", worker, "target", task.URL, "error", err)
					continue
				}

				outMu.Lock()
				if err := enc.Encode(result); err != nil {
					logger.Error("failed to write result", "error", err)
				}
				outMu.Unlock()
			}
		}(i)
	}

	wg.Wait()
	logger.Info("extraction completed", "targets", len(targets))
}

func processTarget(ctx context.Context, b *browser.Browser, ext *extractor.Extractor, limiter *ratelimit.AdaptiveRateLimiter, task *queue.Task, maxRetries int) (*models.ExtractionResult, error) {
	var (
		html    string
		pageURL = task.URL
	)

	if isLocalFile(task.URL) {
		data, err := os.ReadFile(task.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		html = string(data)
		pageURL = "file://" + task.URL
	} else {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}

		fetched, err := b.FetchHTML(task.URL, maxRetries)
		if err != nil {
			limiter.RecordError()
			return nil, err
		}
		limiter.RecordSuccess()
		html = fetched
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	return ext.ExtractProductInfo(doc, pageURL), nil
}

func collectTargets(urls, urlFile string) ([]string, error) {
	var targets []string

	for _, u := range strings.Split(urls, ",") {
		if u = strings.TrimSpace(u); u != "" {
			targets = append(targets, u)
		}
	}

	if urlFile != "" {
		f, err := os.Open(urlFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			targets = append(targets, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	return targets, nil
}

func isLocalFile(target string) bool {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return false
	}
	_, err := os.Stat(target)
	return err == nil
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var i int
		fmt.Sscanf(value, "%d", &i)
		return i
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}
