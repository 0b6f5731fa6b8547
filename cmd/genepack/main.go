// Command genepack rebuilds per-gene compressed artifacts from per-layer
// transcript tables. Each run is a full rebuild: every configured layer is
// read, rows are regrouped by gene, and one <gene>.json.gz is written per
// gene that has data.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"genepack/internal/blob"
	"genepack/internal/catalog"
	"genepack/internal/layer"
	"genepack/internal/pipeline"
	"genepack/pkg/domain"
)

type options struct {
	inputTemplate string
	output        string
	genes         string
	genesFile     string
	layerFrom     int
	layerTo       int
	metricsListen string
}

func parseOptions(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("genepack", flag.ContinueOnError)
	fs.StringVar(&opts.inputTemplate, "input", "./data/genes_raw/transcripts_z_%d.csv", "layer table path template with one %d for the layer index")
	fs.StringVar(&opts.output, "output", "", "artifact output directory (fs driver; default ./genes_optimized)")
	fs.StringVar(&opts.genes, "genes", "", "comma-separated gene identifiers to track")
	fs.StringVar(&opts.genesFile, "genes-file", "", "file with one gene identifier per line (alternative to -genes)")
	fs.IntVar(&opts.layerFrom, "from", 43, "first layer index (inclusive)")
	fs.IntVar(&opts.layerTo, "to", 60, "last layer index (exclusive)")
	fs.StringVar(&opts.metricsListen, "metrics-listen", "", "optional address to serve Prometheus metrics during the run")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.layerTo <= opts.layerFrom {
		return options{}, fmt.Errorf("layer range [%d,%d) is empty", opts.layerFrom, opts.layerTo)
	}
	if !strings.Contains(opts.inputTemplate, "%d") {
		return options{}, fmt.Errorf("-input template must contain %%d")
	}
	if opts.genes == "" && opts.genesFile == "" {
		return options{}, errors.New("one of -genes or -genes-file is required")
	}
	return opts, nil
}

func geneSet(opts options) ([]string, error) {
	if opts.genes != "" {
		var genes []string
		for _, g := range strings.Split(opts.genes, ",") {
			if g = strings.TrimSpace(g); g != "" {
				genes = append(genes, g)
			}
		}
		return genes, nil
	}
	b, err := os.ReadFile(opts.genesFile)
	if err != nil {
		return nil, fmt.Errorf("read genes file: %w", err)
	}
	var genes []string
	for _, line := range strings.Split(string(b), "\n") {
		if line = strings.TrimSpace(line); line != "" && !strings.HasPrefix(line, "#") {
			genes = append(genes, line)
		}
	}
	if len(genes) == 0 {
		return nil, fmt.Errorf("genes file %s contains no identifiers", opts.genesFile)
	}
	return genes, nil
}

// stdLogger adapts the stdlib logger to the pipeline's key/value interface.
type stdLogger struct {
	l *log.Logger
}

func (s stdLogger) logf(level, msg string, args ...any) {
	var b strings.Builder
	b.WriteString(level)
	b.WriteString(" ")
	b.WriteString(msg)
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}
	s.l.Print(b.String())
}

func (s stdLogger) Debug(msg string, args ...any) { s.logf("DEBUG", msg, args...) }
func (s stdLogger) Info(msg string, args ...any)  { s.logf("INFO", msg, args...) }
func (s stdLogger) Warn(msg string, args ...any)  { s.logf("WARN", msg, args...) }
func (s stdLogger) Error(msg string, args ...any) { s.logf("ERROR", msg, args...) }

func run(ctx context.Context, args []string, logger *log.Logger) error {
	opts, err := parseOptions(args)
	if err != nil {
		return err
	}
	genes, err := geneSet(opts)
	if err != nil {
		return err
	}

	store, err := blob.Open(ctx, opts.output)
	if err != nil {
		return fmt.Errorf("open artifact store: %w", err)
	}
	cat, err := catalog.Open()
	if err != nil {
		return fmt.Errorf("open run catalog: %w", err)
	}
	defer func() { _ = cat.Close() }()

	if opts.metricsListen != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: opts.metricsListen, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Printf("metrics server: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	runner := pipeline.New(pipeline.Config{
		Source: layer.Source{PathTemplate: opts.inputTemplate},
		Genes:  genes,
		Layers: domain.LayerRange{From: opts.layerFrom, To: opts.layerTo},
	}, pipeline.WithLogger(stdLogger{l: logger}))

	rec, runErr := runner.Run(ctx, store)
	if runErr != nil {
		return runErr
	}
	// Artifacts are already durable; a catalog hiccup should not fail the run.
	if err := cat.RecordRun(ctx, rec); err != nil {
		logger.Printf("WARN record run in catalog: %v", err)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.New(os.Stderr, "", log.LstdFlags)
	if err := run(ctx, os.Args[1:], logger); err != nil {
		logger.Printf("ERROR %v", err)
		os.Exit(1)
	}
}
