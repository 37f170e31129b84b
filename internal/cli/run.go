package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/chainspec/internal/presentation/tui"
	"github.com/aretw0/chainspec/pkg/runner"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Report formats.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// ErrFailures is returned by Run when at least one case did not pass.
var ErrFailures = errors.New("spec failed")

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	Options
	Format string
	// MetricsAddr exposes /metrics while the run lasts when set.
	MetricsAddr string
	Banner      bool
}

// Run executes the spec file and writes the report to w.
func Run(ctx context.Context, opts RunOptions, w io.Writer) (*runner.Report, error) {
	if opts.Format == "" {
		opts.Format = FormatText
	}
	write, err := reportWriter(opts.Format, w)
	if err != nil {
		return nil, err
	}

	p, err := Open(ctx, opts.Options, nil)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	if opts.MetricsAddr != "" {
		stop := serveMetrics(p, opts.MetricsAddr)
		defer stop()
	}

	if opts.Banner && opts.Format == FormatText {
		tui.PrintBanner(w)
	}

	p.Logger.Debug("running spec", "file", opts.File, "max_retries", p.Config.MaxRetries,
		"should_means_eventually", p.Config.ShouldMeansEventually)
	report, err := p.Run(ctx)
	if err != nil {
		return nil, err
	}

	title := p.Spec.Name
	if title == "" {
		title = opts.File
	}
	if err := write(title, report); err != nil {
		return report, fmt.Errorf("failed to write report: %w", err)
	}
	if !report.OK() {
		return report, fmt.Errorf("%w: %d of %d case(s) failing", ErrFailures, report.Failed(), len(report.Cases))
	}
	return report, nil
}

func reportWriter(format string, w io.Writer) (func(string, *runner.Report) error, error) {
	switch format {
	case FormatText:
		return func(_ string, r *runner.Report) error {
			return runner.NewTextHandler(w).Write(r)
		}, nil
	case FormatJSON:
		return func(_ string, r *runner.Report) error {
			return runner.NewJSONHandler(w).Write(r)
		}, nil
	case FormatMarkdown:
		render := tui.NewPlainRenderer()
		if f, ok := w.(*os.File); ok {
			render = tui.RendererFor(f)
		}
		return func(title string, r *runner.Report) error {
			out, err := render(runner.Markdown(title, r))
			if err != nil {
				return err
			}
			_, err = io.WriteString(w, out)
			return err
		}, nil
	}
	return nil, fmt.Errorf("unknown format %q (want %s, %s or %s)", format, FormatText, FormatJSON, FormatMarkdown)
}

func serveMetrics(p *Project, addr string) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			p.Logger.Error("metrics server failed", "addr", addr, "err", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
