// Command curvefit fits a polynomial or exponential curve to a dataset file, prints the fitted
// equation and its scores, and optionally saves the model as JSON and the fit as an HTML plot.
// With -serve it instead exposes the fitter over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/aouyang1/go-curvefit"
	"github.com/aouyang1/go-curvefit/server"
	"github.com/goccy/go-json"
)

const shutdownTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("curvefit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "dataset and settings file (yaml, json or toml)")
	jsonPath := fs.String("json", "", "write the fitted model as json to this path")
	plotPath := fs.String("plot", "", "write an html plot of the fit to this path, overrides the config plot")
	serveAddr := fs.String("serve", "", "serve the fitter over http on this address instead of fitting")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	serving := *serveAddr != ""
	if err := cfg.validate(serving); err != nil {
		return err
	}
	if *plotPath != "" {
		cfg.Plot = *plotPath
	}

	logger := setupLogger(stderr, cfg.LogLevel)
	if serving {
		return serve(ctx, *serveAddr, logger)
	}
	return fit(cfg, *jsonPath, stdout, logger)
}

func fit(cfg *Config, jsonPath string, w io.Writer, logger *slog.Logger) error {
	f, err := curvefit.New(cfg.Options())
	if err != nil {
		return err
	}
	if err := f.Fit(cfg.X, cfg.Y); err != nil {
		return err
	}

	m, err := f.Model()
	if err != nil {
		return err
	}
	if err := m.TablePrint(w, "", "  "); err != nil {
		return err
	}

	if outliers := f.FitResults().Outliers; len(outliers) > 0 {
		xOutliers := make([]float64, len(outliers))
		for i, idx := range outliers {
			xOutliers[i] = cfg.X[idx]
		}
		if _, err := fmt.Fprintf(w, "Outliers at x: %v\n", xOutliers); err != nil {
			return err
		}
	}

	if len(cfg.PredictX) > 0 {
		predicted, err := f.Predict(cfg.PredictX)
		if err != nil {
			return err
		}
		if err := tablePrintPredictions(w, cfg.PredictX, predicted); err != nil {
			return err
		}
	}

	if jsonPath != "" {
		out, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return fmt.Errorf("unable to encode model, %w", err)
		}
		if err := os.WriteFile(jsonPath, out, 0o644); err != nil {
			return fmt.Errorf("unable to write model, %w", err)
		}
		logger.Info("wrote model", "path", jsonPath)
	}

	if cfg.Plot != "" {
		file, err := os.Create(cfg.Plot)
		if err != nil {
			return fmt.Errorf("unable to create plot file, %w", err)
		}

		if err := f.PlotFit(file, nil); err != nil {
			file.Close()
			return fmt.Errorf("unable to plot fit, %w", err)
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("unable to close plot file, %w", err)
		}
		logger.Info("wrote plot", "path", cfg.Plot)
	}
	return nil
}

func tablePrintPredictions(w io.Writer, x, y []float64) error {
	if _, err := fmt.Fprintln(w, "Predictions:"); err != nil {
		return err
	}
	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	if _, err := fmt.Fprintln(tbl, "  x\tpredicted\t"); err != nil {
		return err
	}
	for i := range x {
		if _, err := fmt.Fprintf(tbl, "  %.6g\t%.6g\t\n", x[i], y[i]); err != nil {
			return err
		}
	}
	return tbl.Flush()
}

func serve(ctx context.Context, addr string, logger *slog.Logger) error {
	srv := server.New(addr, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server stopped unexpectedly, %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("unable to shut down server, %w", err)
	}
	return nil
}
