package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	tomb "gopkg.in/tomb.v2"

	"corebook/internal/book"
	"corebook/internal/ingest"
	"corebook/internal/report"
	"corebook/internal/telemetry"
)

func newRunCmd() *cobra.Command {
	var (
		pair        string
		inputPath   string
		outputPath  string
		metricsAddr string
		logLevel    string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Stream order requests into the book and print a summary on completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngine(pair, inputPath, outputPath, metricsAddr, logLevel)
		},
	}

	cmd.Flags().StringVar(&pair, "pair", "", "trading pair identifier (required)")
	cmd.Flags().StringVar(&inputPath, "input", "-", "input file, or - for stdin")
	cmd.Flags().StringVar(&outputPath, "output", "-", "output file, or - for stdout")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "address to serve /metrics on, empty disables it")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	cmd.MarkFlagRequired("pair")

	return cmd
}

func runEngine(pair, inputPath, outputPath, metricsAddr, logLevel string) error {
	logger := telemetry.NewLogger(logLevel)
	registry := prometheus.NewRegistry()
	collector := telemetry.NewCollector(registry)

	if metricsAddr != "" {
		go func() {
			logger.Info().Str("addr", metricsAddr).Msg("serving metrics")
			if err := http.ListenAndServe(metricsAddr, telemetry.Handler(registry)); err != nil {
				logger.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	in, closeIn, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeOut()

	ob := book.NewOrderbook(pair)
	reader := ingest.NewReader(in, logger)

	var t tomb.Tomb
	t.Go(func() error { return reader.Run(&t) })

	for line := range reader.Lines {
		if line.Err != nil {
			collector.OrdersRejected.WithLabelValues("malformed").Inc()
			continue
		}
		processLine(ob, line.Request, pair, logger, collector)
	}

	if err := t.Wait(); err != nil {
		return fmt.Errorf("reader: %w", err)
	}

	collector.OrdersResting.Set(float64(ob.OrdersResting()))
	summary := report.Compute(ob)
	fmt.Fprintln(out, summary.String())
	return nil
}

func processLine(ob *book.Orderbook, req *ingest.OrderRequest, pair string, logger zerolog.Logger, collector *telemetry.Collector) {
	switch req.Request {
	case ingest.Cancel:
		if _, err := ob.Cancel(req.OrderID); err != nil {
			logger.Warn().Err(err).Uint64("order_id", uint64(req.OrderID)).Msg("cancel failed")
			return
		}
		collector.OrdersCancelled.Inc()

	case ingest.Create:
		order, err := req.ToOrder(pair)
		if err != nil {
			logger.Warn().Err(err).Uint64("order_id", uint64(req.OrderID)).Msg("rejected order")
			collector.OrdersRejected.WithLabelValues("invalid").Inc()
			return
		}

		timer := telemetry.NewTimer()
		outcome, trades, err := ob.Submit(order)
		timer.ObserveSeconds(collector.SubmitLatency)
		if err != nil {
			logger.Warn().Err(err).Uint64("order_id", uint64(req.OrderID)).Msg("submit failed")
			collector.OrdersRejected.WithLabelValues("duplicate").Inc()
			return
		}

		collector.OrdersReceived.WithLabelValues(order.Side().String(), order.Kind().String()).Inc()
		if outcome == book.Matched {
			collector.OrdersMatched.Inc()
		}
		for _, trade := range trades {
			collector.TradesExecuted.Inc()
			qty, _ := trade.Quantity().Float64()
			collector.TradeVolume.Add(qty)
		}

	default:
		logger.Warn().Str("request", string(req.Request)).Msg("unknown request kind")
		collector.OrdersRejected.WithLabelValues("unknown_kind").Inc()
	}
}

func openInput(path string) (*os.File, func(), error) {
	if path == "-" || path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string) (*os.File, func(), error) {
	if path == "-" || path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening output: %w", err)
	}
	return f, func() { f.Close() }, nil
}
