package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"corebook/internal/bench"
	"corebook/internal/book"
	"corebook/internal/ingest"
)

func newBenchCmd() *cobra.Command {
	var (
		pair       string
		count      int
		seed       int64
		cancelRate int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Generate synthetic order requests and report matching throughput",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(pair, count, seed, cancelRate)
		},
	}

	cmd.Flags().StringVar(&pair, "pair", "ETH/USDT", "trading pair identifier")
	cmd.Flags().IntVar(&count, "count", 100000, "number of synthetic requests to generate")
	cmd.Flags().Int64Var(&seed, "seed", 1, "PRNG seed, for reproducible runs")
	cmd.Flags().IntVar(&cancelRate, "cancel-rate", 1000, "1-in-N requests are a Cancel; 0 disables cancels")

	return cmd
}

func runBench(pair string, count int, seed int64, cancelRate int) error {
	generator := bench.NewGenerator(pair, seed, cancelRate)
	ob := book.NewOrderbook(pair)

	start := time.Now()
	var matched, trades int
	for i := 0; i < count; i++ {
		req := generator.Next()
		switch req.Request {
		case ingest.Cancel:
			ob.Cancel(req.OrderID)
		case ingest.Create:
			order, err := req.ToOrder(pair)
			if err != nil {
				continue
			}
			outcome, executed, err := ob.Submit(order)
			if err != nil {
				continue
			}
			if outcome == book.Matched {
				matched++
			}
			trades += len(executed)
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("requests=%d matched=%d trades=%d resting=%d elapsed=%s throughput=%.0f req/s\n",
		count, matched, trades, ob.OrdersResting(), elapsed, float64(count)/elapsed.Seconds())
	return nil
}
