package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/routepal/routepal/internal/biz/domain"
	"github.com/routepal/routepal/internal/data"
)

// predict resolves a natural-language query against the local prediction
// datasets, without going through Feishu or ChatGPT. Useful for checking
// what the bot would find for a given phrase.
func main() {
	dataDir := flag.String("data", "/data", "directory holding pred_<algo> dataset files")
	verbose := flag.Bool("v", false, "log dataset access")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Usage: predict [-data dir] [-v] <query>")
		fmt.Println("Example: predict -data ./data \"用lstm预测3月5日下午2点30分的交通流量\"")
		os.Exit(1)
	}
	query := strings.Join(flag.Args(), " ")

	logOut := io.Discard
	if *verbose {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logOut, nil))

	algorithm, ok := domain.FindAlgorithm(query)
	if !ok {
		fmt.Println("Error: query must name exactly one algorithm (lstm, gru or saes)")
		os.Exit(1)
	}

	resolver := domain.DateTimeResolver{}
	parsed, ok := resolver.Resolve(query)
	if !ok {
		fmt.Println("Error: no date found in query (need at least a month and day)")
		os.Exit(1)
	}
	timestamp := parsed.Canonical()
	fmt.Printf("algorithm: %s\ntimestamp: %s\n", algorithm, timestamp)

	store := data.NewPredictionRepo(*dataDir, logger)
	record, err := store.Lookup(context.Background(), algorithm, timestamp)
	if err != nil {
		fmt.Printf("Lookup failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(record.Sentence())
}
