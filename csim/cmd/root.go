// Package cmd provides the command-line interface for the cache simulator.
package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/csim/cache"
	"github.com/sarchlab/csim/datarecording"
	"github.com/sarchlab/csim/simulator"
	"github.com/sarchlab/csim/trace"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "csim -s <num> -E <num> -b <num> -t <file>",
	Short: "Replay a valgrind memory trace against a set-associative cache.",
	Long: `csim simulates a set-associative cache with an LRU replacement ` +
		`policy against a recorded valgrind memory trace. It prints the ` +
		`total hit, miss, and eviction counts, and can optionally log or ` +
		`record the outcome of every access.`,
	Example: `  csim -s 4 -E 1 -b 4 -t traces/yi.trace
  csim -v -s 8 -E 2 -b 4 -t traces/yi.trace`,
	RunE: run,
}

func init() {
	rootCmd.Flags().IntP(
		"set-index-bits", "s", -1, "Number of set index bits")
	rootCmd.Flags().IntP(
		"associativity", "E", -1, "Number of lines per set")
	rootCmd.Flags().IntP(
		"block-offset-bits", "b", -1, "Number of block offset bits")
	rootCmd.Flags().StringP(
		"tracefile", "t", "", "Trace file (default $CSIM_TRACE)")
	rootCmd.Flags().BoolP(
		"verbose", "v", false, "Print the outcome of every access")
	rootCmd.Flags().String(
		"record", "",
		"Record every access into a SQLite database at the given path")
}

// Execute runs the root command. It flushes the recording backends before
// the process exits.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func run(cmd *cobra.Command, _ []string) error {
	// A .env file can provide the CSIM_* defaults. Missing files are fine.
	_ = godotenv.Load()

	setIndexBits, _ := cmd.Flags().GetInt("set-index-bits")
	wayAssociativity, _ := cmd.Flags().GetInt("associativity")
	blockOffsetBits, _ := cmd.Flags().GetInt("block-offset-bits")

	err := validateConfig(setIndexBits, wayAssociativity, blockOffsetBits)
	if err != nil {
		return err
	}

	tracePath, _ := cmd.Flags().GetString("tracefile")
	if tracePath == "" {
		tracePath = os.Getenv("CSIM_TRACE")
	}
	if tracePath == "" {
		return errors.New("no trace file given, use -t or set CSIM_TRACE")
	}

	accesses, err := trace.ReadFile(tracePath)
	if err != nil {
		return err
	}

	c := cache.MakeBuilder().
		WithSetIndexBits(setIndexBits).
		WithWayAssociativity(wayAssociativity).
		WithBlockOffsetBits(blockOffsetBits).
		Build("Cache")
	s := simulator.New(c)

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger := log.New(cmd.OutOrStdout(), "", 0)
		s.AcceptHook(simulator.NewAccessLogger(logger))
	}

	recordPath, _ := cmd.Flags().GetString("record")
	if recordPath == "" {
		recordPath = os.Getenv("CSIM_RECORD_DB")
	}
	if cmd.Flags().Changed("record") || recordPath != "" {
		recorder := datarecording.New(recordPath)
		s.AcceptHook(simulator.NewAccessRecorder(recorder))
	}

	stats := s.Run(accesses)

	fmt.Fprintf(cmd.OutOrStdout(), "hits:%d misses:%d evictions:%d\n",
		stats.Hits, stats.Misses, stats.Evictions)

	return nil
}

func validateConfig(setIndexBits, wayAssociativity, blockOffsetBits int) error {
	if setIndexBits < 0 {
		return fmt.Errorf(
			"-s is required and must be non-negative, got %d", setIndexBits)
	}

	if wayAssociativity < 1 {
		return fmt.Errorf(
			"-E is required and must be at least 1, got %d", wayAssociativity)
	}

	if blockOffsetBits < 0 {
		return fmt.Errorf(
			"-b is required and must be non-negative, got %d", blockOffsetBits)
	}

	return nil
}
