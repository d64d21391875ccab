// Command feeddetect runs the feed-link detector from the command line: a
// single url, a file of urls run as a batch, or a console server for
// interactive review.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	_ "net/http/pprof"

	"github.com/alecthomas/log4go"
	"github.com/spf13/cobra"

	feeddetector "github.com/webos-goodies/feed-detector"
	"github.com/webos-goodies/feed-detector/console"
	"github.com/webos-goodies/feed-detector/internal/batch"
	"github.com/webos-goodies/feed-detector/internal/fetch"
	"github.com/webos-goodies/feed-detector/resulthandler"
	"github.com/webos-goodies/feed-detector/store/cassandra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "feeddetect",
	Short: "Detect repeating feed-like link regions in HTML documents",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if configPath != "" {
			if err := feeddetector.ReadConfigFile(configPath); err != nil {
				fatalf("failed to read config %v: %v", configPath, err)
			}
		}
		if os.Getenv("FEEDDETECT_PPROF") == "1" {
			go func() {
				log4go.Debug("pprof enabled, starting http listener")
				if err := http.ListenAndServe(":6060", nil); err != nil {
					log4go.Error("pprof listener failed: %v", err)
				}
			}()
		}
	},
}

var detectCmd = &cobra.Command{
	Use:   "detect [url]",
	Short: "Fetch one url and print its detected feed regions",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		res, err := fetch.Fetch(context.Background(), http.DefaultClient, args[0])
		if err != nil {
			fatalf("fetch failed: %v", err)
		}
		groups := feeddetector.Detect(res.Doc, feeddetector.Options{})
		h := resulthandler.NewHandler(os.Stdout)
		h.HandleResult(args[0], groups, nil)
	},
}

var batchFile string

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Fetch and detect every url listed in --file, one per line",
	Run: func(cmd *cobra.Command, args []string) {
		if batchFile == "" {
			fatalf("batch requires --file")
		}
		urls, err := readLines(batchFile)
		if err != nil {
			fatalf("reading %v: %v", batchFile, err)
		}

		runner, err := batch.NewRunner()
		if err != nil {
			fatalf("creating batch runner: %v", err)
		}
		h := resulthandler.NewHandler(os.Stdout)
		runner.Run(context.Background(), urls, func(out batch.Outcome) {
			h.HandleResult(out.URL, out.Groups, out.Err)
		})
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the review console",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := cassandra.NewDatastore()
		if err != nil {
			fatalf("connecting to cassandra: %v", err)
		}
		srv := console.New(store)
		addr := fmt.Sprintf(":%d", feeddetector.Config.Console.Port)
		log4go.Info("feeddetect console listening on %v", addr)
		if err := http.ListenAndServe(addr, srv); err != nil {
			fatalf("console server failed: %v", err)
		}
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create the cassandra schema for the review console",
	Run: func(cmd *cobra.Command, args []string) {
		if err := cassandra.CreateSchema(); err != nil {
			fatalf("creating schema: %v", err)
		}
	},
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var lines []string
	start := 0
	for i, b := range data {
		if b == '\n' {
			if line := trimCR(string(data[start:i])); line != "" {
				lines = append(lines, line)
			}
			start = i + 1
		}
	}
	if line := trimCR(string(data[start:])); line != "" {
		lines = append(lines, line)
	}
	return lines, nil
}

func trimCR(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\r' {
		return s[:len(s)-1]
	}
	return s
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to feeddetect.yaml")
	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "file of urls, one per line")

	rootCmd.AddCommand(detectCmd, batchCmd, serveCmd, schemaCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fatalf("%v", err)
	}
}
