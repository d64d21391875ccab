// Command validate checks that a feeddetect.yaml config file parses and
// satisfies its invariants, and optionally runs detection against a local
// HTML file to sanity-check the result before deploying a config change.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	feeddetector "github.com/webos-goodies/feed-detector"
	"github.com/webos-goodies/feed-detector/htmldom"
)

var sampleFile string

var rootCmd = &cobra.Command{
	Use:   "validate [config-file]",
	Short: "Validate a feeddetect.yaml config file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := feeddetector.ReadConfigFile(args[0]); err != nil {
			fatalf("invalid config: %v", err)
		}
		fmt.Printf("%v is valid\n", args[0])

		if sampleFile == "" {
			return
		}
		runSample(sampleFile)
	},
}

func runSample(path string) {
	f, err := os.Open(path)
	if err != nil {
		fatalf("opening sample %v: %v", path, err)
	}
	defer f.Close()

	doc, err := htmldom.Parse(f, "text/html")
	if err != nil {
		fatalf("parsing sample %v: %v", path, err)
	}

	groups := feeddetector.Detect(doc, feeddetector.Options{})
	fmt.Printf("%v: detected %d candidate groups\n", path, len(groups))
	for i, g := range groups {
		fmt.Printf("  %d: score=%.2f cbg_score=%.2f entries=%d\n", i, g.Score, g.CBGScore, len(g.Entries))
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func init() {
	rootCmd.Flags().StringVar(&sampleFile, "sample", "", "optional HTML file to run detection against")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fatalf("%v", err)
	}
}
