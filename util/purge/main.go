// Command purge deletes detection history rows older than a cutoff from
// the configured Cassandra store, so the console's history doesn't grow
// without bound.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gocql/gocql"
	"github.com/spf13/cobra"

	feeddetector "github.com/webos-goodies/feed-detector"
	"github.com/webos-goodies/feed-detector/store/cassandra"
)

var configPath string
var olderThan string

var rootCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete detection history older than --older-than (default 720h)",
	Run: func(cmd *cobra.Command, args []string) {
		if configPath != "" {
			if err := feeddetector.ReadConfigFile(configPath); err != nil {
				fatalf("reading config: %v", err)
			}
		}

		cutoffAge, err := time.ParseDuration(olderThan)
		if err != nil {
			fatalf("bad --older-than duration %q: %v", olderThan, err)
		}
		cutoff := time.Now().Add(-cutoffAge).Unix()

		cf := cassandra.GetConfig()
		session, err := cf.CreateSession()
		if err != nil {
			fatalf("connecting to cassandra: %v", err)
		}
		defer session.Close()

		if err := purgeOlderThan(session, cutoff); err != nil {
			fatalf("purge failed: %v", err)
		}
	},
}

func purgeOlderThan(session *gocql.Session, cutoff int64) error {
	iter := session.Query(`SELECT url, detected_at FROM detections`).Iter()

	var url string
	var detectedAt int64
	var purged int
	for iter.Scan(&url, &detectedAt) {
		if detectedAt >= cutoff {
			continue
		}
		if err := session.Query(
			`DELETE FROM detections WHERE url = ? AND detected_at = ?`,
			url, detectedAt,
		).Exec(); err != nil {
			return fmt.Errorf("deleting %v@%v: %v", url, detectedAt, err)
		}
		if err := session.Query(
			`DELETE FROM recent_detections WHERE bucket = 0 AND detected_at = ? AND url = ?`,
			detectedAt, url,
		).Exec(); err != nil {
			return fmt.Errorf("deindexing %v@%v: %v", url, detectedAt, err)
		}
		purged++
	}
	if err := iter.Close(); err != nil {
		return err
	}
	fmt.Printf("purged %d detection rows older than %v\n", purged, time.Unix(cutoff, 0))
	return nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to feeddetect.yaml")
	rootCmd.Flags().StringVar(&olderThan, "older-than", "720h", "delete detections older than this duration")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fatalf("%v", err)
	}
}
