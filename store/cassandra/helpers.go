package cassandra

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/gocql/gocql"

	feeddetector "github.com/webos-goodies/feed-detector"
)

// GetConfig builds a *gocql.ClusterConfig from feeddetector.Config.Cassandra.
func GetConfig() *gocql.ClusterConfig {
	timeout, err := time.ParseDuration(feeddetector.Config.Cassandra.Timeout)
	if err != nil {
		// This shouldn't happen; assertConfigInvariants already validated it.
		panic(err)
	}

	config := gocql.NewCluster(feeddetector.Config.Cassandra.Hosts...)
	config.Keyspace = feeddetector.Config.Cassandra.Keyspace
	config.Timeout = timeout
	config.Consistency = gocql.Quorum
	return config
}

// GetSchema returns the CQL schema for this version of the cassandra store.
// Keyspace and replication factor come from feeddetector.Config.Cassandra.
func GetSchema() string {
	t := template.Must(template.New("schema").Parse(schemaTemplate))
	var buf bytes.Buffer
	if err := t.Execute(&buf, feeddetector.Config.Cassandra); err != nil {
		panic(err)
	}
	return buf.String()
}

// CreateSchema creates the detection-history schema in the configured
// Cassandra cluster. It requires that the keyspace not already exist.
func CreateSchema() error {
	config := GetConfig()
	config.Keyspace = ""
	db, err := config.CreateSession()
	if err != nil {
		return fmt.Errorf("could not connect to create cassandra schema: %v", err)
	}
	defer db.Close()

	schema := GetSchema()
	for _, q := range strings.Split(schema, ";") {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		if err := db.Query(q).Exec(); err != nil {
			return fmt.Errorf("failed to create schema: %v\nstatement:\n%v", err, q)
		}
	}
	return nil
}
