package cassandra

import (
	"strings"
	"testing"

	"github.com/gocql/gocql"

	feeddetector "github.com/webos-goodies/feed-detector"
)

func TestGetSchemaRendersKeyspaceAndReplicationFactor(t *testing.T) {
	feeddetector.Config.Cassandra.Keyspace = "testks"
	feeddetector.Config.Cassandra.ReplicationFactor = 2

	schema := GetSchema()
	if !strings.Contains(schema, "CREATE KEYSPACE testks") {
		t.Errorf("expected rendered schema to reference the configured keyspace, got:\n%v", schema)
	}
	if !strings.Contains(schema, "'replication_factor': 2") {
		t.Errorf("expected rendered schema to reference the configured replication factor, got:\n%v", schema)
	}
	if !strings.Contains(schema, "testks.detections") {
		t.Errorf("expected the detections table to be namespaced under the keyspace")
	}
	if !strings.Contains(schema, "testks.recent_detections") {
		t.Errorf("expected the recent_detections table to be namespaced under the keyspace")
	}
}

func TestGetConfigPopulatesClusterConfig(t *testing.T) {
	feeddetector.Config.Cassandra.Hosts = []string{"host-a", "host-b"}
	feeddetector.Config.Cassandra.Keyspace = "testks"
	feeddetector.Config.Cassandra.Timeout = "3s"

	cf := GetConfig()
	if cf.Keyspace != "testks" {
		t.Errorf("expected keyspace testks, got %v", cf.Keyspace)
	}
	if cf.Consistency != gocql.Quorum {
		t.Errorf("expected Quorum consistency, got %v", cf.Consistency)
	}
	if len(cf.Hosts) != 2 || cf.Hosts[0] != "host-a" {
		t.Errorf("expected hosts [host-a host-b], got %v", cf.Hosts)
	}
}
