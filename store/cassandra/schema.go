package cassandra

const schemaTemplate string = `-- The schema for feed-detector's detection history
--
-- This file is generated from a Go template so the keyspace and replication
-- factor can be configured (particularly for testing purposes).
CREATE KEYSPACE {{.Keyspace}}
WITH REPLICATION = { 'class': 'SimpleStrategy', 'replication_factor': {{.ReplicationFactor}} };

-- detections stores one row per (url, detected_at) detection run, so the
-- console can show how a page's feed regions have changed over time.
CREATE TABLE {{.Keyspace}}.detections (
	-- the url that was submitted for detection, as given (before redirects)
	url text,

	-- unix seconds at which this detection ran
	detected_at bigint,

	-- the ranked EntryGroups, serialized as JSON (see store/cassandra's
	-- encodeGroups); Cassandra has no native nested-record collection type
	-- that fits a variable number of variable-length entries well, so the
	-- groups are kept opaque to CQL and decoded at read time instead.
	groups_json text,

	PRIMARY KEY (url, detected_at)
) WITH CLUSTERING ORDER BY (detected_at DESC);

-- recent_detections indexes the most recently detected urls, independent of
-- which url they are, so the console's landing page can list recent
-- activity without a full table scan.
CREATE TABLE {{.Keyspace}}.recent_detections (
	bucket int,
	detected_at bigint,
	url text,
	PRIMARY KEY (bucket, detected_at, url)
) WITH CLUSTERING ORDER BY (detected_at DESC);
`
