// Package cassandra provides feeddetector.Store backed by Apache Cassandra,
// storing one row per detection run and a secondary index of recently
// detected urls for the console's landing page.
package cassandra

import (
	"encoding/json"
	"fmt"

	"github.com/alecthomas/log4go"
	"github.com/gocql/gocql"

	feeddetector "github.com/webos-goodies/feed-detector"
)

// recentBucket is the single partition recent_detections writes into. A
// production deployment at real scale would bucket by day or hour to keep
// the partition bounded; feed-detector's console only ever needs "recent",
// so one partition (capped by a LIMIT on read) is enough.
const recentBucket = 0

// Datastore is the feeddetector.Store implementation backed by Cassandra.
// NewDatastore should be used to create one.
type Datastore struct {
	cf *gocql.ClusterConfig
	db *gocql.Session
}

// NewDatastore creates a Cassandra session and returns a ready Datastore.
func NewDatastore() (*Datastore, error) {
	cf := GetConfig()
	db, err := cf.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create cassandra datastore: %v", err)
	}
	return &Datastore{cf: cf, db: db}, nil
}

// Close releases the underlying Cassandra session.
func (ds *Datastore) Close() {
	ds.db.Close()
}

// PutDetection implements feeddetector.Store.
func (ds *Datastore) PutDetection(url string, detectedAt int64, groups []*feeddetector.EntryGroup) error {
	encoded, err := encodeGroups(groups)
	if err != nil {
		return fmt.Errorf("cassandra: encoding groups for %v: %v", url, err)
	}

	if err := ds.db.Query(
		`INSERT INTO detections (url, detected_at, groups_json) VALUES (?, ?, ?)`,
		url, detectedAt, encoded,
	).Exec(); err != nil {
		return fmt.Errorf("cassandra: inserting detection for %v: %v", url, err)
	}

	if err := ds.db.Query(
		`INSERT INTO recent_detections (bucket, detected_at, url) VALUES (?, ?, ?)`,
		recentBucket, detectedAt, url,
	).Exec(); err != nil {
		log4go.Error("cassandra: failed to index recent detection for %v: %v", url, err)
	}

	return nil
}

// RecentDetections implements feeddetector.Store.
func (ds *Datastore) RecentDetections(limit int) ([]feeddetector.StoredDetection, error) {
	iter := ds.db.Query(
		`SELECT url, detected_at FROM recent_detections WHERE bucket = ? LIMIT ?`,
		recentBucket, limit,
	).Iter()

	var out []feeddetector.StoredDetection
	var url string
	var detectedAt int64
	for iter.Scan(&url, &detectedAt) {
		out = append(out, feeddetector.StoredDetection{URL: url, DetectedAt: detectedAt})
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("cassandra: reading recent detections: %v", err)
	}

	for i, d := range out {
		groups, err := ds.getGroups(d.URL, d.DetectedAt)
		if err != nil {
			log4go.Error("cassandra: failed to load groups for %v@%v: %v", d.URL, d.DetectedAt, err)
			continue
		}
		out[i].Groups = groups
	}
	return out, nil
}

func (ds *Datastore) getGroups(url string, detectedAt int64) ([]*feeddetector.EntryGroup, error) {
	var encoded string
	if err := ds.db.Query(
		`SELECT groups_json FROM detections WHERE url = ? AND detected_at = ?`,
		url, detectedAt,
	).Scan(&encoded); err != nil {
		return nil, err
	}
	return decodeGroups(encoded)
}

// jsonEntry and jsonGroup mirror just enough of feeddetector.Entry and
// feeddetector.EntryGroup to round-trip through storage; the full Entry
// (its Element, Paths, etc.) is not persisted, since only the url/title and
// group-level scores have any use once detection has already run.
type jsonEntry struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Score int    `json:"score"`
}

type jsonGroup struct {
	Score    float64     `json:"score"`
	CBGScore float64     `json:"cbg_score"`
	Entries  []jsonEntry `json:"entries"`
}

func encodeGroups(groups []*feeddetector.EntryGroup) (string, error) {
	out := make([]jsonGroup, 0, len(groups))
	for _, g := range groups {
		jg := jsonGroup{Score: g.Score, CBGScore: g.CBGScore}
		for _, e := range g.Entries {
			jg.Entries = append(jg.Entries, jsonEntry{URL: e.URL, Title: e.Title, Score: e.Score})
		}
		out = append(out, jg)
	}
	data, err := json.Marshal(out)
	return string(data), err
}

func decodeGroups(encoded string) ([]*feeddetector.EntryGroup, error) {
	var jgroups []jsonGroup
	if err := json.Unmarshal([]byte(encoded), &jgroups); err != nil {
		return nil, err
	}
	out := make([]*feeddetector.EntryGroup, 0, len(jgroups))
	for _, jg := range jgroups {
		g := &feeddetector.EntryGroup{Score: jg.Score, CBGScore: jg.CBGScore, URLSet: map[string]bool{}}
		for _, je := range jg.Entries {
			g.Entries = append(g.Entries, &feeddetector.Entry{URL: je.URL, Title: je.Title, Score: je.Score})
			if je.URL != "" {
				g.URLSet[je.URL] = true
			}
		}
		out = append(out, g)
	}
	return out, nil
}
