package feeddetector

// Element is an opaque view over a node in a parsed HTML tree. The detector
// mutates attributes only: it writes the reserved "_fd_" scratch attributes
// (UIDAttr, IndexAttr, TableAttr), removes repeated id attributes, and
// rewrites the class attribute of list items and table rows. Implementations
// normalize Tag() to lowercase; all other string values are returned
// verbatim.
//
// Callers must not set, remove, or otherwise rely on attributes whose name
// starts with "_fd_" — that namespace is reserved for the detector's own
// bookkeeping during a run.
type Element interface {
	// Tag returns the element's tag name, lowercased.
	Tag() string

	// Attr returns the named attribute's value and whether it was present.
	Attr(name string) (string, bool)

	// SetAttr sets (overwriting if present) the named attribute.
	SetAttr(name, value string)

	// RemoveAttr removes the named attribute, if present.
	RemoveAttr(name string)

	// Children returns the element's direct element children, in document
	// order. Text and comment nodes are not included.
	Children() []Element

	// Parent returns the element's parent and whether it has one. The
	// document root has no parent.
	Parent() (Element, bool)

	// Descendants returns every descendant element with the given tag name,
	// in document order. An empty tag matches every descendant.
	Descendants(tag string) []Element

	// Ancestors returns the element's ancestor chain, nearest first, up to
	// (and including) the document root.
	Ancestors() []Element

	// Text concatenates the text content of the element and all of its
	// descendants, in document order.
	Text() string
}

// Document is a parsed, cleansed HTML tree handed to the detector. The core
// never fetches, decodes, or sanitises HTML itself — that is the job of the
// external collaborators in internal/fetch.
type Document interface {
	// Root returns the document's root element (typically <html>).
	Root() Element
}

// Scratch attribute names reserved by the detector. Implementations of
// Element and callers of the detector must not read or write these except
// through the detector itself.
const (
	UIDAttr   = "_fd_uid_"
	IndexAttr = "_fd_index_"
	TableAttr = "_fd_table_"
)

// ResultHandler receives the outcome of detecting feed-like groups on one
// document. Implementations should not block the caller for long; a batch
// run may call HandleResult from multiple goroutines, one per document.
type ResultHandler interface {
	HandleResult(url string, groups []*EntryGroup, err error)
}

// Store defines the interface for persisting detection results so a batch
// run's output can be reviewed without re-running detection. Nothing in the
// core depends on Store; it exists for the ambient store/cassandra and
// console packages.
type Store interface {
	// PutDetection persists the groups detected for url at detectedAt.
	PutDetection(url string, detectedAt int64, groups []*EntryGroup) error

	// RecentDetections returns up to limit of the most recently stored
	// results, newest first.
	RecentDetections(limit int) ([]StoredDetection, error)
}

// StoredDetection is one row previously persisted via Store.PutDetection.
type StoredDetection struct {
	URL        string
	DetectedAt int64
	Groups     []*EntryGroup
}
