// Package catalog reconciles extracted candidate records against the
// persistent game catalog, one run at a time.
package catalog

// Entry is a {name, url} candidate record. The JSON field names match the
// artifact format consumed downstream.
type Entry struct {
	Name string `json:"Name"`
	URL  string `json:"Url"`
}

// Result reports what one synchronization run did to the catalog.
type Result struct {
	// RunID of the run record created for this invocation.
	RunID int64
	// FirstRun is true when the catalog was empty before this run. First-run
	// discoveries seed the baseline and are never reported as deltas.
	FirstRun bool
	// Observed is the size of the candidate batch, including candidates that
	// were skipped for having an empty URL.
	Observed int
	// NewEntries are the candidates whose catalog entry was created during a
	// non-first run, in input order. Empty on a first run by definition.
	NewEntries []Entry
}
