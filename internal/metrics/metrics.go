// Package metrics provides application-level counters using stdlib expvar.
// Counters are exported on the /debug/vars endpoint of the serve mode.
package metrics

import "expvar"

// Operation counters.
var (
	RowsRead       = expvar.NewInt("liftlog_rows_read_total")
	RowsRejected   = expvar.NewInt("liftlog_rows_rejected_total")
	SnapshotsBuilt = expvar.NewInt("liftlog_snapshots_built_total")
	APIRequests    = expvar.NewInt("liftlog_api_requests_total")
)

// Inc increments the given counter by 1.
func Inc(counter *expvar.Int) { counter.Add(1) }
