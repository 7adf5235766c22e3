// Package metrics provides application-level counters using stdlib expvar.
// Counters are automatically exported on the /debug/vars HTTP endpoint when
// the API server is running.
package metrics

import "expvar"

// Operation counters.
var (
	PersonsAdded    = expvar.NewInt("knotbook_persons_added_total")
	PersonsEdited   = expvar.NewInt("knotbook_persons_edited_total")
	PersonsDeleted  = expvar.NewInt("knotbook_persons_deleted_total")
	WeddingsAdded   = expvar.NewInt("knotbook_weddings_added_total")
	WeddingsEdited  = expvar.NewInt("knotbook_weddings_edited_total")
	WeddingsDeleted = expvar.NewInt("knotbook_weddings_deleted_total")
	EditSyncs       = expvar.NewInt("knotbook_participant_edit_syncs_total")
	TagSeverances   = expvar.NewInt("knotbook_participant_tag_severances_total")
)

// Inc increments the given counter by 1.
func Inc(counter *expvar.Int) { counter.Add(1) }
