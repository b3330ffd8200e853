package model

// Metrics records state engine events.
type Metrics interface {
	SessionTransition(kind SessionEventKind)
	CatalogLoad(source DataSource, degraded bool)
	FavoriteToggle(outcome string)
}

// Favorite toggle outcomes.
const (
	ToggleSettled    = "settled"
	ToggleRolledBack = "rolled_back"
	ToggleConflict   = "conflict"
	ToggleDiscarded  = "discarded"
)

// NoopMetrics discards every event.
type NoopMetrics struct{}

func (NoopMetrics) SessionTransition(SessionEventKind) {}
func (NoopMetrics) CatalogLoad(DataSource, bool) {}
func (NoopMetrics) FavoriteToggle(string) {}
