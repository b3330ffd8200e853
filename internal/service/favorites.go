package service

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/dtroode/healthyrecipe-client/internal/logger"
	"github.com/dtroode/healthyrecipe-client/internal/model"
)

// RecipeResolver maps recipe ids to catalog entries.
type RecipeResolver interface {
	Resolve(ids []int64) []model.Recipe
}

// FavoritesLedger tracks the favorite state of recipes for the signed-in
// user. Toggles are applied optimistically and settled or rolled back when
// the server answers.
type FavoritesLedger struct {
	api      model.FavoriteAPI
	sessions AuthSession
	catalog  RecipeResolver
	metrics  model.Metrics
	logger   *logger.Logger

	mu         sync.Mutex
	entries    map[int64]model.FavoriteStatus
	known      map[int64]model.Recipe
	inflight   map[int64]*pendingToggle
	generation uint64
	loadSeq    uint64
}

// pendingToggle is a request in flight for one recipe. prev and had hold
// the entry to restore on failure; a load replaces them with the fetched
// state.
type pendingToggle struct {
	status model.FavoriteStatus
	prev   model.FavoriteStatus
	had    bool
}

func NewFavoritesLedger(
	api model.FavoriteAPI,
	sessions AuthSession,
	catalog RecipeResolver,
	metrics model.Metrics,
	logger *logger.Logger,
) *FavoritesLedger {
	if metrics == nil {
		metrics = model.NoopMetrics{}
	}
	return &FavoritesLedger{
		api:      api,
		sessions: sessions,
		catalog:  catalog,
		metrics:  metrics,
		logger:   logger,
		entries:  make(map[int64]model.FavoriteStatus),
		known:    make(map[int64]model.Recipe),
		inflight: make(map[int64]*pendingToggle),
	}
}

// Toggle flips the favorite state of a recipe and returns the settled
// state. A failed request restores the entry to what it was before the
// toggle, or to what a load fetched meanwhile, and returns a
// *model.SyncError. Only one request per recipe is in flight at a time.
func (l *FavoritesLedger) Toggle(ctx context.Context, recipeID int64) (bool, error) {
	authCtx, sess, epoch := l.sessions.AuthContext(ctx)
	if !sess.Authenticated() {
		return false, &model.AuthError{Message: "Please log in to manage favorites", Err: model.ErrNoSession}
	}

	l.mu.Lock()
	if p, busy := l.inflight[recipeID]; busy {
		l.mu.Unlock()
		l.metrics.FavoriteToggle(model.ToggleConflict)
		return p.status.Favorite(), &model.ConflictError{RecipeID: recipeID}
	}

	prev, had := l.entries[recipeID]
	adding := !(had && prev == model.FavoriteConfirmed)
	p := &pendingToggle{status: model.FavoritePendingRemove, prev: prev, had: had}
	if adding {
		p.status = model.FavoritePendingAdd
	}
	l.entries[recipeID] = p.status
	l.inflight[recipeID] = p
	generation := l.generation
	l.mu.Unlock()

	var err error
	if adding {
		err = l.api.AddFavorite(authCtx, recipeID)
	} else {
		err = l.api.RemoveFavorite(authCtx, recipeID)
	}

	l.mu.Lock()
	if l.generation != generation || l.sessions.Epoch() != epoch {
		if l.inflight[recipeID] == p {
			delete(l.inflight, recipeID)
		}
		l.mu.Unlock()
		l.logger.Info("Favorites service: discarding stale toggle", "recipe_id", recipeID)
		l.metrics.FavoriteToggle(model.ToggleDiscarded)
		return false, model.ErrSessionChanged
	}
	delete(l.inflight, recipeID)

	if err != nil {
		if p.had {
			l.entries[recipeID] = p.prev
		} else {
			delete(l.entries, recipeID)
		}
		favorite := p.had && p.prev.Favorite()
		l.mu.Unlock()

		l.logger.Warn("Favorites service: toggle rolled back",
			"recipe_id", recipeID,
			"adding", adding,
			"error", err.Error())
		l.metrics.FavoriteToggle(model.ToggleRolledBack)
		return favorite, &model.SyncError{RecipeID: recipeID, Err: err}
	}

	if adding {
		l.entries[recipeID] = model.FavoriteConfirmed
	} else {
		delete(l.entries, recipeID)
		delete(l.known, recipeID)
	}
	l.mu.Unlock()

	l.logger.Debug("Favorites service: toggle settled",
		"recipe_id", recipeID,
		"favorite", adding)
	l.metrics.FavoriteToggle(model.ToggleSettled)
	return adding, nil
}

// Load replaces the ledger with the server's favorites. Recipes with a
// toggle in flight keep their pending entry; the toggle settles against
// the fetched state.
func (l *FavoritesLedger) Load(ctx context.Context) error {
	authCtx, sess, epoch := l.sessions.AuthContext(ctx)
	if !sess.Authenticated() {
		return &model.AuthError{Message: "Please log in to view favorites", Err: model.ErrNoSession}
	}

	l.mu.Lock()
	l.loadSeq++
	seq := l.loadSeq
	l.mu.Unlock()

	list, err := l.api.ListFavorites(authCtx)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.sessions.Epoch() != epoch {
		return model.ErrSessionChanged
	}
	if l.loadSeq != seq {
		// A newer load owns the ledger.
		return nil
	}
	if err != nil {
		l.logger.Warn("Favorites service: load failed, keeping local ledger", "error", err.Error())
		return err
	}

	entries := make(map[int64]model.FavoriteStatus, len(list))
	known := make(map[int64]model.Recipe, len(list))
	for _, r := range list {
		entries[r.ID] = model.FavoriteConfirmed
		known[r.ID] = r.Clone()
	}
	for id, p := range l.inflight {
		p.prev, p.had = entries[id]
		entries[id] = p.status
	}
	l.entries = entries
	l.known = known

	l.logger.Debug("Favorites service: loaded", "count", len(entries), "in_flight", len(l.inflight))
	return nil
}

// IsFavorite reports whether the recipe reads as favorited, pending adds
// included.
func (l *FavoritesLedger) IsFavorite(recipeID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	status, ok := l.entries[recipeID]
	return ok && status.Favorite()
}

// Entries returns the ledger ordered by recipe id.
func (l *FavoritesLedger) Entries() []model.FavoriteEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]model.FavoriteEntry, 0, len(l.entries))
	for _, id := range slices.Sorted(maps.Keys(l.entries)) {
		out = append(out, model.FavoriteEntry{RecipeID: id, Status: l.entries[id]})
	}
	return out
}

// IDs returns the ids that read as favorited, ascending.
func (l *FavoritesLedger) IDs() []int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.idsLocked()
}

func (l *FavoritesLedger) idsLocked() []int64 {
	ids := make([]int64, 0, len(l.entries))
	for id, status := range l.entries {
		if status.Favorite() {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Recipes resolves the favorites against the catalog. Recipes the catalog
// does not hold fall back to the copies returned by the last load.
func (l *FavoritesLedger) Recipes() []model.Recipe {
	l.mu.Lock()
	ids := l.idsLocked()
	known := maps.Clone(l.known)
	l.mu.Unlock()

	resolved := make(map[int64]model.Recipe, len(ids))
	if l.catalog != nil {
		for _, r := range l.catalog.Resolve(ids) {
			resolved[r.ID] = r
		}
	}

	out := make([]model.Recipe, 0, len(ids))
	for _, id := range ids {
		if r, ok := resolved[id]; ok {
			out = append(out, r)
		} else if r, ok := known[id]; ok {
			out = append(out, r.Clone())
		}
	}
	return out
}

// Clear empties the ledger. Toggles and loads still in flight are discarded.
func (l *FavoritesLedger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = make(map[int64]model.FavoriteStatus)
	l.known = make(map[int64]model.Recipe)
	l.inflight = make(map[int64]*pendingToggle)
	l.generation++
	l.loadSeq++
}

// OnSessionEvent clears the ledger whenever the identity changes.
func (l *FavoritesLedger) OnSessionEvent(ev model.SessionEvent) {
	if ev.IdentityChanged() {
		l.Clear()
	}
}
