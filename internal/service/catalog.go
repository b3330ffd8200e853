package service

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dtroode/healthyrecipe-client/internal/demo"
	"github.com/dtroode/healthyrecipe-client/internal/logger"
	"github.com/dtroode/healthyrecipe-client/internal/model"
)

const orderingCacheSize = 64

// AuthSession is the part of SessionStore that request-issuing services use.
type AuthSession interface {
	model.SessionReader
	AuthContext(ctx context.Context) (context.Context, model.Session, uint64)
}

var _ AuthSession = (*SessionStore)(nil)

type orderingKey struct {
	version uint64
	filter  model.FilterSpec
	search  string
	sort    model.SortKey
}

// CatalogCache holds the recipe collection and the derived catalog view.
type CatalogCache struct {
	recipes  model.RecipeAPI
	sessions AuthSession
	demoMode bool
	metrics  model.Metrics
	logger   *logger.Logger

	mu        sync.Mutex
	all       []model.Recipe
	source    model.DataSource
	degraded  bool
	version   uint64
	filter    model.FilterSpec
	search    string
	sort      model.SortKey
	page      int
	orderings *lru.Cache[orderingKey, []int]
	collator  *collate.Collator
}

func NewCatalogCache(
	recipes model.RecipeAPI,
	sessions AuthSession,
	demoMode bool,
	metrics model.Metrics,
	logger *logger.Logger,
) (*CatalogCache, error) {
	if metrics == nil {
		metrics = model.NoopMetrics{}
	}
	orderings, err := lru.New[orderingKey, []int](orderingCacheSize)
	if err != nil {
		return nil, err
	}
	c := &CatalogCache{
		recipes:   recipes,
		sessions:  sessions,
		demoMode:  demoMode,
		metrics:   metrics,
		logger:    logger,
		source:    model.SourceEmpty,
		page:      1,
		orderings: orderings,
		collator:  collate.New(language.English, collate.IgnoreCase),
	}
	c.installPublicLocked()
	return c, nil
}

// Load fetches the collection for the current session. Authenticated
// sessions read the live catalog; anonymous ones get the public source.
// Failures degrade to the collection already shown, then to the demo data
// when demo mode is on.
func (c *CatalogCache) Load(ctx context.Context) model.LoadReport {
	authCtx, sess, epoch := c.sessions.AuthContext(ctx)
	if !sess.Authenticated() {
		c.mu.Lock()
		c.installPublicLocked()
		report := c.reportLocked(nil)
		c.mu.Unlock()

		c.metrics.CatalogLoad(report.Source, report.Degraded)
		return report
	}

	list, err := c.recipes.ListRecipes(authCtx)

	c.mu.Lock()
	if c.sessions.Epoch() != epoch {
		report := c.reportLocked(model.ErrSessionChanged)
		c.mu.Unlock()
		c.logger.Info("Catalog service: discarding stale load")
		return report
	}

	if err == nil {
		c.installLocked(model.CloneRecipes(list), model.SourceLive, false)
		report := c.reportLocked(nil)
		c.mu.Unlock()

		c.logger.Debug("Catalog service: loaded", "count", report.Count)
		c.metrics.CatalogLoad(report.Source, report.Degraded)
		return report
	}

	switch {
	case len(c.all) > 0:
		if c.source == model.SourceLive {
			c.source = model.SourceLastGood
		}
		c.degraded = true
	case c.demoMode:
		c.installLocked(demo.Recipes(), model.SourceDemo, true)
	default:
		c.installLocked(nil, model.SourceEmpty, true)
	}
	report := c.reportLocked(err)
	c.mu.Unlock()

	c.logger.Warn("Catalog service: load failed, serving degraded catalog",
		"source", string(report.Source),
		"count", report.Count,
		"error", err.Error())
	c.metrics.CatalogLoad(report.Source, report.Degraded)
	return report
}

// OnSessionEvent switches to the public source as soon as the session is
// cleared.
func (c *CatalogCache) OnSessionEvent(ev model.SessionEvent) {
	if ev.Kind != model.SessionCleared {
		return
	}
	c.mu.Lock()
	c.installPublicLocked()
	c.mu.Unlock()
}

// ApplyFilter sets the filter and returns the first page.
func (c *CatalogCache) ApplyFilter(f model.FilterSpec) model.CatalogView {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.filter = normalizeFilter(f)
	c.page = 1
	return c.viewLocked()
}

// ApplySort sets the ordering and returns the first page.
func (c *CatalogCache) ApplySort(key model.SortKey) model.CatalogView {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sort = key
	c.page = 1
	return c.viewLocked()
}

// Search sets the search term and returns the first page. The term is
// trimmed and lowercased once.
func (c *CatalogCache) Search(term string) model.CatalogView {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.search = strings.ToLower(strings.TrimSpace(term))
	c.page = 1
	return c.viewLocked()
}

// Page moves to page n, clamped to the available pages.
func (c *CatalogCache) Page(n int) model.CatalogView {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.page = n
	return c.viewLocked()
}

// View returns the current page.
func (c *CatalogCache) View() model.CatalogView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// Resolve returns the recipes for ids in the given order, skipping unknown
// ids.
func (c *CatalogCache) Resolve(ids []int64) []model.Recipe {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]model.Recipe, 0, len(ids))
	for _, id := range ids {
		if i := c.indexLocked(id); i >= 0 {
			out = append(out, c.all[i].Clone())
		}
	}
	return out
}

// Get returns the recipe with the given id.
func (c *CatalogCache) Get(id int64) (model.Recipe, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexLocked(id)
	if i < 0 {
		return model.Recipe{}, false
	}
	return c.all[i].Clone(), true
}

// Replace swaps an existing entry for r. Unknown recipes are not inserted.
func (c *CatalogCache) Replace(r model.Recipe) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.replaceLocked(r)
}

func (c *CatalogCache) replaceLocked(r model.Recipe) bool {
	i := c.indexLocked(r.ID)
	if i < 0 {
		return false
	}
	next := slices.Clone(c.all)
	next[i] = r.Clone()
	c.all = next
	c.version++
	return true
}

// Refresh re-fetches one recipe and replaces it in the collection.
func (c *CatalogCache) Refresh(ctx context.Context, id int64) (model.Recipe, error) {
	authCtx, _, epoch := c.sessions.AuthContext(ctx)

	r, err := c.recipes.GetRecipe(authCtx, id)
	if err != nil {
		return model.Recipe{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sessions.Epoch() != epoch {
		return model.Recipe{}, model.ErrSessionChanged
	}
	c.replaceLocked(r)
	return r, nil
}

func (c *CatalogCache) installPublicLocked() {
	if c.demoMode {
		c.installLocked(demo.Recipes(), model.SourceDemo, false)
		return
	}
	c.installLocked(nil, model.SourceEmpty, false)
}

func (c *CatalogCache) installLocked(all []model.Recipe, source model.DataSource, degraded bool) {
	c.all = all
	c.source = source
	c.degraded = degraded
	c.version++
}

func (c *CatalogCache) reportLocked(err error) model.LoadReport {
	return model.LoadReport{
		Source:   c.source,
		Degraded: c.degraded,
		Count:    len(c.all),
		Err:      err,
	}
}

func (c *CatalogCache) indexLocked(id int64) int {
	return slices.IndexFunc(c.all, func(r model.Recipe) bool { return r.ID == id })
}

func (c *CatalogCache) viewLocked() model.CatalogView {
	order := c.orderingLocked()

	totalPages := max(1, (len(order)+model.PageSize-1)/model.PageSize)
	c.page = min(max(c.page, 1), totalPages)

	start := (c.page - 1) * model.PageSize
	end := min(start+model.PageSize, len(order))

	page := make([]model.Recipe, 0, end-start)
	for _, i := range order[start:end] {
		page = append(page, c.all[i].Clone())
	}

	return model.CatalogView{
		Filter:     c.filter,
		Search:     c.search,
		Sort:       c.sort,
		Page:       c.page,
		PageSize:   model.PageSize,
		TotalCount: len(order),
		TotalPages: totalPages,
		Source:     c.source,
		Degraded:   c.degraded,
		Recipes:    page,
	}
}

// orderingLocked returns indexes into c.all that pass the filter and search,
// in display order.
func (c *CatalogCache) orderingLocked() []int {
	key := orderingKey{version: c.version, filter: c.filter, search: c.search, sort: c.sort}
	if order, ok := c.orderings.Get(key); ok {
		return order
	}

	order := make([]int, 0, len(c.all))
	for i, r := range c.all {
		if matchesFilter(r, c.filter) && matchesSearch(r, c.search) {
			order = append(order, i)
		}
	}

	if cmpFn := c.compareFunc(c.sort); cmpFn != nil {
		slices.SortStableFunc(order, func(a, b int) int {
			return cmpFn(c.all[a], c.all[b])
		})
	}

	c.orderings.Add(key, order)
	return order
}

func (c *CatalogCache) compareFunc(key model.SortKey) func(a, b model.Recipe) int {
	switch key {
	case model.SortRating:
		return func(a, b model.Recipe) int { return cmp.Compare(b.Rating, a.Rating) }
	case model.SortTime:
		return func(a, b model.Recipe) int { return cmp.Compare(a.CookingTime, b.CookingTime) }
	case model.SortNewest:
		return func(a, b model.Recipe) int { return b.CreatedAt.Compare(a.CreatedAt) }
	case model.SortName:
		return func(a, b model.Recipe) int { return c.collator.CompareString(a.Title, b.Title) }
	default:
		return nil
	}
}

func normalizeFilter(f model.FilterSpec) model.FilterSpec {
	return model.FilterSpec{
		Category:   normalizeCriterion(f.Category),
		Difficulty: normalizeCriterion(f.Difficulty),
	}
}

func normalizeCriterion(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}

func matchesFilter(r model.Recipe, f model.FilterSpec) bool {
	if f.Category != "" && !strings.EqualFold(r.Category, f.Category) {
		return false
	}
	if f.Difficulty != "" && !strings.EqualFold(r.Difficulty, f.Difficulty) {
		return false
	}
	return true
}

func matchesSearch(r model.Recipe, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.Title), term) ||
		strings.Contains(strings.ToLower(r.Description), term) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing), term) {
			return true
		}
	}
	return false
}
