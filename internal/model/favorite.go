package model

import "context"

// FavoriteStatus tracks a ledger entry through an optimistic toggle.
type FavoriteStatus int

const (
	FavoriteConfirmed FavoriteStatus = iota
	FavoritePendingAdd
	FavoritePendingRemove
)

// String returns a human-readable status.
func (s FavoriteStatus) String() string {
	switch s {
	case FavoriteConfirmed:
		return "confirmed"
	case FavoritePendingAdd:
		return "pending-add"
	case FavoritePendingRemove:
		return "pending-remove"
	default:
		return "unknown"
	}
}

// Favorite reports whether the status reads as favorited.
func (s FavoriteStatus) Favorite() bool {
	return s == FavoriteConfirmed || s == FavoritePendingAdd
}

// Pending reports whether a request is in flight for the entry.
func (s FavoriteStatus) Pending() bool {
	return s == FavoritePendingAdd || s == FavoritePendingRemove
}

// FavoriteEntry is one ledger row keyed by recipe ID.
type FavoriteEntry struct {
	RecipeID int64
	Status   FavoriteStatus
}

// FavoriteAPI is the server boundary for favorites.
type FavoriteAPI interface {
	ListFavorites(ctx context.Context) ([]Recipe, error)
	AddFavorite(ctx context.Context, recipeID int64) error
	RemoveFavorite(ctx context.Context, recipeID int64) error
}
