package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	restctx "github.com/dtroode/healthyrecipe-client/internal/api/rest/context"
	"github.com/dtroode/healthyrecipe-client/internal/model"
	"github.com/dtroode/healthyrecipe-client/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *restctx.Manager) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cm := restctx.NewManager()
	c, err := New(srv.URL, srv.Client().Transport, 5*time.Second, cm, testutil.MakeNoopLogger())
	require.NoError(t, err)
	return c, cm
}

func TestNew_InvalidBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
	}{
		{name: "unsupported scheme", baseURL: "ftp://recipes.local"},
		{name: "unparsable", baseURL: "http://[::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.baseURL, nil, time.Second, restctx.NewManager(), testutil.MakeNoopLogger())
			assert.Error(t, err)
		})
	}
}

func TestClient_SignIn(t *testing.T) {
	t.Run("chef sign in", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/auth/signin", r.URL.Path)

			var body signInRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "chef_mary", body.Username)
			assert.Equal(t, "secret1", body.Password)

			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"token":"jwt-1","type":"Bearer","id":7,"username":"chef_mary","email":"mary@example.com","firstName":"Mary","lastName":"Cook","roles":["CHEF"]}`)
		})

		res, err := c.SignIn(context.Background(), "chef_mary", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "jwt-1", res.Token)
		assert.Equal(t, int64(7), res.Profile.ID)
		assert.Equal(t, "Mary", res.Profile.FirstName)
		assert.Equal(t, model.RoleChef, res.Profile.Role)
	})

	t.Run("missing roles default to user", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"token":"jwt-2","id":1,"username":"john_doe"}`)
		})

		res, err := c.SignIn(context.Background(), "john_doe", "password")
		require.NoError(t, err)
		assert.Equal(t, model.RoleUser, res.Profile.Role)
	})

	t.Run("bad credentials", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, "Error: Invalid username or password!")
		})

		_, err := c.SignIn(context.Background(), "john_doe", "wrong")
		var authErr *model.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "Error: Invalid username or password!", authErr.Message)
	})

	t.Run("missing token", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"username":"john_doe"}`)
		})

		_, err := c.SignIn(context.Background(), "john_doe", "password")
		var authErr *model.AuthError
		assert.ErrorAs(t, err, &authErr)
	})
}

func TestClient_SignUp(t *testing.T) {
	t.Run("success sends role list", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			var body signUpRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, []string{"CHEF"}, body.Role)
			assert.Equal(t, "new_chef", body.Username)
			_, _ = io.WriteString(w, "User registered successfully!")
		})

		err := c.SignUp(context.Background(), model.Registration{Username: "new_chef", Password: "secret1", Role: model.RoleChef})
		assert.NoError(t, err)
	})

	t.Run("default role", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			var body signUpRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, []string{"USER"}, body.Role)
		})

		assert.NoError(t, c.SignUp(context.Background(), model.Registration{Username: "u"}))
	})

	t.Run("server rejection is a validation error", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"message":"Error: Username is already taken!"}`)
		})

		err := c.SignUp(context.Background(), model.Registration{Username: "john_doe"})
		var vErr *model.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "Error: Username is already taken!", vErr.Message)
	})

	t.Run("server failure", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		err := c.SignUp(context.Background(), model.Registration{Username: "john_doe"})
		var sErr *model.ServerError
		require.ErrorAs(t, err, &sErr)
		assert.Equal(t, http.StatusInternalServerError, sErr.Status)
	})
}

func TestClient_Validate(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantRole model.Role
	}{
		{name: "role string", body: `{"id":3,"username":"admin","role":"ADMIN"}`, wantRole: model.RoleAdmin},
		{name: "role list", body: `{"id":3,"username":"admin","roles":["ROLE_CHEF"]}`, wantRole: model.RoleChef},
		{name: "no role reported", body: `{"id":3,"username":"admin"}`, wantRole: model.RoleAnonymous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, cm := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
				_, _ = io.WriteString(w, tt.body)
			})

			p, err := c.Validate(cm.SetTokenToContext(context.Background(), "tok"))
			require.NoError(t, err)
			assert.Equal(t, int64(3), p.ID)
			assert.Equal(t, tt.wantRole, p.Role)
		})
	}
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			check: func(t *testing.T, err error) {
				var e *model.AuthError
				assert.ErrorAs(t, err, &e)
			},
		},
		{
			name:   "forbidden",
			status: http.StatusForbidden,
			check: func(t *testing.T, err error) {
				var e *model.AuthError
				assert.ErrorAs(t, err, &e)
			},
		},
		{
			name:   "not found",
			status: http.StatusNotFound,
			check: func(t *testing.T, err error) {
				var e *model.ValidationError
				assert.ErrorAs(t, err, &e)
				assert.ErrorIs(t, err, model.ErrNotFound)
			},
		},
		{
			name:   "conflict",
			status: http.StatusConflict,
			check: func(t *testing.T, err error) {
				var e *model.ConflictError
				assert.ErrorAs(t, err, &e)
			},
		},
		{
			name:   "bad request",
			status: http.StatusBadRequest,
			check: func(t *testing.T, err error) {
				var e *model.ValidationError
				assert.ErrorAs(t, err, &e)
			},
		},
		{
			name:   "bad gateway",
			status: http.StatusBadGateway,
			check: func(t *testing.T, err error) {
				var e *model.ServerError
				require.ErrorAs(t, err, &e)
				assert.Equal(t, http.StatusBadGateway, e.Status)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			err := c.AddFavorite(context.Background(), 42)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url, nil, time.Second, restctx.NewManager(), testutil.MakeNoopLogger())
	require.NoError(t, err)

	_, err = c.ListRecipes(context.Background())
	var netErr *model.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "GET /api/recipes", netErr.Op)
}

func TestClient_ListRecipes(t *testing.T) {
	t.Run("server entity shape", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `[{
				"id": 5,
				"title": "Lentil Soup",
				"description": "Warm",
				"instructions": "Rinse lentils\n\n  Simmer 30 minutes \n",
				"cookingTime": 30,
				"servings": 4,
				"difficultyLevel": "EASY",
				"categories": ["VEGETARIAN", "SOUP"],
				"averageRating": 4.5,
				"totalRatings": 12,
				"nutritionInfo": {"calories": 320, "protein": 18, "carbohydrates": 40, "fat": 6},
				"ingredients": [{"name": "lentils", "quantity": 1.5, "unit": "cup"}, {"name": "salt"}],
				"createdAt": "2024-03-01T10:15:00",
				"status": "approved"
			}]`)
		})

		recipes, err := c.ListRecipes(context.Background())
		require.NoError(t, err)
		require.Len(t, recipes, 1)

		r := recipes[0]
		assert.Equal(t, int64(5), r.ID)
		assert.Equal(t, "EASY", r.Difficulty)
		assert.Equal(t, "VEGETARIAN", r.Category)
		assert.Equal(t, 4.5, r.Rating)
		assert.Equal(t, 12, r.RatingCount)
		assert.Equal(t, []string{"Rinse lentils", "Simmer 30 minutes"}, r.Instructions)
		assert.Equal(t, []string{"1.5 cup lentils", "salt"}, r.Ingredients)
		require.NotNil(t, r.NutritionInfo)
		assert.Equal(t, 40.0, r.NutritionInfo.Carbs)
		assert.Equal(t, time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC), r.CreatedAt)
		assert.Equal(t, model.RecipeStatusApproved, r.Status)
	})

	t.Run("client shape in a page", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"content":[{
				"id": 1,
				"title": "Bowl",
				"difficulty": "Easy",
				"category": "Healthy",
				"rating": 4.8,
				"ratingCount": 24,
				"ingredients": ["1 cup quinoa"],
				"instructions": ["Cook quinoa"],
				"calories": 420,
				"protein": 15,
				"createdAt": "2024-01-15T00:00:00Z"
			}],"totalElements":1}`)
		})

		recipes, err := c.ListRecipes(context.Background())
		require.NoError(t, err)
		require.Len(t, recipes, 1)
		assert.Equal(t, "Easy", recipes[0].Difficulty)
		assert.Equal(t, []string{"1 cup quinoa"}, recipes[0].Ingredients)
		require.NotNil(t, recipes[0].NutritionInfo)
		assert.Equal(t, 420, recipes[0].NutritionInfo.Calories)
	})

	t.Run("undecodable body", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"content": "nope"}`)
		})

		_, err := c.ListRecipes(context.Background())
		assert.Error(t, err)
	})
}

func TestClient_CreateRecipe(t *testing.T) {
	c, cm := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "req-1", r.Header.Get("X-Request-ID"))
		assert.Equal(t, "Bearer chef-token", r.Header.Get("Authorization"))

		var draft model.RecipeDraft
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
		assert.Equal(t, "Shakshuka", draft.Title)

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":99,"title":"Shakshuka"}`)
	})

	ctx := cm.SetTokenToContext(context.Background(), "chef-token")
	recipe, err := c.CreateRecipe(ctx, model.RecipeDraft{Title: "Shakshuka"}, "req-1")
	require.NoError(t, err)
	assert.Equal(t, int64(99), recipe.ID)
	assert.Equal(t, model.RecipeStatusPending, recipe.Status)
}

func TestClient_Favorites(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []string
	)
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.Method+" "+r.URL.Path)
		mu.Unlock()
		if r.Method == http.MethodGet {
			_, _ = io.WriteString(w, `[{"id":1,"title":"A"},{"id":2,"title":"B"}]`)
		}
	})

	ctx := context.Background()
	require.NoError(t, c.AddFavorite(ctx, 42))
	require.NoError(t, c.RemoveFavorite(ctx, 42))
	favs, err := c.ListFavorites(ctx)
	require.NoError(t, err)

	assert.Len(t, favs, 2)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"POST /api/favorites/add/42",
		"DELETE /api/favorites/remove/42",
		"GET /api/favorites",
	}, calls)
}

func TestClient_UpdateProfile(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, hasPassword := body["password"]
		assert.False(t, hasPassword)

		_, _ = io.WriteString(w, `{"username":"mary2","email":"m2@example.com"}`)
	})

	changes, err := c.UpdateProfile(context.Background(), model.ProfileUpdate{Username: "mary2", Email: "m2@example.com"})
	require.NoError(t, err)
	require.NotNil(t, changes.Username)
	assert.Equal(t, "mary2", *changes.Username)
	assert.Nil(t, changes.FirstName)
}

func TestClient_Admin(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /api/admin/users":
			_, _ = io.WriteString(w, `[{"id":1,"username":"john_doe","role":"USER","status":"ACTIVE","createdAt":"2024-01-01T00:00:00"}]`)
		case "GET /api/admin/recipes/pending":
			_, _ = io.WriteString(w, `{"content":[{"id":9,"title":"Pending","status":"PENDING"}]}`)
		case "PUT /api/admin/recipes/9/approve":
			_, _ = io.WriteString(w, `{"id":9,"status":"APPROVED"}`)
		case "PUT /api/admin/recipes/9/reject":
			_, _ = io.WriteString(w, `{"id":9,"status":"REJECTED"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	ctx := context.Background()

	users, err := c.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, model.RoleUser, users[0].Role)

	pending, err := c.PendingRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, model.RecipeStatusPending, pending[0].Status)

	approved, err := c.ApproveRecipe(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, model.RecipeStatusApproved, approved.Status)

	rejected, err := c.RejectRecipe(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, model.RecipeStatusRejected, rejected.Status)

	_, err = c.ApproveRecipe(ctx, 10)
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestClient_RateRecipe(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ratings/recipe/3", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("rating"))
		assert.Equal(t, "great dish", r.URL.Query().Get("comment"))
		_, _ = io.WriteString(w, `{"id":11,"rating":5,"comment":"great dish"}`)
	})

	rating, err := c.RateRecipe(context.Background(), 3, 5, "great dish")
	require.NoError(t, err)
	assert.Equal(t, int64(11), rating.ID)
	assert.Equal(t, int64(3), rating.RecipeID)
	assert.Equal(t, 5, rating.Stars)
}

func TestMessageFrom(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "json message", body: `{"message":"bad"}`, want: "bad"},
		{name: "json error", body: `{"error":"Unauthorized"}`, want: "Unauthorized"},
		{name: "json string", body: `"quoted"`, want: "quoted"},
		{name: "plain text", body: "  Error: nope \n", want: "Error: nope"},
		{name: "empty", body: "", want: "Bad Request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, messageFrom(http.StatusBadRequest, []byte(tt.body)))
		})
	}
}
