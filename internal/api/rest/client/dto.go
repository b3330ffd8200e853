package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dtroode/healthyrecipe-client/internal/model"
)

// timestampLayouts are tried in order; the server emits zone-less local
// date-times.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// timestamp decodes RFC 3339 and zone-less date-times.
type timestamp struct {
	time.Time
}

func (t *timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to decode timestamp: %w", err)
	}
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp %q", s)
}

// ingredientDTO is either a plain line or an ingredient object.
type ingredientDTO string

func (i *ingredientDTO) UnmarshalJSON(data []byte) error {
	var line string
	if err := json.Unmarshal(data, &line); err == nil {
		*i = ingredientDTO(strings.TrimSpace(line))
		return nil
	}

	var obj struct {
		Name     string   `json:"name"`
		Quantity *float64 `json:"quantity"`
		Unit     string   `json:"unit"`
		Notes    string   `json:"notes"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("failed to decode ingredient: %w", err)
	}

	parts := make([]string, 0, 3)
	if obj.Quantity != nil && *obj.Quantity > 0 {
		parts = append(parts, strconv.FormatFloat(*obj.Quantity, 'f', -1, 64))
	}
	if obj.Unit != "" {
		parts = append(parts, obj.Unit)
	}
	parts = append(parts, obj.Name)
	line = strings.Join(parts, " ")
	if obj.Notes != "" {
		line += ", " + obj.Notes
	}
	*i = ingredientDTO(strings.TrimSpace(line))
	return nil
}

// instructionsDTO is either a list of steps or one newline-separated string.
type instructionsDTO []string

func (s *instructionsDTO) UnmarshalJSON(data []byte) error {
	var steps []string
	if err := json.Unmarshal(data, &steps); err == nil {
		*s = steps
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("failed to decode instructions: %w", err)
	}
	*s = splitSteps(text)
	return nil
}

func splitSteps(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

type nutritionDTO struct {
	Calories      int     `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbs         float64 `json:"carbs"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
}

type recipeDTO struct {
	ID              int64           `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	CookingTime     int             `json:"cookingTime"`
	Servings        int             `json:"servings"`
	Difficulty      string          `json:"difficulty"`
	DifficultyLevel string          `json:"difficultyLevel"`
	Category        string          `json:"category"`
	Categories      []string        `json:"categories"`
	Rating          *float64        `json:"rating"`
	AverageRating   *float64        `json:"averageRating"`
	RatingCount     *int            `json:"ratingCount"`
	TotalRatings    *int            `json:"totalRatings"`
	Ingredients     []ingredientDTO `json:"ingredients"`
	Instructions    instructionsDTO `json:"instructions"`
	NutritionInfo   *nutritionDTO   `json:"nutritionInfo"`
	Calories        *int            `json:"calories"`
	Protein         *float64        `json:"protein"`
	Carbohydrates   *float64        `json:"carbohydrates"`
	Fat             *float64        `json:"fat"`
	CreatedAt       timestamp       `json:"createdAt"`
	Status          string          `json:"status"`
}

func (d recipeDTO) toModel() model.Recipe {
	r := model.Recipe{
		ID:           d.ID,
		Title:        d.Title,
		Description:  d.Description,
		CookingTime:  d.CookingTime,
		Servings:     d.Servings,
		Difficulty:   firstNonEmpty(d.Difficulty, d.DifficultyLevel),
		Category:     d.Category,
		Instructions: []string(d.Instructions),
		CreatedAt:    d.CreatedAt.Time,
		Status:       model.RecipeStatus(strings.ToUpper(d.Status)),
	}
	if r.Category == "" && len(d.Categories) > 0 {
		r.Category = d.Categories[0]
	}

	switch {
	case d.Rating != nil:
		r.Rating = *d.Rating
	case d.AverageRating != nil:
		r.Rating = *d.AverageRating
	}
	switch {
	case d.RatingCount != nil:
		r.RatingCount = *d.RatingCount
	case d.TotalRatings != nil:
		r.RatingCount = *d.TotalRatings
	}

	if len(d.Ingredients) > 0 {
		r.Ingredients = make([]string, 0, len(d.Ingredients))
		for _, ing := range d.Ingredients {
			r.Ingredients = append(r.Ingredients, string(ing))
		}
	}

	r.NutritionInfo = d.nutrition()
	return r
}

func (d recipeDTO) nutrition() *model.NutritionInfo {
	if n := d.NutritionInfo; n != nil {
		carbs := n.Carbs
		if carbs == 0 {
			carbs = n.Carbohydrates
		}
		return &model.NutritionInfo{Calories: n.Calories, Protein: n.Protein, Carbs: carbs, Fat: n.Fat}
	}
	if d.Calories == nil && d.Protein == nil && d.Carbohydrates == nil && d.Fat == nil {
		return nil
	}

	n := &model.NutritionInfo{}
	if d.Calories != nil {
		n.Calories = *d.Calories
	}
	if d.Protein != nil {
		n.Protein = *d.Protein
	}
	if d.Carbohydrates != nil {
		n.Carbs = *d.Carbohydrates
	}
	if d.Fat != nil {
		n.Fat = *d.Fat
	}
	return n
}

// recipeList accepts a bare array or a page object with a content array.
type recipeList []recipeDTO

func (l *recipeList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		var items []recipeDTO
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}

	var page struct {
		Content []recipeDTO `json:"content"`
	}
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return err
	}
	*l = page.Content
	return nil
}

func (l recipeList) toModel() []model.Recipe {
	out := make([]model.Recipe, 0, len(l))
	for _, d := range l {
		out = append(out, d.toModel())
	}
	return out
}

// profileDTO covers both the sign-in response and the validate response.
type profileDTO struct {
	Token     string   `json:"token"`
	ID        int64    `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Role      string   `json:"role"`
	Roles     []string `json:"roles"`
}

// role returns the reported role, RoleAnonymous when none was reported.
func (d profileDTO) role() model.Role {
	switch {
	case len(d.Roles) > 0:
		return model.RoleFromList(d.Roles)
	case d.Role != "":
		return model.ParseRole(d.Role)
	default:
		return model.RoleAnonymous
	}
}

func (d profileDTO) toModel() model.Profile {
	return model.Profile{
		ID:        d.ID,
		Username:  d.Username,
		Email:     d.Email,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Role:      d.role(),
	}
}

type userDTO struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Roles     []string  `json:"roles"`
	Status    string    `json:"status"`
	CreatedAt timestamp `json:"createdAt"`
}

func (d userDTO) toModel() model.UserRecord {
	role := model.ParseRole(d.Role)
	if len(d.Roles) > 0 {
		role = model.RoleFromList(d.Roles)
	}
	return model.UserRecord{
		ID:        d.ID,
		Username:  d.Username,
		Email:     d.Email,
		Role:      role,
		Status:    d.Status,
		CreatedAt: d.CreatedAt.Time,
	}
}

// userList accepts a bare array or a page object with a content array.
type userList []userDTO

func (l *userList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		var items []userDTO
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}

	var page struct {
		Content []userDTO `json:"content"`
	}
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return err
	}
	*l = page.Content
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
