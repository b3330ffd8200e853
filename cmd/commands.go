package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/dtroode/healthyrecipe-client/internal/app"
	"github.com/dtroode/healthyrecipe-client/internal/model"
)

type runFunc func(ctx context.Context, a *app.App, args []string, out io.Writer) error

type command struct {
	name    string
	usage   string
	summary string
	// setup registers the command flags and returns its runner.
	setup func(fs *pflag.FlagSet) runFunc
}

var commands = []command{
	{name: "signin", usage: "signin --username NAME --password PASS", summary: "Sign in and store the session", setup: signInCommand},
	{name: "signup", usage: "signup --username NAME --email EMAIL --password PASS --confirm PASS [--role USER|CHEF]", summary: "Create an account", setup: signUpCommand},
	{name: "logout", usage: "logout", summary: "Forget the stored session", setup: logoutCommand},
	{name: "whoami", usage: "whoami", summary: "Show the signed-in user and capabilities", setup: whoamiCommand},
	{name: "recipes", usage: "recipes [--category C] [--difficulty D] [--search TERM] [--sort KEY] [--page N]", summary: "Browse the catalog", setup: recipesCommand},
	{name: "show", usage: "show ID", summary: "Show one recipe", setup: showCommand},
	{name: "favorite", usage: "favorite ID", summary: "Toggle a favorite", setup: favoriteCommand},
	{name: "favorites", usage: "favorites", summary: "List favorites", setup: favoritesCommand},
	{name: "rate", usage: "rate ID STARS [--comment TEXT]", summary: "Rate a recipe from 1 to 5", setup: rateCommand},
	{name: "submit", usage: "submit --file draft.json", summary: "Submit a recipe for approval", setup: submitCommand},
	{name: "profile", usage: "profile [--username NAME --email EMAIL] [--password PASS --confirm PASS]", summary: "Show or update the profile", setup: profileCommand},
	{name: "users", usage: "users", summary: "List users (admin)", setup: usersCommand},
	{name: "pending", usage: "pending", summary: "List recipes awaiting approval (admin)", setup: pendingCommand},
	{name: "approve", usage: "approve ID", summary: "Approve a pending recipe (admin)", setup: moderateCommand(true)},
	{name: "reject", usage: "reject ID", summary: "Reject a pending recipe (admin)", setup: moderateCommand(false)},
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: healthyrecipe <command> [flags]")
	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range commands {
		fmt.Fprintf(tw, "  %s\t%s\n", c.name, c.summary)
	}
	fmt.Fprintf(tw, "  %s\t%s\n", "version", "Print build information")
	tw.Flush()
}

func printCommandUsage(w io.Writer, c command, fs *pflag.FlagSet) {
	fmt.Fprintf(w, "Usage: healthyrecipe %s\n\n%s\n", c.usage, c.summary)
	if fs.HasFlags() {
		fmt.Fprintln(w)
		fmt.Fprint(w, fs.FlagUsages())
	}
}

func parseID(args []string, pos int) (int64, error) {
	if len(args) <= pos {
		return 0, &model.ValidationError{Field: "id", Message: "recipe id is required"}
	}
	id, err := strconv.ParseInt(args[pos], 10, 64)
	if err != nil || id <= 0 {
		return 0, &model.ValidationError{Field: "id", Message: fmt.Sprintf("invalid recipe id %q", args[pos])}
	}
	return id, nil
}

func signInCommand(fs *pflag.FlagSet) runFunc {
	username := fs.StringP("username", "u", "", "account username")
	password := fs.StringP("password", "p", "", "account password")

	return func(ctx context.Context, a *app.App, args []string, out io.Writer) error {
		sess, report, err := a.SignIn(ctx, *username, *password)
		if err != nil {
			return err
		}
		profile, _ := sess.Profile()
		fmt.Fprintf(out, "Welcome back, %s! (%s)\n", profile.DisplayName(), sess.Role())
		fmt.Fprintf(out, "%d recipes available (%s)\n", report.Count, report.Source)
		return nil
	}
}

func signUpCommand(fs *pflag.FlagSet) runFunc {
	var reg model.Registration
	fs.StringVar(&reg.Username, "username", "", "account username")
	fs.StringVar(&reg.Email, "email", "", "email address")
	fs.StringVar(&reg.Password, "password", "", "password")
	fs.StringVar(&reg.ConfirmPassword, "confirm", "", "password confirmation")
	fs.StringVar(&reg.FirstName, "first-name", "", "first name")
	fs.StringVar(&reg.LastName, "last-name", "", "last name")
	role := fs.String("role", "USER", "USER or CHEF")

	return func(ctx context.Context, a *app.App, args []string, out io.Writer) error {
		reg.Role = model.ParseRole(*role)
		if err := a.Sessions.SignUp(ctx, reg); err != nil {
			return err
		}
		fmt.Fprintln(out, "Registration successful! Please sign in.")
		return nil
	}
}

func logoutCommand(fs *pflag.FlagSet) runFunc {
	return func(ctx context.Context, a *app.App, args []string, out io.Writer) error {
		if err := a.Sessions.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "Logged out.")
		return nil
	}
}

func whoamiCommand(fs *pflag.FlagSet) runFunc {
	return func(ctx context.Context, a *app.App, args []string, out io.Writer) error {
		profile, ok := a.Sessions.Current().Profile()
		if !ok {
			fmt.Fprintln(out, "Not signed in.")
		} else {
			fmt.Fprintf(out, "%s <%s> %s\n", profile.Username, profile.Email, profile.Role)
		}
		fmt.Fprintf(out, "capabilities: %s\n", a.Gate.Current())
		return nil
	}
}

func recipesCommand(fs *pflag.FlagSet) runFunc {
	var filter model.FilterSpec
	fs.StringVar(&filter.Category, "category", "", "category filter (all for none)")
	fs.StringVar(&filter.Difficulty, "difficulty", "", "difficulty filter (all for none)")
	search := fs.String("search", "", "search title, description and ingredients")
	sortFlag := fs.String("sort", "", "rating, time, newest or name")
	page := fs.Int("page", 1, "page number")

	return func(ctx context.Context, a *app.App, args []string, out io.Writer) error {
		key, err := model.ParseSortKey(*sortFlag)
		if err != nil {
			return err
		}

		a.Catalog.ApplyFilter(filter)
		a.Catalog.Search(*search)
		a.Catalog.ApplySort(key)
		view := a.Catalog.Page(*page)

		printRecipes(out, view.Recipes, a.Favorites.IsFavorite)

		status := string(view.Source)
		if view.Degraded {
			status += ", degraded"
		}
		fmt.Fprintf(out, "page %d/%d, %d recipes (%s)\n", view.Page, view.TotalPages, view.TotalCount, status)
		return nil
	}
}

func printRecipes(out io.Writer, recipes []model.Recipe, isFavorite func(int64) bool) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tDIFFICULTY\tTIME\tRATING\tFAV")
	for _, r := range recipes {
		fav := ""
		if isFavorite != nil && isFavorite(r.ID) {
			fav = "*"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%dm\t%.1f (%d)\t%s\n",
			r.ID, r.Title, r.Category, r.Difficulty, r.CookingTime, r.Rating, r.RatingCount, fav)
	}
	tw.Flush()
}

func showCommand(fs *pflag.FlagSet) runFunc {
	return func(ctx context.Context, a *app.App, args []string, out io.Writer) error {
		id, err := parseID(args, 0)
		if err != nil {
			return err
		}

		recipe, ok := a.Catalog.Get(id)
		if a.Sessions.Current().Authenticated() {
			if fresh, err := a.Catalog.Refresh(ctx, id); err == nil {
				recipe, ok = fresh, true
			}
		}
		if !ok {
			return &model.ValidationError{Field: "id", Message: fmt.Sprintf("recipe %d not found", id), Err: model.ErrNotFound}
		}

		fmt.Fprintf(out, "%s\n%s\n\n", recipe.Title, recipe.Description)
		fmt.Fprintf(out, "%s · %s · %d min · serves %d · %.1f stars (%d)\n",
			recipe.Category, recipe.Difficulty, recipe.CookingTime, recipe.Servings, recipe.Rating, recipe.RatingCount)
		if n := recipe.NutritionInfo; n != nil {
			fmt.Fprintf(out, "%d kcal · protein %.0fg · carbs %.0fg · fat %.0fg\n", n.Calories, n.Protein, n.Carbs, n.Fat)
		}
		fmt.Fprintln(out, "\nIngredients:")
		for _, ing := range recipe.Ingredients {
			fmt.Fprintf(out, "  - %s\n", ing)
		}
		fmt.Fprintln(out, "\nInstructions:")
		for i, step := range recipe.Instructions {
			fmt.Fprintf(out, "  %d. %s\n", i+1, step)
		}
		return nil
	}
}

func favoriteCommand(fs *pflag.FlagSet) runFunc {
	return func(ctx context.Context, a *app.App, args []string, out io.Writer) error {
		id, err := parseID(args, 0)
		if err != nil {
			return err
		}
		favorite, err := a.Favorites.Toggle(ctx, id)
		if err != nil {
			return err
		}
		if favorite {
			fmt.Fprintf(out, "Added recipe %d to favorites.\n", id)
		} else {
			fmt.Fprintf(out, "Removed recipe %d from favorites.\n", id)
		}
		return nil
	}
}

func favoritesCommand(fs *pflag.FlagSet) runFunc {
	return func(ctx context.Context, a *app.App, args []string, out io.Writer) error {
		if err := a.Gate.Require(model.CapViewFavorites); err != nil {
			return err
		}
		recipes := a.Favorites.Recipes()
		if len(recipes) == 0 {
			fmt.Fprintln(out, "No favorite recipes yet.")
			return nil
		}
		printRecipes(out, recipes, nil)
		return nil
	}
}

func rateCommand(fs *pflag.FlagSet) runFunc {
	comment := fs.String("comment", "", "optional review text")

	return func(ctx context.Context, a *app.App, args []string, out io.Writer) error {
		id, err := parseID(args, 0)
		if err != nil {
			return err
		}
		if len(args) < 2 {
			return &model.ValidationError{Field: "rating", Message: "star rating is required"}
		}
		stars, err := strconv.Atoi(args[1])
		if err != nil {
			return &model.ValidationError{Field: "rating", Message: fmt.Sprintf("invalid star rating %q", args[1])}
		}

		if _, err := a.Ratings.Rate(ctx, id, stars, *comment); err != nil {
			return err
		}
		fmt.Fprintf(out, "Rated recipe %d with %d stars.\n", id, stars)
		return nil
	}
}

func submitCommand(fs *pflag.FlagSet) runFunc {
	file := fs.StringP("file", "f", "", "recipe draft JSON file")

	return func(ctx context.Context, a *app.App, args []string, out io.Writer) error {
		if *file == "" {
			return &model.ValidationError{Field: "file", Message: "--file is required"}
		}
		raw, err := os.ReadFile(*file)
		if err != nil {
			return fmt.Errorf("failed to read draft: %w", err)
		}
		var draft model.RecipeDraft
		if err := json.Unmarshal(raw, &draft); err != nil {
			return &model.ValidationError{Field: "file", Message: "draft is not valid JSON", Err: err}
		}

		recipe, err := a.Submissions.Submit(ctx, draft)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Recipe %d submitted for approval (%s).\n", recipe.ID, recipe.Status)
		return nil
	}
}

func profileCommand(fs *pflag.FlagSet) runFunc {
	var update model.ProfileUpdate
	fs.StringVar(&update.Username, "username", "", "new username")
	fs.StringVar(&update.Email, "email", "", "new email")
	fs.StringVar(&update.Password, "password", "", "new password")
	fs.StringVar(&update.ConfirmPassword, "confirm", "", "new password confirmation")

	return func(ctx context.Context, a *app.App, args []string, out io.Writer) error {
		if err := a.Gate.Require(model.CapViewProfile); err != nil {
			return err
		}
		current, _ := a.Sessions.Current().Profile()

		if fs.NFlag() > 0 {
			if update.Username == "" {
				update.Username = current.Username
			}
			if update.Email == "" {
				update.Email = current.Email
			}
			updated, err := a.Sessions.UpdateProfile(ctx, update)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "Profile updated.")
			current = updated
		}

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "username\t%s\n", current.Username)
		fmt.Fprintf(tw, "email\t%s\n", current.Email)
		fmt.Fprintf(tw, "name\t%s\n", strings.TrimSpace(current.FirstName+" "+current.LastName))
		fmt.Fprintf(tw, "role\t%s\n", current.Role)
		return tw.Flush()
	}
}

func usersCommand(fs *pflag.FlagSet) runFunc {
	return func(ctx context.Context, a *app.App, args []string, out io.Writer) error {
		report, err := a.Admin.Users(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tROLE")
		for _, u := range report.Users {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.Role)
		}
		tw.Flush()
		if report.Degraded {
			fmt.Fprintln(out, "(showing demo users: the user list is unavailable)")
		}
		return nil
	}
}

func pendingCommand(fs *pflag.FlagSet) runFunc {
	return func(ctx context.Context, a *app.App, args []string, out io.Writer) error {
		recipes, err := a.Admin.PendingRecipes(ctx)
		if err != nil {
			return err
		}
		if len(recipes) == 0 {
			fmt.Fprintln(out, "No recipes awaiting approval.")
			return nil
		}
		printRecipes(out, recipes, nil)
		return nil
	}
}

func moderateCommand(approve bool) func(fs *pflag.FlagSet) runFunc {
	return func(fs *pflag.FlagSet) runFunc {
		return func(ctx context.Context, a *app.App, args []string, out io.Writer) error {
			id, err := parseID(args, 0)
			if err != nil {
				return err
			}

			moderate := a.Admin.Reject
			if approve {
				moderate = a.Admin.Approve
			}
			recipe, err := moderate(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Recipe %d is now %s.\n", id, recipe.Status)
			return nil
		}
	}
}
