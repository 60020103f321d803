package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pageza/foodies/backend/config"
	"github.com/pageza/foodies/backend/internal/database"
	"github.com/pageza/foodies/backend/internal/logging"
	"github.com/pageza/foodies/backend/internal/middleware"
	"github.com/pageza/foodies/backend/internal/models"
	"github.com/pageza/foodies/backend/internal/service"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	demoPassword = "testpassword123"
	tokenTTL     = 30 * 24 * time.Hour
)

var demoUsers = []struct {
	name  string
	email string
}{
	{"John Doe", "john.doe@example.com"},
	{"Jane Smith", "jane.smith@example.com"},
	{"Bob Wilson", "bob.wilson@example.com"},
}

var categories = []string{"Beef", "Breakfast", "Chicken", "Dessert", "Pasta", "Seafood", "Vegetarian"}

var areas = []string{"British", "French", "Italian", "Japanese", "Mexican"}

var ingredients = []string{"Beef", "Butter", "Chicken", "Eggs", "Flour", "Garlic", "Milk", "Olive Oil", "Rice", "Salmon", "Sugar", "Tomatoes"}

type demoRecipe struct {
	title        string
	owner        int
	category     string
	area         string
	time         int
	instructions string
	measures     map[string]string
	favoritedBy  []int
}

var recipes = []demoRecipe{
	{
		title: "Spaghetti al pomodoro", owner: 0, category: "Pasta", area: "Italian", time: 25,
		instructions: "Simmer the tomatoes with garlic and olive oil, then toss with the pasta.",
		measures:     map[string]string{"Tomatoes": "400g", "Garlic": "2 cloves", "Olive Oil": "3 tbsp"},
		favoritedBy:  []int{1, 2},
	},
	{
		title: "Crepes", owner: 1, category: "Dessert", area: "French", time: 30,
		instructions: "Whisk flour, eggs and milk into a thin batter and cook in a hot buttered pan.",
		measures:     map[string]string{"Flour": "125g", "Eggs": "2", "Milk": "250ml", "Butter": "20g", "Sugar": "1 tbsp"},
		favoritedBy:  []int{0},
	},
	{
		title: "Teriyaki salmon", owner: 2, category: "Seafood", area: "Japanese", time: 20,
		instructions: "Glaze the salmon with sugar and soy and grill until caramelised. Serve with rice.",
		measures:     map[string]string{"Salmon": "2 fillets", "Sugar": "1 tbsp", "Rice": "150g"},
		favoritedBy:  []int{0, 1},
	},
	{
		title: "Full English", owner: 0, category: "Breakfast", area: "British", time: 15,
		instructions: "Fry the eggs in butter and serve with grilled tomatoes.",
		measures:     map[string]string{"Eggs": "2", "Butter": "10g", "Tomatoes": "1"},
	},
	{
		title: "Chicken tinga", owner: 1, category: "Chicken", area: "Mexican", time: 45,
		instructions: "Poach the chicken, shred it and simmer in a garlic tomato sauce.",
		measures:     map[string]string{"Chicken": "500g", "Tomatoes": "300g", "Garlic": "3 cloves"},
		favoritedBy:  []int{2},
	},
}

var testimonials = []struct {
	author int
	text   string
}{
	{0, "Found a new weeknight favourite in the first five minutes."},
	{1, "Sharing my family crepe recipe here was easier than writing it on a card."},
	{2, "The ingredient filters make it simple to cook with what is already in the fridge."},
}

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("seed failed")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, cfg.MigrationDir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return seed(context.Background(), db, middleware.NewJWTValidator(cfg.JWTSecret))
}

func seed(ctx context.Context, db *gorm.DB, tokens *middleware.JWTValidator) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	users := make([]models.User, len(demoUsers))
	for i, d := range demoUsers {
		u := models.User{
			Name:         d.name,
			Email:        d.email,
			PasswordHash: string(hash),
			Avatar:       fmt.Sprintf("https://i.pravatar.cc/150?u=%s", d.email),
		}
		if err := db.Where(models.User{Email: d.email}).FirstOrCreate(&u).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", d.email, err)
		}

		// The session check only accepts the token stored on the user.
		token, err := tokens.GenerateToken(u.ID, tokenTTL)
		if err != nil {
			return err
		}
		if err := db.Model(&u).Update("token", token).Error; err != nil {
			return fmt.Errorf("failed to store token for %s: %w", d.email, err)
		}
		users[i] = u
		logging.Info().Uint("id", u.ID).Str("email", u.Email).Str("token", token).Msg("demo user ready")
	}

	categoryIDs := make(map[string]uint, len(categories))
	for _, name := range categories {
		c := models.Category{Name: name}
		if err := db.Where(models.Category{Name: name}).FirstOrCreate(&c).Error; err != nil {
			return fmt.Errorf("failed to create category %s: %w", name, err)
		}
		categoryIDs[name] = c.ID
	}

	areaIDs := make(map[string]uint, len(areas))
	for _, name := range areas {
		a := models.Area{Name: name}
		if err := db.Where(models.Area{Name: name}).FirstOrCreate(&a).Error; err != nil {
			return fmt.Errorf("failed to create area %s: %w", name, err)
		}
		areaIDs[name] = a.ID
	}

	ingredientIDs := make(map[string]uint, len(ingredients))
	for _, name := range ingredients {
		ing := models.Ingredient{Name: name}
		if err := db.Where(models.Ingredient{Name: name}).FirstOrCreate(&ing).Error; err != nil {
			return fmt.Errorf("failed to create ingredient %s: %w", name, err)
		}
		ingredientIDs[name] = ing.ID
	}

	commands := service.NewRecipeCommandService(db, nil)
	favorites := service.NewFavoriteService(db)

	for _, r := range recipes {
		owner := users[r.owner]

		var existing int64
		if err := db.Model(&models.Recipe{}).Where("title = ? AND owner_id = ?", r.title, owner.ID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			logging.Info().Str("title", r.title).Msg("recipe already exists, skipping")
			continue
		}

		in := service.CreateRecipeInput{
			Title:        r.title,
			Description:  fmt.Sprintf("%s by %s", r.title, owner.Name),
			Instructions: r.instructions,
			Time:         &r.time,
			CategoryID:   categoryIDs[r.category],
		}
		if id, ok := areaIDs[r.area]; ok {
			in.AreaID = &id
		}
		for name, measure := range r.measures {
			in.Ingredients = append(in.Ingredients, service.IngredientMeasure{IngredientID: ingredientIDs[name], Measure: measure})
		}

		recipe, err := commands.CreateRecipe(ctx, owner.ID, in, "")
		if err != nil {
			return fmt.Errorf("failed to create recipe %q: %w", r.title, err)
		}
		for _, idx := range r.favoritedBy {
			if _, err := favorites.AddFavorite(ctx, users[idx].ID, recipe.ID); err != nil && !errors.Is(err, service.ErrConflict) {
				return fmt.Errorf("failed to favorite %q: %w", r.title, err)
			}
		}
		logging.Info().Uint("id", recipe.ID).Str("title", recipe.Title).Msg("created recipe")
	}

	for _, tm := range testimonials {
		owner := users[tm.author]
		t := models.Testimonial{OwnerID: &owner.ID, Testimonial: tm.text}
		if err := db.Omit("Owner").Where(models.Testimonial{OwnerID: &owner.ID, Testimonial: tm.text}).FirstOrCreate(&t).Error; err != nil {
			return fmt.Errorf("failed to create testimonial for %s: %w", owner.Email, err)
		}
	}

	logging.Info().Str("password", demoPassword).Msg("seed complete")
	return nil
}
