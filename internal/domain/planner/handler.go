package planner

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"pet-plates/internal/domain/pets"
	"pet-plates/internal/middleware"
	"pet-plates/internal/recipes"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// RegisterRoutes monta la generación. limiter (puede ser nil) aplica solo a los POST de generación.
func RegisterRoutes(r chi.Router, svc *Service, limiter *rate.Limiter) {
	limited := r.With(middleware.RateLimit(limiter))

	limited.Post("/pets/{petID}/recipes/generate", generateForPetHandler(svc))
	r.Get("/pets/{petID}/recipes/suggestions", suggestionsHandler(svc))

	// Sin cuenta: el perfil viaja en el body
	limited.Post("/recipes/generate", generateAnonymousHandler(svc))
}

type generateOptionsRequest struct {
	BudgetPerMeal  float64 `json:"budget_per_meal" validate:"gte=0,lte=1000"`
	TargetCalories float64 `json:"target_calories" validate:"gte=0,lte=20000"`
	Count          int     `json:"count" validate:"gte=0,lte=50"`
	Best           *bool   `json:"best"` // default true
	Seed           *uint64 `json:"seed"`
}

// generateRequest es el cuerpo de POST /pets/{petID}/recipes/generate. Todo es opcional.
type generateRequest struct {
	generateOptionsRequest
}

type petProfileRequest struct {
	Name                string   `json:"name" validate:"max=80"`
	Species             string   `json:"species" validate:"required" enums:"dog,cat,bird,reptile,pocket-pet"`
	WeightKg            float64  `json:"weight_kg" validate:"gt=0,lte=1000"`
	LifeStage           string   `json:"life_stage"`
	HealthConcerns      []string `json:"health_concerns" validate:"max=20,dive,max=60"`
	Allergies           []string `json:"allergies" validate:"max=40,dive,max=60"`
	BannedIngredients   []string `json:"banned_ingredients" validate:"max=40,dive,max=60"`
	DietaryRestrictions []string `json:"dietary_restrictions" validate:"max=20,dive,max=60"`
}

// anonymousGenerateRequest trae el perfil inline.
type anonymousGenerateRequest struct {
	Pet petProfileRequest `json:"pet" validate:"required"`
	generateOptionsRequest
}

func (o generateOptionsRequest) toOptions() GenerateOptions {
	best := true
	if o.Best != nil {
		best = *o.Best
	}
	return GenerateOptions{
		BudgetPerMeal:  o.BudgetPerMeal,
		TargetCalories: o.TargetCalories,
		Count:          o.Count,
		Best:           best,
		Seed:           o.Seed,
	}
}

// generateForPetHandler godoc
// @Summary Generar recetas para una mascota
// @Description Genera una receta (la mejor de varios intentos por defecto) o un lote con `count`. Evita repetir ingredientes de las comidas recientes. El resultado queda como sugerencia de la mascota. Dueño o cuidador con recipes:generate.
// @Tags recipes
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param payload body generateRequest false "Opciones de generación"
// @Success 200 {object} Batch
// @Failure 400 {string} string "invalid json / validación"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Failure 422 {string} string "no recipe could be assembled"
// @Failure 429 {string} string "rate limit exceeded"
// @Router /pets/{petID}/recipes/generate [post]
func generateForPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// body vacío => defaults
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, validationMessage(err), http.StatusBadRequest)
			return
		}

		b, err := svc.GenerateForPet(r.Context(), chi.URLParam(r, "petID"), claims.UserID, req.toOptions())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

// suggestionsHandler godoc
// @Summary Últimas sugerencias de una mascota
// @Description Devuelve el último lote generado para la mascota mientras siga en cache.
// @Tags recipes
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} Batch
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found / no suggestions"
// @Router /pets/{petID}/recipes/suggestions [get]
func suggestionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		b, err := svc.Suggestions(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

// generateAnonymousHandler godoc
// @Summary Generar recetas sin cuenta
// @Description Igual que la generación por mascota pero con el perfil en el body. No guarda sugerencias.
// @Tags recipes
// @Accept json
// @Produce json
// @Param payload body anonymousGenerateRequest true "Perfil y opciones"
// @Success 200 {object} Batch
// @Failure 400 {string} string "invalid json / validación / especie no soportada"
// @Failure 422 {string} string "no recipe could be assembled"
// @Failure 429 {string} string "rate limit exceeded"
// @Router /recipes/generate [post]
func generateAnonymousHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req anonymousGenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, validationMessage(err), http.StatusBadRequest)
			return
		}

		p := req.Pet
		b, err := svc.GenerateAnonymous(r.Context(), recipes.PetProfile{
			Name:                p.Name,
			Species:             p.Species,
			WeightKg:            p.WeightKg,
			LifeStage:           p.LifeStage,
			HealthConcerns:      p.HealthConcerns,
			Allergies:           p.Allergies,
			BannedIngredients:   p.BannedIngredients,
			DietaryRestrictions: p.DietaryRestrictions,
		}, req.toOptions())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid input"
	}
	fe := verrs[0]
	return "invalid input: " + strings.ToLower(fe.Field()) + " failed " + fe.Tag()
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, recipes.ErrInvalidInput),
		errors.Is(err, recipes.ErrInvalidWeight),
		errors.Is(err, recipes.ErrInvalidCount),
		errors.Is(err, recipes.ErrUnsupportedSpecies):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, pets.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, pets.ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, ErrNoSuggestions):
		http.Error(w, "no suggestions for this pet", http.StatusNotFound)
	case errors.Is(err, ErrNoRecipe):
		http.Error(w, "no recipe could be assembled with these restrictions; try relaxing allergies or bans", http.StatusUnprocessableEntity)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
