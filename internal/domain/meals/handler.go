package meals

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-plates/internal/domain/caretakers"
	"pet-plates/internal/domain/pets"
	"pet-plates/internal/middleware"
	"pet-plates/internal/recipes"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/meals", func(mr chi.Router) {
		mr.Post("/", createMealHandler(svc, petsSvc))
		mr.Get("/", listMealsHandler(svc, petsSvc))

		// Evalúa una comida armada a mano sin guardarla
		mr.Post("/analyze", analyzeMealHandler(svc, petsSvc))

		// Archivar: deja de contar para la variedad
		mr.Post("/{mealID}/archive", archiveMealHandler(svc, petsSvc))
	})
}

type mealIngredientRequest struct {
	IngredientID string  `json:"ingredient_id" validate:"max=80"`
	Name         string  `json:"name" validate:"max=120"`
	Amount       string  `json:"amount" validate:"max=40"`
	Grams        float64 `json:"grams" validate:"gte=0"`
}

// createMealRequest registra una comida servida; normalmente es una receta generada tal cual.
// Puntaje, kcal y costo los calcula el servidor.
type createMealRequest struct {
	RecipeID    string                  `json:"recipe_id" validate:"max=80"`
	Name        string                  `json:"name" validate:"max=200"`
	Ingredients []mealIngredientRequest `json:"ingredients" validate:"required,min=1,max=12,dive"`
	Notes       string                  `json:"notes" validate:"max=2000"`
	ServedAt    string                  `json:"served_at"` // RFC3339, opcional
}

type analyzeIngredientRequest struct {
	IngredientID string  `json:"ingredient_id" validate:"max=80"`
	Name         string  `json:"name" validate:"max=120"`
	Grams        float64 `json:"grams" validate:"gt=0,lte=10000"`
}

// analyzeMealRequest es una comida propuesta; no se guarda.
type analyzeMealRequest struct {
	Ingredients   []analyzeIngredientRequest `json:"ingredients" validate:"required,min=1,max=20,dive"`
	BudgetPerMeal float64                    `json:"budget_per_meal" validate:"gte=0,lte=1000"`
}

type mealResponse struct {
	ID            string       `json:"id"`
	PetID         string       `json:"pet_id"`
	RecipeID      string       `json:"recipe_id,omitempty"`
	Name          string       `json:"name"`
	Ingredients   []Ingredient `json:"ingredients"`
	Score         int          `json:"score"`
	EstimatedCost float64      `json:"estimated_cost"`
	Kcal          float64      `json:"kcal"`
	Notes         string       `json:"notes"`
	ServedAt      time.Time    `json:"served_at"`
	RecordedAt    time.Time    `json:"recorded_at"`
	RecordedBy    string       `json:"recorded_by"`
	Status        Status       `json:"status"`
}

// createMealHandler godoc
// @Summary Registrar comida servida
// @Description Guarda una comida servida a la mascota. Puntaje, kcal y costo se calculan con el mismo análisis que /meals/analyze. Los ingredientes de las últimas comidas activas se evitan al generar nuevas recetas. Dueño o cuidador con meals:log. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags meals
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param payload body createMealRequest true "Comida; served_at en formato RFC3339"
// @Success 201 {object} mealResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/meals [post]
func createMealHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		p, err := petsSvc.Authorize(r.Context(), petID, claims.UserID, caretakers.ScopeMealsLog)
		if err != nil {
			writePetError(w, err)
			return
		}

		var req createMealRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, validationMessage(err), http.StatusBadRequest)
			return
		}

		var served time.Time
		if v := strings.TrimSpace(req.ServedAt); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				http.Error(w, "served_at must be RFC3339", http.StatusBadRequest)
				return
			}
			served = t
		}

		ings := make([]Ingredient, 0, len(req.Ingredients))
		for _, i := range req.Ingredients {
			ings = append(ings, Ingredient(i))
		}

		m, err := svc.Create(r.Context(), petID, claims.UserID, CreateInput{
			Pet:         p.Profile(time.Now()),
			RecipeID:    req.RecipeID,
			Name:        req.Name,
			Ingredients: ings,
			Notes:       req.Notes,
			ServedAt:    served,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toMealResponse(m))
	}
}

// analyzeMealHandler godoc
// @Summary Analizar una comida armada a mano
// @Description Pasa los ingredientes por agregación, validación y puntaje contra el perfil de la mascota. Los desconocidos o sin datos no suman nutrientes y quedan marcados; los inseguros para la especie, alérgenos o prohibidos bajan el puntaje y dejan `safe` en false. No guarda nada. Dueño o cuidador con meals:read.
// @Tags meals
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param payload body analyzeMealRequest true "Ingredientes con gramos"
// @Success 200 {object} recipes.Analysis
// @Failure 400 {string} string "invalid json / validación"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/meals/analyze [post]
func analyzeMealHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := petsSvc.Authorize(r.Context(), chi.URLParam(r, "petID"), claims.UserID, caretakers.ScopeMealsRead)
		if err != nil {
			writePetError(w, err)
			return
		}

		var req analyzeMealRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, validationMessage(err), http.StatusBadRequest)
			return
		}

		ings := make([]Ingredient, 0, len(req.Ingredients))
		for _, i := range req.Ingredients {
			ings = append(ings, Ingredient{IngredientID: i.IngredientID, Name: i.Name, Grams: i.Grams})
		}

		a, err := svc.Analyze(r.Context(), p.Profile(time.Now()), AnalyzeInput{
			Ingredients:   ings,
			BudgetPerMeal: req.BudgetPerMeal,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

// listMealsHandler godoc
// @Summary Listar comidas de una mascota
// @Description Lista las comidas más recientes primero. Las archivadas se omiten salvo `include_archived=true`.
// @Tags meals
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param limit query int false "Máximo de comidas a devolver (1-200). Por defecto 50"
// @Param from query string false "served_at mínimo (RFC3339)"
// @Param to query string false "served_at máximo (RFC3339)"
// @Param include_archived query bool false "Incluir comidas archivadas"
// @Success 200 {array} mealResponse
// @Failure 400 {string} string "Parámetros de filtro inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Failure 500 {string} string "internal error"
// @Router /pets/{petID}/meals [get]
func listMealsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		if _, err := petsSvc.Authorize(r.Context(), petID, claims.UserID, caretakers.ScopeMealsRead); err != nil {
			writePetError(w, err)
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.ListByPet(r.Context(), petID, filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]mealResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMealResponse(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// archiveMealHandler godoc
// @Summary Archivar una comida
// @Tags meals
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param mealID path string true "ID de la comida"
// @Success 200 {object} mealResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "meal not found"
// @Failure 500 {string} string "internal error"
// @Router /pets/{petID}/meals/{mealID}/archive [post]
func archiveMealHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		mealID := chi.URLParam(r, "mealID")

		// Permisos primero, para no filtrar si la comida existe
		if _, err := petsSvc.Authorize(r.Context(), petID, claims.UserID, caretakers.ScopeMealsArchive); err != nil {
			writePetError(w, err)
			return
		}

		m, err := svc.GetByID(r.Context(), mealID)
		if err != nil || m.PetID != petID {
			http.Error(w, "meal not found", http.StatusNotFound)
			return
		}

		updated, err := svc.Archive(r.Context(), mealID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toMealResponse(updated))
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	q := r.URL.Query()

	limit := 50
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	filter := ListFilter{Limit: limit}

	if v := strings.TrimSpace(q.Get("from")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("from must be RFC3339")
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("to must be RFC3339")
		}
		filter.To = &t
	}
	if v := strings.TrimSpace(q.Get("include_archived")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return ListFilter{}, errors.New("include_archived must be a boolean")
		}
		filter.IncludeArchived = b
	}
	return filter, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid input"
	}
	fe := verrs[0]
	return "invalid input: " + strings.ToLower(fe.Field()) + " failed " + fe.Tag()
}

func writePetError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pets.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, pets.ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, recipes.ErrInvalidInput),
		errors.Is(err, recipes.ErrInvalidWeight),
		errors.Is(err, recipes.ErrUnsupportedSpecies):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "meal not found", http.StatusNotFound)
	case errors.Is(err, ErrNoAnalyzer):
		http.Error(w, "meal analysis unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toMealResponse(m Meal) mealResponse {
	ings := m.Ingredients
	if ings == nil {
		ings = []Ingredient{}
	}
	return mealResponse{
		ID:            m.ID,
		PetID:         m.PetID,
		RecipeID:      m.RecipeID,
		Name:          m.Name,
		Ingredients:   ings,
		Score:         m.Score,
		EstimatedCost: m.EstimatedCost,
		Kcal:          m.Kcal,
		Notes:         m.Notes,
		ServedAt:      m.ServedAt,
		RecordedAt:    m.RecordedAt,
		RecordedBy:    m.RecordedBy,
		Status:        m.Status,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
