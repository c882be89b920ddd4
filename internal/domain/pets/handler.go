package pets

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-plates/internal/domain/caretakers"
	"pet-plates/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
	})
}

// createPetRequest es el perfil que usa el generador de recetas.
type createPetRequest struct {
	Name                string   `json:"name" validate:"required,max=80"`
	Species             string   `json:"species" validate:"required" enums:"dog,cat,bird,reptile,pocket-pet"`
	Breed               string   `json:"breed" validate:"max=80"`
	Sex                 string   `json:"sex" enums:"male,female,unknown"`
	BirthDate           string   `json:"birth_date"` // YYYY-MM-DD opcional
	WeightKg            float64  `json:"weight_kg" validate:"gt=0,lte=1000"`
	LifeStage           string   `json:"life_stage"` // baby, young, adult, senior o edad en años
	HealthConcerns      []string `json:"health_concerns" validate:"max=20,dive,max=60"`
	Allergies           []string `json:"allergies" validate:"max=40,dive,max=60"`
	BannedIngredients   []string `json:"banned_ingredients" validate:"max=40,dive,max=60"`
	DietaryRestrictions []string `json:"dietary_restrictions" validate:"max=20,dive,max=60"`
	Notes               string   `json:"notes" validate:"max=2000"`
}

type petResponse struct {
	ID                  string     `json:"id"`
	OwnerUserID         string     `json:"owner_user_id"`
	Name                string     `json:"name"`
	Species             string     `json:"species"`
	Breed               string     `json:"breed"`
	Sex                 string     `json:"sex"`
	BirthDate           *time.Time `json:"birth_date,omitempty"`
	WeightKg            float64    `json:"weight_kg"`
	LifeStage           string     `json:"life_stage,omitempty"`
	HealthConcerns      []string   `json:"health_concerns"`
	Allergies           []string   `json:"allergies"`
	BannedIngredients   []string   `json:"banned_ingredients"`
	DietaryRestrictions []string   `json:"dietary_restrictions"`
	Notes               string     `json:"notes"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar. birth_date se maneja aparte (null = limpiar).
	Name                *string   `json:"name"`
	Species             *string   `json:"species"`
	Breed               *string   `json:"breed"`
	Sex                 *string   `json:"sex"`
	BirthDate           *string   `json:"birth_date"`
	WeightKg            *float64  `json:"weight_kg"`
	LifeStage           *string   `json:"life_stage"`
	HealthConcerns      *[]string `json:"health_concerns"`
	Allergies           *[]string `json:"allergies"`
	BannedIngredients   *[]string `json:"banned_ingredients"`
	DietaryRestrictions *[]string `json:"dietary_restrictions"`
	Notes               *string   `json:"notes"`
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Description Crea el perfil nutricional de una mascota del usuario autenticado. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createPetRequest true "Perfil de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 401 {string} string "unauthorized"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, validationMessage(err), http.StatusBadRequest)
			return
		}

		bd, err := parseDate(req.BirthDate)
		if err != nil {
			http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:                req.Name,
			Species:             req.Species,
			Breed:               req.Breed,
			Sex:                 req.Sex,
			BirthDate:           bd,
			WeightKg:            req.WeightKg,
			LifeStage:           req.LifeStage,
			HealthConcerns:      req.HealthConcerns,
			Allergies:           req.Allergies,
			BannedIngredients:   req.BannedIngredients,
			DietaryRestrictions: req.DietaryRestrictions,
			Notes:               req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary Listar mis mascotas
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} petResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Ver perfil de mascota
// @Description El dueño o un cuidador con pet:read.
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.Authorize(r.Context(), chi.URLParam(r, "petID"), claims.UserID, caretakers.ScopePetRead)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Actualizar perfil de mascota
// @Description PATCH parcial: los campos ausentes no se tocan y las listas se reemplazan completas. `birth_date: null` limpia la fecha.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a modificar"
// @Success 200 {object} petResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// Para soportar birth_date: null, decodificamos primero a map y detectamos presencia.
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var req updatePetRequest
		{
			b, _ := json.Marshal(raw)
			dec := json.NewDecoder(bytes.NewReader(b))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		var bd PatchDate
		if v, exists := raw["birth_date"]; exists {
			bd.Present = true
			if string(v) != "null" {
				var s string
				if err := json.Unmarshal(v, &s); err != nil {
					http.Error(w, "birth_date must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				t, err := parseDate(s)
				if err != nil {
					http.Error(w, "birth_date must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				bd.Value = t
			}
		}

		updated, err := svc.UpdateProfile(r.Context(), chi.URLParam(r, "petID"), claims.UserID, UpdateProfileInput{
			Name:                req.Name,
			Species:             req.Species,
			Breed:               req.Breed,
			Sex:                 req.Sex,
			BirthDate:           bd,
			WeightKg:            req.WeightKg,
			LifeStage:           req.LifeStage,
			HealthConcerns:      req.HealthConcerns,
			Allergies:           req.Allergies,
			BannedIngredients:   req.BannedIngredients,
			DietaryRestrictions: req.DietaryRestrictions,
			Notes:               req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
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
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:                  p.ID,
		OwnerUserID:         p.OwnerUserID,
		Name:                p.Name,
		Species:             string(p.Species),
		Breed:               p.Breed,
		Sex:                 string(p.Sex),
		BirthDate:           p.BirthDate,
		WeightKg:            p.WeightKg,
		LifeStage:           p.LifeStage,
		HealthConcerns:      nonNil(p.HealthConcerns),
		Allergies:           nonNil(p.Allergies),
		BannedIngredients:   nonNil(p.BannedIngredients),
		DietaryRestrictions: nonNil(p.DietaryRestrictions),
		Notes:               p.Notes,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
