package visits

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pet-clinic-visits/internal/middleware"
	"pet-clinic-visits/internal/platform/logger"
	"pet-clinic-visits/internal/platform/validation"
	"pet-clinic-visits/internal/ports/capabilities"
)

const maxBodyBytes = 1 << 20

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With(map[string]any{"module": "visits"})

	r.Route("/api/visits", func(vr chi.Router) {
		vr.Get("/", listVisitsHandler(svc, log))
		vr.Post("/", createVisitHandler(svc, log))

		vr.Get("/{visitID}", getVisitHandler(svc, log))
		vr.Put("/{visitID}", updateVisitHandler(svc, log))
		vr.Delete("/{visitID}", deleteVisitHandler(svc, log))

		// Cobro (solo veterinaria)
		vr.Put("/{visitID}/payment", markPaidHandler(svc, log))
	})
}

// listVisitsHandler godoc
// @Summary Listar visitas
// @Description Devuelve todas las visitas. Si no hay ninguna responde 404 sin body. Requiere rol OWNER_ADMIN.
// @Tags visits
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Roles header string false "Solo en modo dev, roles CSV (ej: OWNER_ADMIN,VET_ADMIN)"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} wireVisit
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "sin visitas"
// @Router /api/visits [get]
func listVisitsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.Authorize(w, r, capabilities.OwnerAdmin); !ok {
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, log, err)
			return
		}
		if len(items) == 0 {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		body, err := MarshalList(items)
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, body)
	}
}

// getVisitHandler godoc
// @Summary Obtener visita
// @Description Devuelve una visita por id. Requiere rol OWNER_ADMIN.
// @Tags visits
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Roles header string false "Solo en modo dev, roles CSV"
// @Param Authorization header string false "Bearer token en producción"
// @Param visitID path int true "ID de la visita"
// @Success 200 {object} wireVisit
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "visit not found"
// @Router /api/visits/{visitID} [get]
func getVisitHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.Authorize(w, r, capabilities.OwnerAdmin); !ok {
			return
		}

		id, ok := visitID(r)
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		v, err := svc.Get(r.Context(), id)
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeVisit(w, log, http.StatusOK, v)
	}
}

// createVisitHandler godoc
// @Summary Crear visita
// @Description Crea una visita. isPaid siempre arranca en false y el id lo asigna el store. Los errores de validación viajan en el header `errors` (array JSON). Requiere rol OWNER_ADMIN.
// @Tags visits
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Roles header string false "Solo en modo dev, roles CSV"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body wireVisit true "Visita; date en formato yyyy/MM/dd"
// @Success 201 {object} wireVisit
// @Header 201 {string} Location "/api/visits/{id}"
// @Failure 400 {string} string "header errors con el detalle"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 413 {string} string "body demasiado grande"
// @Router /api/visits [post]
func createVisitHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.Authorize(w, r, capabilities.OwnerAdmin); !ok {
			return
		}

		in, ok := readVisit(w, r, log)
		if !ok {
			return
		}

		saved, err := svc.Create(r.Context(), in)
		if err != nil {
			writeError(w, log, err)
			return
		}

		w.Header().Set("Location", "/api/visits/"+strconv.Itoa(saved.ID))
		writeVisit(w, log, http.StatusCreated, saved)
	}
}

// updateVisitHandler godoc
// @Summary Actualizar visita
// @Description Copia date, description, pet, adHoc y scheduled sobre la visita existente. vet e isPaid no cambian. El body se valida antes de buscar la visita. Requiere rol OWNER_ADMIN.
// @Tags visits
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Roles header string false "Solo en modo dev, roles CSV"
// @Param Authorization header string false "Bearer token en producción"
// @Param visitID path int true "ID de la visita"
// @Param payload body wireVisit true "Visita; date en formato yyyy/MM/dd"
// @Success 200 {object} wireVisit
// @Failure 400 {string} string "header errors con el detalle"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "visit not found"
// @Failure 413 {string} string "body demasiado grande"
// @Router /api/visits/{visitID} [put]
func updateVisitHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.Authorize(w, r, capabilities.OwnerAdmin); !ok {
			return
		}

		id, ok := visitID(r)
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		in, ok := readVisit(w, r, log)
		if !ok {
			return
		}

		saved, err := svc.Update(r.Context(), id, in)
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeVisit(w, log, http.StatusOK, saved)
	}
}

// deleteVisitHandler godoc
// @Summary Borrar visita
// @Description Borra la visita. Requiere rol OWNER_ADMIN.
// @Tags visits
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Roles header string false "Solo en modo dev, roles CSV"
// @Param Authorization header string false "Bearer token en producción"
// @Param visitID path int true "ID de la visita"
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "visit not found"
// @Router /api/visits/{visitID} [delete]
func deleteVisitHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.Authorize(w, r, capabilities.OwnerAdmin); !ok {
			return
		}

		id, ok := visitID(r)
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeError(w, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// markPaidHandler godoc
// @Summary Marcar visita como pagada
// @Description Pone isPaid=true. Es idempotente. Requiere rol VET_ADMIN.
// @Tags visits
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Roles header string false "Solo en modo dev, roles CSV"
// @Param Authorization header string false "Bearer token en producción"
// @Param visitID path int true "ID de la visita"
// @Success 200 {object} wireVisit
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "visit not found"
// @Router /api/visits/{visitID}/payment [put]
func markPaidHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.Authorize(w, r, capabilities.VetAdmin); !ok {
			return
		}

		id, ok := visitID(r)
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		saved, err := svc.MarkPaid(r.Context(), id)
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeVisit(w, log, http.StatusOK, saved)
	}
}

// visitID: un id no numérico no puede existir, se trata como 404.
func visitID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "visitID"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// readVisit lee y parsea el body. Si falla ya respondió 400 (413 si excede maxBodyBytes).
func readVisit(w http.ResponseWriter, r *http.Request, log logger.Logger) (Visit, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Warn("visit payload too large", map[string]any{"limit": tooLarge.Limit})
			verr := validation.New(objectName)
			verr.Add("body", "", "size must be at most "+strconv.FormatInt(tooLarge.Limit, 10)+" bytes")
			validation.Write(w, http.StatusRequestEntityTooLarge, verr)
			return Visit{}, false
		}
		writeError(w, log, &MalformedError{Field: "body", Reason: "could not read body", Err: err})
		return Visit{}, false
	}

	v, err := Unmarshal(data)
	if err != nil {
		writeError(w, log, err)
		return Visit{}, false
	}
	return v, true
}

func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	if verr, ok := IsValidation(err); ok {
		validation.Write(w, http.StatusBadRequest, verr)
		return
	}

	var me *MalformedError
	var re *ReferenceError
	switch {
	case errors.Is(err, ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, ErrEmptyBody):
		verr := validation.New(objectName)
		verr.Add("", "", "request body must not be empty")
		validation.Write(w, http.StatusBadRequest, verr)
	case errors.As(err, &me):
		log.Warn("malformed visit payload", map[string]any{"field": me.Field, "err": err})
		reason := me.Reason
		if reason == "" {
			reason = reasonWrongType
		}
		verr := validation.New(objectName)
		verr.Add(me.Field, me.Value, reason)
		validation.Write(w, http.StatusBadRequest, verr)
	case errors.As(err, &re):
		verr := validation.New(objectName)
		verr.Add(re.Field, strconv.Itoa(re.ID), "unknown "+re.Field)
		validation.Write(w, http.StatusBadRequest, verr)
	default:
		log.Error("visit operation failed", map[string]any{"err": err})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeVisit(w http.ResponseWriter, log logger.Logger, status int, v Visit) {
	body, err := Marshal(v)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
