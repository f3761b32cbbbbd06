package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"fuelstation/internal/domain"
	"fuelstation/internal/logging"
	"fuelstation/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc      *service.Service
	logger   logrus.FieldLogger
	validate *validator.Validate
}

func NewHandler(svc *service.Service, logger logrus.FieldLogger) *Handler {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Handler{svc: svc, logger: logger, validate: validate}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, err := parseOptionalInt(query.Get("limit"), 200)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := parseOptionalInt(query.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.svc.ListShifts(r.Context(), query.Get("status"), limit, offset)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

type startShiftRequest struct {
	StaffID        string  `json:"staff_id" validate:"required"`
	PumpID         string  `json:"pump_id" validate:"required"`
	ShiftType      string  `json:"shift_type" validate:"omitempty,oneof=morning evening night day"`
	OpeningReading float64 `json:"opening_reading" validate:"gt=0"`
	CashGiven      float64 `json:"cash_given" validate:"gte=0"`
	Date           string  `json:"date"`
}

func (h *Handler) StartShift(w http.ResponseWriter, r *http.Request) {
	var req startShiftRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	date, err := parseOptionalDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.StartShift(r.Context(), domain.StartShiftInput{
		StaffID:        req.StaffID,
		PumpID:         req.PumpID,
		ShiftType:      domain.ShiftType(req.ShiftType),
		OpeningReading: req.OpeningReading,
		CashGiven:      req.CashGiven,
		Date:           date,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.DeleteShift(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) OpenEndDialog(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	dialog, err := h.svc.OpenEndShift(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dialog)
}

type consumableReturnRequest struct {
	ConsumableID string  `json:"consumable_id" validate:"required"`
	Quantity     float64 `json:"quantity" validate:"gte=0"`
}

type successorRequest struct {
	StaffID   string  `json:"staff_id" validate:"required"`
	CashGiven float64 `json:"cash_given" validate:"gte=0"`
	Date      string  `json:"date"`
}

type closureRequest struct {
	Mode              string                    `json:"mode" validate:"omitempty,oneof=end-only end-and-start"`
	ClosingReading    float64                   `json:"closing_reading" validate:"gte=0"`
	CashRemaining     float64                   `json:"cash_remaining" validate:"gte=0"`
	CardSales         float64                   `json:"card_sales" validate:"gte=0"`
	UPISales          float64                   `json:"upi_sales" validate:"gte=0"`
	CashSales         float64                   `json:"cash_sales" validate:"gte=0"`
	IndentSales       float64                   `json:"indent_sales" validate:"gte=0"`
	Expenses          float64                   `json:"expenses" validate:"gte=0"`
	TestingFuel       float64                   `json:"testing_fuel" validate:"gte=0"`
	ConsumableReturns []consumableReturnRequest `json:"consumable_returns" validate:"dive"`
	Successor         *successorRequest         `json:"successor"`
}

func (req closureRequest) form() (domain.ClosureForm, error) {
	form := domain.ClosureForm{
		Mode:           domain.EndMode(req.Mode),
		ClosingReading: req.ClosingReading,
		CashRemaining:  req.CashRemaining,
		CardSales:      req.CardSales,
		UPISales:       req.UPISales,
		CashSales:      req.CashSales,
		IndentSales:    req.IndentSales,
		Expenses:       req.Expenses,
		TestingFuel:    req.TestingFuel,
	}
	for _, item := range req.ConsumableReturns {
		form.ConsumableReturns = append(form.ConsumableReturns, domain.ConsumableReturn{
			ConsumableID: item.ConsumableID,
			Quantity:     item.Quantity,
		})
	}
	if req.Successor != nil {
		date, err := parseOptionalDate(req.Successor.Date)
		if err != nil {
			return domain.ClosureForm{}, err
		}
		form.Successor = &domain.SuccessorInput{
			StaffID:   req.Successor.StaffID,
			CashGiven: req.Successor.CashGiven,
			Date:      date,
		}
	}
	return form, nil
}

func (h *Handler) PreviewEndDialog(w http.ResponseWriter, r *http.Request) {
	var req closureRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	form, err := req.form()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	summary, err := h.svc.Preview(chi.URLParam(r, "token"), form)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"summary": summary})
}

func (h *Handler) ConfirmEndDialog(w http.ResponseWriter, r *http.Request) {
	var req closureRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	form, err := req.form()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.svc.Confirm(r.Context(), chi.URLParam(r, "token"), form)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) CancelEndDialog(w http.ResponseWriter, r *http.Request) {
	h.svc.Cancel(chi.URLParam(r, "token"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := h.svc.ListStaff(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": staff, "count": len(staff)})
}

func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := decodeJSON(r, out); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	if err := h.validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fieldPath(fe.Namespace())] = fe.Tag()
			}
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":  "invalid request",
				"fields": fields,
			})
			return false
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// writeServiceError maps the domain error kinds onto status codes.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		partial *domain.PartialCompletionError
		verr    *domain.ValidationError
	)
	switch {
	case errors.As(err, &partial):
		logging.LogError(h.logger, "http", "writeServiceError", r.URL.Path, partial.EndedShiftID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":          err.Error(),
			"ended_shift_id": partial.EndedShiftID,
		})
	case errors.As(err, &verr):
		body := map[string]any{"error": verr.Message}
		if verr.Field != "" {
			body["field"] = verr.Field
		}
		writeJSON(w, http.StatusUnprocessableEntity, body)
	case errors.Is(err, domain.ErrInvalidState):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrPersistence):
		logging.LogError(h.logger, "http", "writeServiceError", r.URL.Path, nil, err)
		writeError(w, http.StatusServiceUnavailable, "storage is unavailable, please retry")
	default:
		logging.LogError(h.logger, "http", "writeServiceError", r.URL.Path, nil, err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// fieldPath drops the request struct name from a validator namespace.
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func parseOptionalInt(raw string, defaultValue int) (int, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer: %s", raw)
	}
	if parsed < 0 {
		return 0, fmt.Errorf("value cannot be negative")
	}
	return parsed, nil
}

func parseOptionalDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date, expected YYYY-MM-DD")
	}
	return parsed, nil
}

func parseID(raw string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid id")
	}
	return id.String(), nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
