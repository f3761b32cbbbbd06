package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fuelstation/internal/domain"
	httpapi "fuelstation/internal/http"
	"fuelstation/internal/service"
	"fuelstation/internal/shift/mocks"

	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shiftID = "3f1c2a9e-8d4b-4c3e-9a8f-0b1d2c3e4f50"

type apiFixture struct {
	router http.Handler
	store  *mocks.MockShiftStore
	ledger *mocks.MockSaleLedger
	prices *mocks.MockPriceSource
	staff  *mocks.MockStaffDirectory
}

func newAPI(t *testing.T, ctrl *gomock.Controller) *apiFixture {
	t.Helper()
	logger, _ := test.NewNullLogger()
	f := &apiFixture{
		store:  mocks.NewMockShiftStore(ctrl),
		ledger: mocks.NewMockSaleLedger(ctrl),
		prices: mocks.NewMockPriceSource(ctrl),
		staff:  mocks.NewMockStaffDirectory(ctrl),
	}
	svc := service.New(service.Deps{
		Store:  f.store,
		Ledger: f.ledger,
		Prices: f.prices,
		Staff:  f.staff,
		Logger: logger,
	}, service.Options{DefaultFuelType: "petrol", DialogTTL: time.Minute})
	f.router = httpapi.NewRouter(httpapi.NewHandler(svc, logger), logger, httpapi.RouterOptions{MetricsEnabled: true})
	return f
}

func (f *apiFixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func activeShift() *domain.Shift {
	return &domain.Shift{
		ID:        shiftID,
		StaffID:   "A",
		PumpID:    "P1",
		ShiftType: domain.ShiftNight,
		StartTime: time.Now().Add(-8 * time.Hour),
		Status:    domain.StatusActive,
	}
}

// openDialog opens an end dialog on the active shift and returns its token.
func (f *apiFixture) openDialog(t *testing.T) string {
	t.Helper()
	f.store.EXPECT().GetShift(gomock.Any(), shiftID).Return(activeShift(), nil)
	f.store.EXPECT().GetReading(gomock.Any(), shiftID).Return(&domain.Reading{ShiftID: shiftID, OpeningReading: 4000}, nil)
	f.ledger.EXPECT().QuerySalesByStaffAndWindow(gomock.Any(), "A", gomock.Any(), gomock.Any()).Return(nil, nil)
	f.prices.EXPECT().PumpFuelType(gomock.Any(), "P1").Return("diesel", nil)
	f.prices.EXPECT().GetCurrentUnitPrice(gomock.Any(), "diesel").Return(90.0, nil)
	f.staff.EXPECT().ListStaff(gomock.Any()).Return([]domain.Staff{{ID: "B", Name: "Bilal"}}, nil)

	rec := f.do(http.MethodPost, "/api/v1/shifts/"+shiftID+"/end-dialog", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "end", body["mode"])
	assert.Equal(t, "morning", body["next_shift_type"])
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	api := newAPI(t, ctrl)

	rec := api.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStartShift_RequestValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	api := newAPI(t, ctrl)

	rec := api.do(http.MethodPost, "/api/v1/shifts", `{"pump_id":"P1","opening_reading":0,"shift_type":"graveyard"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	fields, ok := decodeBody(t, rec)["fields"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "required", fields["staff_id"])
	assert.Equal(t, "gt", fields["opening_reading"])
	assert.Equal(t, "oneof", fields["shift_type"])

	rec = api.do(http.MethodPost, "/api/v1/shifts", `{"staff_id":"A","unknown":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStartShift(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	api := newAPI(t, ctrl)

	api.store.EXPECT().FindActiveShiftByStaff(gomock.Any(), "A").Return(nil, domain.ErrNotFound)
	api.store.EXPECT().InsertShift(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s domain.Shift) (domain.Shift, error) {
			s.ID = shiftID
			return s, nil
		})
	api.store.EXPECT().InsertReading(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r domain.Reading) error {
			assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), r.Date)
			return nil
		})

	rec := api.do(http.MethodPost, "/api/v1/shifts",
		`{"staff_id":"A","pump_id":"P1","shift_type":"morning","opening_reading":1000,"cash_given":500,"date":"2025-03-10"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	created := body["shift"].(map[string]any)
	assert.Equal(t, shiftID, created["id"])
	assert.Equal(t, "active", created["status"])
}

func TestStartShift_StaffAlreadyActive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	api := newAPI(t, ctrl)

	api.store.EXPECT().FindActiveShiftByStaff(gomock.Any(), "A").Return(activeShift(), nil)

	rec := api.do(http.MethodPost, "/api/v1/shifts", `{"staff_id":"A","pump_id":"P2","opening_reading":10}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "staff_id", decodeBody(t, rec)["field"])
}

func TestListShifts_StoreUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	api := newAPI(t, ctrl)

	api.store.EXPECT().ListShifts(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	rec := api.do(http.MethodGet, "/api/v1/shifts?status=active", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/shifts?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteShift(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	api := newAPI(t, ctrl)

	rec := api.do(http.MethodDelete, "/api/v1/shifts/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	api.store.EXPECT().DeleteShift(gomock.Any(), shiftID).Return(domain.ErrNotFound)
	rec = api.do(http.MethodDelete, "/api/v1/shifts/"+shiftID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	api.store.EXPECT().DeleteShift(gomock.Any(), shiftID).Return(nil)
	rec = api.do(http.MethodDelete, "/api/v1/shifts/"+shiftID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestEndDialog_PreviewAndCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	api := newAPI(t, ctrl)
	token := api.openDialog(t)

	rec := api.do(http.MethodPost, "/api/v1/end-dialogs/"+token+"/preview", `{"closing_reading":4100,"cash_sales":3000,"cash_remaining":2900}`)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decodeBody(t, rec)["summary"].(map[string]any)
	assert.Equal(t, 100.0, summary["fuel_sold_liters"])
	assert.Equal(t, 9000.0, summary["expected_sales_amount"])
	assert.Equal(t, -100.0, summary["cash_difference"])

	rec = api.do(http.MethodPost, "/api/v1/end-dialogs/"+token+"/preview", `{"closing_reading":-1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = api.do(http.MethodDelete, "/api/v1/end-dialogs/"+token, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/end-dialogs/"+token+"/preview", `{"closing_reading":4100}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEndDialog_ConfirmConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	api := newAPI(t, ctrl)
	token := api.openDialog(t)

	completed := activeShift()
	end := time.Now()
	completed.Status = domain.StatusCompleted
	completed.EndTime = &end
	api.store.EXPECT().GetShift(gomock.Any(), shiftID).Return(completed, nil)

	rec := api.do(http.MethodPost, "/api/v1/end-dialogs/"+token+"/confirm", `{"closing_reading":4500}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestEndDialog_ConfirmEndAndStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	api := newAPI(t, ctrl)
	token := api.openDialog(t)

	completed := activeShift()
	end := time.Now()
	completed.Status = domain.StatusCompleted
	completed.EndTime = &end

	api.store.EXPECT().FindActiveShiftByStaff(gomock.Any(), "B").Return(nil, domain.ErrNotFound)
	api.store.EXPECT().GetShift(gomock.Any(), shiftID).Return(activeShift(), nil)
	api.store.EXPECT().GetReading(gomock.Any(), shiftID).Return(&domain.Reading{ShiftID: shiftID, OpeningReading: 4000}, nil)
	api.store.EXPECT().CompleteShift(gomock.Any(), shiftID, gomock.Any(), 0.0).Return(*completed, nil)
	api.store.EXPECT().ListReadingColumns(gomock.Any(), shiftID).Return([]string{"indent_sales", "expenses", "consumable_expenses"}, nil)
	api.store.EXPECT().UpdateReading(gomock.Any(), shiftID, gomock.Any()).Return(nil)
	api.store.EXPECT().InsertShift(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s domain.Shift) (domain.Shift, error) {
			s.ID = "next"
			return s, nil
		})
	api.store.EXPECT().InsertReading(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r domain.Reading) error {
			assert.Equal(t, 4500.0, r.OpeningReading)
			return nil
		})

	rec := api.do(http.MethodPost, "/api/v1/end-dialogs/"+token+"/confirm",
		`{"mode":"end-and-start","closing_reading":4500,"successor":{"staff_id":"B","cash_given":100}}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	successor := body["successor"].(map[string]any)
	assert.Equal(t, "morning", successor["shift_type"])
	assert.Equal(t, "B", successor["staff_id"])
}

func TestEndDialog_ConfirmPartialCompletion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	api := newAPI(t, ctrl)
	token := api.openDialog(t)

	completed := activeShift()
	end := time.Now()
	completed.Status = domain.StatusCompleted
	completed.EndTime = &end

	api.store.EXPECT().FindActiveShiftByStaff(gomock.Any(), "B").Return(nil, domain.ErrNotFound)
	api.store.EXPECT().GetShift(gomock.Any(), shiftID).Return(activeShift(), nil)
	api.store.EXPECT().GetReading(gomock.Any(), shiftID).Return(&domain.Reading{ShiftID: shiftID, OpeningReading: 4000}, nil)
	api.store.EXPECT().CompleteShift(gomock.Any(), shiftID, gomock.Any(), 0.0).Return(*completed, nil)
	api.store.EXPECT().ListReadingColumns(gomock.Any(), shiftID).Return([]string{"indent_sales", "expenses"}, nil)
	api.store.EXPECT().UpdateReading(gomock.Any(), shiftID, gomock.Any()).Return(nil)
	api.store.EXPECT().InsertShift(gomock.Any(), gomock.Any()).Return(domain.Shift{}, errors.New("connection reset"))

	rec := api.do(http.MethodPost, "/api/v1/end-dialogs/"+token+"/confirm",
		`{"mode":"end-and-start","closing_reading":4500,"successor":{"staff_id":"B"}}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, shiftID, decodeBody(t, rec)["ended_shift_id"])
}

func TestEndDialog_SuccessorAlreadyActive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	api := newAPI(t, ctrl)
	token := api.openDialog(t)

	busy := activeShift()
	busy.ID, busy.StaffID = "other", "B"
	api.store.EXPECT().FindActiveShiftByStaff(gomock.Any(), "B").Return(busy, nil)

	rec := api.do(http.MethodPost, "/api/v1/end-dialogs/"+token+"/confirm",
		`{"mode":"end-and-start","closing_reading":4500,"successor":{"staff_id":"B"}}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "successor.staff_id", decodeBody(t, rec)["field"])
}

func TestEndDialog_SuccessorRequiresStaff(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	api := newAPI(t, ctrl)

	rec := api.do(http.MethodPost, "/api/v1/end-dialogs/whatever/confirm",
		`{"mode":"end-and-start","closing_reading":4500,"successor":{"cash_given":10}}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	fields := decodeBody(t, rec)["fields"].(map[string]any)
	assert.Equal(t, "required", fields["successor.staff_id"])
}

func TestListStaff(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	api := newAPI(t, ctrl)

	api.staff.EXPECT().ListStaff(gomock.Any()).Return([]domain.Staff{{ID: "A", Name: "Asha"}}, nil)

	rec := api.do(http.MethodGet, "/api/v1/staff", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1.0, decodeBody(t, rec)["count"])
}
