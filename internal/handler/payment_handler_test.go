package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-furniture-erp/internal/middleware"
	"go-furniture-erp/internal/model"
	"go-furniture-erp/internal/repository"
	"go-furniture-erp/internal/service"
	"go-furniture-erp/internal/settlement"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPaymentService struct {
	installmentErr error
	result         *settlement.Result
	gotActor       service.Actor
	gotFrom        *time.Time
	gotTo          *time.Time
}

func (s *stubPaymentService) List(context.Context, repository.PaymentFilter) ([]model.Payment, error) {
	return nil, nil
}

func (s *stubPaymentService) Get(context.Context, uuid.UUID) (*model.Payment, error) {
	return nil, service.ErrPaymentNotFound
}

func (s *stubPaymentService) Create(context.Context, *service.CreatePaymentRequest, service.Actor) (*model.Payment, error) {
	return nil, &service.InvalidInputError{Msg: "Validation failed: Field 'CreatePaymentRequest.MethodForm.CardLast4' failed on tag 'required_if'"}
}

func (s *stubPaymentService) Remaining(context.Context, uuid.UUID) (decimal.Decimal, error) {
	return decimal.NewFromInt(600), nil
}

func (s *stubPaymentService) RecordInstallment(_ context.Context, _ uuid.UUID, _ *service.InstallmentRequest, actor service.Actor) (*settlement.Result, error) {
	s.gotActor = actor
	return s.result, s.installmentErr
}

func (s *stubPaymentService) CashBook(_ context.Context, from, to *time.Time) (*service.CashBook, error) {
	s.gotFrom, s.gotTo = from, to
	return &service.CashBook{Income: decimal.Zero, Expense: decimal.Zero, Net: decimal.Zero}, nil
}

func newPaymentApp(svc service.PaymentService, privileges ...string) *fiber.App {
	h := NewPaymentHandler(svc, time.UTC)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.LocalUserID, "u-1")
		c.Locals(middleware.LocalUserName, "Tester")
		c.Locals(middleware.LocalPrivileges, privileges)
		return c.Next()
	})
	app.Get("/payments/cash-book", h.GetCashBook)
	app.Get("/payments/:id", h.GetPayment)
	app.Post("/payments", h.CreatePayment)
	app.Post("/payments/:id/installments", middleware.RequirePrivilege(model.PrivPaymentSettle), h.RecordInstallment)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestRecordInstallment_OverpaymentReportsRemaining(t *testing.T) {
	svc := &stubPaymentService{installmentErr: &settlement.OverpaymentError{
		Requested: decimal.NewFromInt(700),
		Remaining: decimal.NewFromInt(600),
	}}
	app := newPaymentApp(svc, model.PrivPaymentSettle)

	status, body := doJSON(t, app, http.MethodPost, "/payments/"+uuid.NewString()+"/installments", `{"method":"Cash","amount":"700"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "600", body["remaining"])
	assert.Contains(t, body["error"], "exceeds the remaining balance of 600.00")
	assert.Equal(t, "u-1", svc.gotActor.ID)
}

func TestRecordInstallment_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", &settlement.ValidationError{Field: "amount", Reason: "must be greater than zero"}, http.StatusBadRequest},
		{"form", &service.InvalidInputError{Msg: "Validation failed"}, http.StatusBadRequest},
		{"missing credit", service.ErrPaymentNotFound, http.StatusNotFound},
		{"insert failed", &settlement.PersistenceError{Op: "insert settlement payment", Err: errors.New("conn refused")}, http.StatusInternalServerError},
		{"orphan", &settlement.PartialSettlementError{Err: errors.New("timeout")}, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newPaymentApp(&stubPaymentService{installmentErr: tc.err}, model.PrivPaymentSettle)
			status, body := doJSON(t, app, http.MethodPost, "/payments/"+uuid.NewString()+"/installments", `{"method":"Cash","amount":"1"}`)
			assert.Equal(t, tc.status, status)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestRecordInstallment_FullySettled(t *testing.T) {
	svc := &stubPaymentService{result: &settlement.Result{
		Credit:       model.Payment{Amount: decimal.NewFromInt(1000), PaidAmount: decimal.NewNullDecimal(decimal.NewFromInt(1000))},
		FullySettled: true,
	}}
	app := newPaymentApp(svc, model.PrivPaymentSettle)

	status, body := doJSON(t, app, http.MethodPost, "/payments/"+uuid.NewString()+"/installments", `{"method":"Cash","amount":"600"}`)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Credit fully settled", body["message"])
	assert.Equal(t, "0", body["remaining"])
}

func TestRecordInstallment_RequiresPrivilege(t *testing.T) {
	app := newPaymentApp(&stubPaymentService{}, model.PrivPaymentView)

	status, body := doJSON(t, app, http.MethodPost, "/payments/"+uuid.NewString()+"/installments", `{}`)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, body["error"], model.PrivPaymentSettle)
}

func TestPaymentHandler_BadInput(t *testing.T) {
	app := newPaymentApp(&stubPaymentService{}, model.PrivPaymentSettle)

	status, _ := doJSON(t, app, http.MethodGet, "/payments/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, app, http.MethodGet, "/payments/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, status)

	status, body := doJSON(t, app, http.MethodPost, "/payments", `{"method":"Card","amount":"10","type":"income"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"], "CardLast4")

	status, _ = doJSON(t, app, http.MethodGet, "/payments/cash-book?from=15-01-2024", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGetCashBook_DateRangeCoversWholeDays(t *testing.T) {
	svc := &stubPaymentService{}
	app := newPaymentApp(svc)

	status, _ := doJSON(t, app, http.MethodGet, "/payments/cash-book?from=2024-01-01&to=2024-01-31", "")
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, svc.gotFrom)
	require.NotNil(t, svc.gotTo)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *svc.gotFrom)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), *svc.gotTo)
}
