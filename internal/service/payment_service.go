package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-furniture-erp/internal/model"
	"go-furniture-erp/internal/repository"
	"go-furniture-erp/internal/settlement"
	"go-furniture-erp/internal/ws"
	"go-furniture-erp/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PaymentService interface {
	List(ctx context.Context, filter repository.PaymentFilter) ([]model.Payment, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	Create(ctx context.Context, req *CreatePaymentRequest, actor Actor) (*model.Payment, error)
	Remaining(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)
	RecordInstallment(ctx context.Context, creditID uuid.UUID, req *InstallmentRequest, actor Actor) (*settlement.Result, error)
	CashBook(ctx context.Context, from, to *time.Time) (*CashBook, error)
}

// MethodForm is the method-specific part of a payment form.
type MethodForm struct {
	Method       model.PaymentMethod `json:"method" validate:"required,oneof=Cash Card Online QR Cheque Credit"`
	CardLast4    string              `json:"card_last4" validate:"required_if=Method Card,last4"`
	FromBank     string              `json:"from_bank" validate:"required_if=Method Online"`
	FromAccount  string              `json:"from_account" validate:"required_if=Method Online"`
	ToBank       string              `json:"to_bank" validate:"required_if=Method Online"`
	ToAccount    string              `json:"to_account" validate:"required_if=Method Online"`
	ChequeBank   string              `json:"cheque_bank" validate:"required_if=Method Cheque"`
	ChequeNumber string              `json:"cheque_number" validate:"required_if=Method Cheque"`
	ChequeDate   string              `json:"cheque_date" validate:"required_if=Method Cheque"`
}

func (f MethodForm) Details() settlement.MethodDetails {
	return settlement.MethodDetails{
		CardLast4:    f.CardLast4,
		FromBank:     f.FromBank,
		FromAccount:  f.FromAccount,
		ToBank:       f.ToBank,
		ToAccount:    f.ToAccount,
		ChequeBank:   f.ChequeBank,
		ChequeNumber: f.ChequeNumber,
		ChequeDate:   f.ChequeDate,
	}
}

type CreatePaymentRequest struct {
	MethodForm
	OrderID     *string           `json:"order_id"`
	Description string            `json:"description"`
	Date        *time.Time        `json:"date"`
	Amount      decimal.Decimal   `json:"amount" validate:"gt=0"`
	Type        model.PaymentType `json:"type" validate:"required,oneof=income expense"`
}

// InstallmentRequest leaves the amount to the tracker so overpayment is
// reported with the remaining balance.
type InstallmentRequest struct {
	MethodForm
	Amount decimal.Decimal `json:"amount"`
}

type CashBook struct {
	From    *time.Time      `json:"from,omitempty"`
	To      *time.Time      `json:"to,omitempty"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
	Count   int             `json:"count"`
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	refs        settlement.ReferenceIssuer
	tracker     *settlement.Tracker
	notifier    ws.Notifier
}

func NewPaymentService(paymentRepo repository.PaymentRepository, refs settlement.ReferenceIssuer, tracker *settlement.Tracker, notifier ws.Notifier) PaymentService {
	return &paymentService{paymentRepo: paymentRepo, refs: refs, tracker: tracker, notifier: notifier}
}

func (s *paymentService) List(ctx context.Context, filter repository.PaymentFilter) ([]model.Payment, error) {
	return s.paymentRepo.FindAll(ctx, filter)
}

func (s *paymentService) Get(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	p, err := s.paymentRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPaymentNotFound
	}
	return p, err
}

// Create records a cash-book entry. Credit entries open a balance with nothing
// paid and get no reference number; every other method is issued one.
func (s *paymentService) Create(ctx context.Context, req *CreatePaymentRequest, actor Actor) (*model.Payment, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	p := &model.Payment{
		OrderID:     req.OrderID,
		Description: req.Description,
		Date:        dateOrNow(req.Date),
		Amount:      req.Amount,
		Method:      req.Method,
		Details:     settlement.RenderDetails(req.Method, req.Details()),
		Type:        req.Type,
	}
	if p.IsCredit() {
		p.PaidAmount = decimal.NewNullDecimal(decimal.Zero)
	} else {
		ref := s.refs.Issue(ctx)
		p.ReferenceNumber = &ref
	}
	p.Stamp(actor.ID)

	if err := s.paymentRepo.Create(ctx, p); err != nil {
		logger.LogError("service", "PaymentService.Create", "insert payment", req, err)
		return nil, fmt.Errorf("create payment: %w", err)
	}

	s.notifier.Publish(ws.EventPaymentRecorded, map[string]interface{}{
		"payment":          p.ID,
		"method":           p.Method,
		"amount":           p.Amount.String(),
		"reference_number": p.ReferenceNumber,
		"user":             actor.payload(),
	})
	return p, nil
}

func (s *paymentService) Remaining(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	if !p.IsCredit() {
		return decimal.Zero, invalid("payment %s is not a credit payment", id)
	}
	return settlement.Remaining(p), nil
}

func (s *paymentService) RecordInstallment(ctx context.Context, creditID uuid.UUID, req *InstallmentRequest, actor Actor) (*settlement.Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	credit, err := s.Get(ctx, creditID)
	if err != nil {
		return nil, err
	}

	res, err := s.tracker.RecordInstallment(ctx, credit, req.Amount, req.Method, req.Details(), actor.ID)
	if err != nil {
		var partial *settlement.PartialSettlementError
		var persist *settlement.PersistenceError
		switch {
		case errors.As(err, &partial):
			logger.Get().WithFields(logrus.Fields{
				"credit_payment":     credit.ID,
				"settlement_payment": partial.Settlement.ID,
				"reference_number":   partial.Settlement.ReferenceNumber,
				"error":              partial.Err.Error(),
			}).Error("installment stored but credit balance not updated")
		case errors.As(err, &persist):
			logger.LogError("service", "PaymentService.RecordInstallment", persist.Op, credit.ID, persist.Err)
		}
		return nil, err
	}

	message := "Installment recorded"
	if res.FullySettled {
		message = "Credit fully settled"
	}
	s.notifier.Publish(ws.EventInstallmentRecorded, map[string]interface{}{
		"credit_payment":   credit.ID,
		"settlement":       res.Settlement.ID,
		"reference_number": res.Settlement.ReferenceNumber,
		"remaining":        settlement.Remaining(&res.Credit).String(),
		"fully_settled":    res.FullySettled,
		"user":             actor.payload(),
		"message":          message,
	})
	return res, nil
}

func (s *paymentService) CashBook(ctx context.Context, from, to *time.Time) (*CashBook, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, invalid("date range ends before it starts")
	}
	payments, err := s.paymentRepo.FindAll(ctx, repository.PaymentFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	book := summarize(payments)
	book.From, book.To = from, to
	return book, nil
}

// summarize totals cash movements. Credit principals are not cash; their
// installments are separate payments and count on their own.
func summarize(payments []model.Payment) *CashBook {
	book := &CashBook{Income: decimal.Zero, Expense: decimal.Zero}
	for i := range payments {
		p := &payments[i]
		if p.IsCredit() {
			continue
		}
		switch p.Type {
		case model.PaymentIncome:
			book.Income = book.Income.Add(p.Amount)
		case model.PaymentExpense:
			book.Expense = book.Expense.Add(p.Amount)
		}
		book.Count++
	}
	book.Net = book.Income.Sub(book.Expense)
	return book
}
