package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/petrohaul/transport-system/internal/core/domain"
	"github.com/petrohaul/transport-system/internal/core/ports"
)

func paymentFixture() (*PaymentService, *stubPaymentRepo, *stubTripRepo, *stubPartyRepo) {
	payments := newStubPaymentRepo()
	trips := newStubTripRepo()
	parties := newStubPartyRepo()
	parties.companies["company_1"] = ports.CompanyContact{Name: "Acme Fuels", Email: "ops@acmefuels.test"}
	parties.owners["owner_1"] = struct{}{}
	events := &stubEventRepo{}
	svc := NewPaymentService(payments, trips, parties, events, discardLogger)

	trips.byID["trip_1"] = &domain.Trip{
		ID: "trip_1", TripNumber: "TRIP-1",
		CompanyID: "company_1", VehicleOwnerID: "owner_1", DriverID: "driver_1",
		Status: domain.TripCompleted,
	}
	return svc, payments, trips, parties
}

func TestPaymentService_Create_Defaults(t *testing.T) {
	svc, _, _, _ := paymentFixture()

	before := time.Now().UTC()
	payment, err := svc.CreatePayment(context.Background(), ports.CreatePaymentInput{
		TripID:         "trip_1",
		CompanyID:      "company_1",
		VehicleOwnerID: "owner_1",
		Amount:         5000,
		PaymentMethod:  "bank_transfer",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(payment.ID, "PAY-") {
		t.Errorf("payment id format wrong: %s", payment.ID)
	}
	if payment.Status != domain.PaymentPending {
		t.Errorf("expected pending, got %s", payment.Status)
	}
	if payment.ServiceCharge != 0 {
		t.Errorf("service charge must start at 0, got %v", payment.ServiceCharge)
	}
	if payment.TotalAmount != 5000 {
		t.Errorf("expected total 5000, got %v", payment.TotalAmount)
	}
	if payment.PaymentDate != nil {
		t.Error("payment_date must be unset on create")
	}

	wantDue := payment.CreatedAt.AddDate(0, 0, 7)
	if diff := payment.DueDate.Sub(wantDue); diff < -time.Second || diff > time.Second {
		t.Errorf("due date off by %v", diff)
	}
	if payment.CreatedAt.Before(before.Add(-time.Second)) {
		t.Errorf("created_at suspicious: %v", payment.CreatedAt)
	}
}

// The three existence checks report in a fixed order: a missing trip wins even
// when the company and vehicle owner are also unknown.
func TestPaymentService_Create_ExistenceCheckOrdering(t *testing.T) {
	svc, _, _, _ := paymentFixture()

	_, err := svc.CreatePayment(context.Background(), ports.CreatePaymentInput{
		TripID:         "trip_missing",
		CompanyID:      "company_missing",
		VehicleOwnerID: "owner_missing",
		Amount:         100,
	})
	if !errors.Is(err, domain.ErrTripNotFound) {
		t.Fatalf("expected ErrTripNotFound first, got %v", err)
	}

	_, err = svc.CreatePayment(context.Background(), ports.CreatePaymentInput{
		TripID:         "trip_1",
		CompanyID:      "company_missing",
		VehicleOwnerID: "owner_missing",
		Amount:         100,
	})
	if !errors.Is(err, domain.ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound second, got %v", err)
	}

	_, err = svc.CreatePayment(context.Background(), ports.CreatePaymentInput{
		TripID:         "trip_1",
		CompanyID:      "company_1",
		VehicleOwnerID: "owner_missing",
		Amount:         100,
	})
	if !errors.Is(err, domain.ErrVehicleOwnerNotFound) {
		t.Fatalf("expected ErrVehicleOwnerNotFound third, got %v", err)
	}
}

func TestPaymentService_Create_RejectsNonPositiveAmount(t *testing.T) {
	svc, _, _, _ := paymentFixture()

	if _, err := svc.CreatePayment(context.Background(), ports.CreatePaymentInput{
		TripID: "trip_1", CompanyID: "company_1", VehicleOwnerID: "owner_1", Amount: 0,
	}); err == nil {
		t.Fatal("expected error for zero amount")
	}
}

func TestPaymentService_Complete_StampsPaymentDate(t *testing.T) {
	svc, _, _, _ := paymentFixture()
	payment, _ := svc.CreatePayment(context.Background(), ports.CreatePaymentInput{
		TripID: "trip_1", CompanyID: "company_1", VehicleOwnerID: "owner_1", Amount: 5000,
	})

	updated, err := svc.UpdatePaymentStatus(context.Background(), ports.UpdatePaymentStatusInput{
		ID:            payment.ID,
		Status:        "completed",
		TransactionID: "TXN-42",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.PaymentCompleted {
		t.Errorf("expected completed, got %s", updated.Status)
	}
	if updated.PaymentDate == nil {
		t.Fatal("payment_date must be stamped on completion")
	}
	if updated.PaymentDate.Before(payment.CreatedAt) {
		t.Error("payment_date cannot precede created_at")
	}
	if updated.TransactionID != "TXN-42" {
		t.Errorf("transaction id not stored: %q", updated.TransactionID)
	}
}

func TestPaymentService_UpdateStatus_TerminalRejected(t *testing.T) {
	svc, _, _, _ := paymentFixture()
	payment, _ := svc.CreatePayment(context.Background(), ports.CreatePaymentInput{
		TripID: "trip_1", CompanyID: "company_1", VehicleOwnerID: "owner_1", Amount: 5000,
	})
	_, _ = svc.UpdatePaymentStatus(context.Background(), ports.UpdatePaymentStatusInput{ID: payment.ID, Status: "failed"})

	if _, err := svc.UpdatePaymentStatus(context.Background(), ports.UpdatePaymentStatusInput{
		ID: payment.ID, Status: "completed",
	}); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition out of failed, got %v", err)
	}
}

func TestPaymentService_UpdateStatus_NotFound(t *testing.T) {
	svc, _, _, _ := paymentFixture()

	if _, err := svc.UpdatePaymentStatus(context.Background(), ports.UpdatePaymentStatusInput{
		ID: "PAY-missing", Status: "completed",
	}); !errors.Is(err, domain.ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound, got %v", err)
	}
}

func TestPaymentService_List_CompanyScoped(t *testing.T) {
	svc, payments, _, _ := paymentFixture()
	payments.byID["PAY-a"] = &domain.Payment{ID: "PAY-a", CompanyID: "company_1", Status: domain.PaymentPending}
	payments.byID["PAY-b"] = &domain.Payment{ID: "PAY-b", CompanyID: "company_2", Status: domain.PaymentPending}

	result, err := svc.ListPayments(context.Background(), ports.ListPaymentsInput{
		Role:    domain.RoleCompany,
		ActorID: "company_1",
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 1 || result.Items[0].ID != "PAY-a" {
		t.Errorf("company scoping broken: %+v", result.Items)
	}
}

func TestPaymentService_Get_OwnershipEnforced(t *testing.T) {
	svc, payments, _, _ := paymentFixture()
	payments.byID["PAY-a"] = &domain.Payment{ID: "PAY-a", CompanyID: "company_1", VehicleOwnerID: "owner_1"}

	if _, err := svc.GetPayment(context.Background(), "PAY-a", domain.RoleCompany, "company_1"); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	if _, err := svc.GetPayment(context.Background(), "PAY-a", domain.RoleCompany, "company_2"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.GetPayment(context.Background(), "PAY-a", domain.RoleVehicleOwner, "owner_1"); err != nil {
		t.Fatalf("vehicle owner read failed: %v", err)
	}
}

func TestPaymentService_Delete_NotFound(t *testing.T) {
	svc, _, _, _ := paymentFixture()

	if err := svc.DeletePayment(context.Background(), "PAY-missing"); !errors.Is(err, domain.ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound, got %v", err)
	}
}
