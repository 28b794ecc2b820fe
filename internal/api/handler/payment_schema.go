package handler

import "github.com/petrohaul/transport-system/internal/core/domain"

type createPaymentRequest struct {
	TripID         string  `json:"trip_id"          validate:"required"`
	CompanyID      string  `json:"company_id"       validate:"required"`
	VehicleOwnerID string  `json:"vehicle_owner_id" validate:"required"`
	Amount         float64 `json:"amount"           validate:"required,gt=0"`
	PaymentMethod  string  `json:"payment_method"`
	TransactionID  string  `json:"transaction_id"`
}

type updatePaymentStatusRequest struct {
	Status        string `json:"status"         validate:"required,oneof=pending processing completed failed cancelled"`
	TransactionID string `json:"transaction_id"`
}

type listPaymentsResponse struct {
	Data       []*domain.Payment  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
