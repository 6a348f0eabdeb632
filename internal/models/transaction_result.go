package models

// GatewayResponse holds the processor-level fields attached to a charge.
type GatewayResponse struct {
	AuthCode        string `json:"authCode"`
	ReferenceNumber string `json:"referenceNumber"`
}

// TransactionResult is the ephemeral outcome of a charge. It is returned
// to the caller and never persisted.
type TransactionResult struct {
	TransactionID   string          `json:"transactionId"`
	Amount          float64         `json:"amount"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
	ResponseCode    string          `json:"responseCode"`
	ResponseMessage string          `json:"responseMessage"`
	GatewayResponse GatewayResponse `json:"gatewayResponse"`
}

// TransactionStatusApproved is the only success status a charge produces.
const TransactionStatusApproved = "approved"
