package models

// CustomerData carries the billing attributes needed to mint a multi-use
// token. It is never persisted; only the derived card fields are.
type CustomerData struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	State         string `json:"state"`
	BillingZip    string `json:"billing_zip"`
	Country       string `json:"country"`
}

// FullName returns the cardholder name sent to the gateway.
func (c CustomerData) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}

// CardDetails carries the client-observed card attributes accompanying a
// single-use token. Fields are taken as the client reports them; only
// presence of the object is enforced.
type CardDetails struct {
	CardType    string `json:"cardType"`
	CardLast4   string `json:"cardLast4"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
}

// PaymentMethodRequest is the raw body of POST /payment-methods. Which
// fields are present decides the operation: an ID means edit, a vault
// token means vaulting an existing multi-use token, a payment token plus
// customer data means promoting a single-use token.
type PaymentMethodRequest struct {
	ID           string        `json:"id"`
	VaultToken   string        `json:"vaultToken"`
	PaymentToken string        `json:"paymentToken"`
	CustomerData *CustomerData `json:"customerData"`
	CardDetails  *CardDetails  `json:"cardDetails"`
	Nickname     *string       `json:"nickname"`
	IsDefault    *bool         `json:"isDefault"`
}

// IsEdit reports whether the request targets an existing record.
func (r PaymentMethodRequest) IsEdit() bool { return r.ID != "" }

// ChargeRequest is the body of POST /charge.
type ChargeRequest struct {
	PaymentMethodID string `json:"paymentMethodId"`
}

// ProcessPaymentRequest is the body of POST /process-payment: a one-shot
// charge from a single-use token. The amount arrives as text, the way the
// payment form submits it.
type ProcessPaymentRequest struct {
	PaymentToken string `json:"payment_token" form:"payment_token"`
	BillingZip   string `json:"billing_zip" form:"billing_zip"`
	Amount       string `json:"amount" form:"amount"`
}

// MockModeRequest is the body of POST /mock-mode. The pointer
// distinguishes a missing flag from an explicit false.
type MockModeRequest struct {
	IsEnabled *bool `json:"isEnabled"`
}
