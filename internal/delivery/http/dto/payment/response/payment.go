package response

type InitiatePaymentResponse struct {
	PaymentURL    string `json:"payment_url"`
	PaymentMethod string `json:"payment_method"`
	Currency      string `json:"currency"`
	Reference     string `json:"reference"`
}

type VerifyPaymentResponse struct {
	Message   string `json:"message"`
	Reference string `json:"reference"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
