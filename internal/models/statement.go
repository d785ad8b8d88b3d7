package models

// StatementHeader holds the scalar fields pulled from a credit-card
// statement. Every field is optional: an empty string means the pattern
// for that field did not match, which is a normal outcome.
type StatementHeader struct {
	HolderName           string `json:"holderName,omitempty"`
	Address              string `json:"address,omitempty"`
	CardProductName      string `json:"cardProductName,omitempty"`
	MaskedCardNumber     string `json:"maskedCardNumber,omitempty"`
	CreditLimit          string `json:"creditLimit,omitempty"`
	AvailableCreditLimit string `json:"availableCreditLimit,omitempty"`
	AvailableCashLimit   string `json:"availableCashLimit,omitempty"`
	TotalPaymentDue      string `json:"totalPaymentDue,omitempty"`
	MinPaymentDue        string `json:"minPaymentDue,omitempty"`
	StatementPeriod      string `json:"statementPeriod,omitempty"`
	PaymentDueDate       string `json:"paymentDueDate,omitempty"`
	StatementDate        string `json:"statementDate,omitempty"`
}

// TransactionRecord is one row of the statement's transaction table,
// in statement order. All fields are strings; Amount is a decimal string
// with thousands separators removed.
type TransactionRecord struct {
	Date     string `json:"date"`
	Details  string `json:"details"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

// StatementResult is the sole output of the extraction pipeline. Identity
// is assigned by the persistence layer, never here.
type StatementResult struct {
	StatementHeader
	Transactions []TransactionRecord `json:"transactions"`
}
