// =============================================================================
// UPN to EPC Converter - UPN Record
// =============================================================================
//
// Record is the decoded form of a UPN payment order. It is read-only: Decode
// sets its fields once and callers see them through accessors. Fields is the
// mutable snapshot used for YAML output and for building records in tests.
//
// =============================================================================

package upn

// Record is a decoded UPN payment order. Fields are unexported and set once
// by Decode, so a Record cannot change after construction.
type Record struct {
	payerIBAN      string
	deposit        bool
	withdrawal     bool
	payerReference string
	payerName      string
	payerStreet    string
	payerCity      string
	amount         string
	paymentDate    string
	hasPaymentDate bool
	urgent         bool
	purposeCode    string
	purpose        string
	paymentDueDate string

	recipientIBAN      string
	recipientReference string
	recipientName      string
	recipientStreet    string
	recipientCity      string
}

// =============================================================================
// ACCESSORS
// =============================================================================

// PayerIBAN is the payer's account as scanned.
func (r *Record) PayerIBAN() string { return r.payerIBAN }

// Deposit reports whether the deposit marker is set.
func (r *Record) Deposit() bool { return r.deposit }

// Withdrawal reports whether the withdrawal marker is set.
func (r *Record) Withdrawal() bool { return r.withdrawal }

// PayerReference is the payer's reference line.
func (r *Record) PayerReference() string { return r.payerReference }

// PayerName is the payer's name.
func (r *Record) PayerName() string { return r.payerName }

// PayerStreet is the payer's street address.
func (r *Record) PayerStreet() string { return r.payerStreet }

// PayerCity is the payer's postal code and city.
func (r *Record) PayerCity() string { return r.payerCity }

// Amount is the raw amount line; see package amount for its semantics.
func (r *Record) Amount() string { return r.amount }

// PaymentDate returns the payment date and whether the line was non-empty.
func (r *Record) PaymentDate() (string, bool) { return r.paymentDate, r.hasPaymentDate }

// Urgent reports whether the urgent marker is set.
func (r *Record) Urgent() bool { return r.urgent }

// PurposeCode is the four-letter purpose code.
func (r *Record) PurposeCode() string { return r.purposeCode }

// Purpose is the free-text payment purpose.
func (r *Record) Purpose() string { return r.purpose }

// PaymentDueDate is the due date line, unparsed.
func (r *Record) PaymentDueDate() string { return r.paymentDueDate }

// RecipientIBAN is returned as scanned, including any grouping spaces.
func (r *Record) RecipientIBAN() string { return r.recipientIBAN }

// RecipientReference is the creditor reference, e.g. "SI00 2026-10".
func (r *Record) RecipientReference() string { return r.recipientReference }

// RecipientName is the beneficiary name.
func (r *Record) RecipientName() string { return r.recipientName }

// RecipientStreet is the beneficiary's street address.
func (r *Record) RecipientStreet() string { return r.recipientStreet }

// RecipientCity is the beneficiary's postal code and city.
func (r *Record) RecipientCity() string { return r.recipientCity }

// =============================================================================
// SNAPSHOT
// =============================================================================

// Fields is an exported snapshot of a Record used for display and
// serialization. Changing it does not affect the Record it came from.
type Fields struct {
	PayerIBAN          string  `yaml:"payer_iban"`
	Deposit            bool    `yaml:"deposit"`
	Withdrawal         bool    `yaml:"withdrawal"`
	PayerReference     string  `yaml:"payer_reference"`
	PayerName          string  `yaml:"payer_name"`
	PayerStreet        string  `yaml:"payer_street"`
	PayerCity          string  `yaml:"payer_city"`
	Amount             string  `yaml:"amount"`
	PaymentDate        *string `yaml:"payment_date,omitempty"`
	Urgent             bool    `yaml:"urgent"`
	PurposeCode        string  `yaml:"purpose_code"`
	Purpose            string  `yaml:"purpose"`
	PaymentDueDate     string  `yaml:"payment_due_date"`
	RecipientIBAN      string  `yaml:"recipient_iban"`
	RecipientReference string  `yaml:"recipient_reference"`
	RecipientName      string  `yaml:"recipient_name"`
	RecipientStreet    string  `yaml:"recipient_street"`
	RecipientCity      string  `yaml:"recipient_city"`
}

// Fields returns a copy of the record's values.
func (r *Record) Fields() Fields {
	f := Fields{
		PayerIBAN:          r.payerIBAN,
		Deposit:            r.deposit,
		Withdrawal:         r.withdrawal,
		PayerReference:     r.payerReference,
		PayerName:          r.payerName,
		PayerStreet:        r.payerStreet,
		PayerCity:          r.payerCity,
		Amount:             r.amount,
		Urgent:             r.urgent,
		PurposeCode:        r.purposeCode,
		Purpose:            r.purpose,
		PaymentDueDate:     r.paymentDueDate,
		RecipientIBAN:      r.recipientIBAN,
		RecipientReference: r.recipientReference,
		RecipientName:      r.recipientName,
		RecipientStreet:    r.recipientStreet,
		RecipientCity:      r.recipientCity,
	}
	if r.hasPaymentDate {
		date := r.paymentDate
		f.PaymentDate = &date
	}
	return f
}

// NewRecord builds a Record from explicit values. It exists for callers that
// hold payment data from another source and want to run it through the
// encoder; Decode is the normal constructor.
func NewRecord(f Fields) *Record {
	r := &Record{
		payerIBAN:          f.PayerIBAN,
		deposit:            f.Deposit,
		withdrawal:         f.Withdrawal,
		payerReference:     f.PayerReference,
		payerName:          f.PayerName,
		payerStreet:        f.PayerStreet,
		payerCity:          f.PayerCity,
		amount:             f.Amount,
		urgent:             f.Urgent,
		purposeCode:        f.PurposeCode,
		purpose:            f.Purpose,
		paymentDueDate:     f.PaymentDueDate,
		recipientIBAN:      f.RecipientIBAN,
		recipientReference: f.RecipientReference,
		recipientName:      f.RecipientName,
		recipientStreet:    f.RecipientStreet,
		recipientCity:      f.RecipientCity,
	}
	if f.PaymentDate != nil {
		r.paymentDate = *f.PaymentDate
		r.hasPaymentDate = true
	}
	return r
}
