package domain

import "strings"

// Record is one raw record returned by a domain search.
// The set of implementations is closed; each variant maps itself
// into the uniform SearchResult shown in the merged list.
type Record interface {
	// Domain reports which domain the record belongs to.
	Domain() DomainType

	// RecordID returns the backend identifier of the record.
	RecordID() int64

	// Result projects the record into a SearchResult.
	Result() SearchResult

	sealed()
}

// Mapping placeholders for absent fields.
const (
	NoEmail       = "No email"
	NoPhone       = "No phone"
	NoDescription = "No description"
	NoClient      = "No client"
	ZeroAmount    = "0.00"

	defaultActivityType  = "activity"
	defaultActivityTitle = "Financial Activity"
	subtitleSeparator    = " • "
)

// ClientRecord is a customer of the business.
type ClientRecord struct {
	ID    int64
	Name  string
	Email string
	Phone string
}

// Domain implements Record.
func (ClientRecord) Domain() DomainType { return DomainClient }

// RecordID implements Record.
func (r ClientRecord) RecordID() int64 { return r.ID }

// Result implements Record.
func (r ClientRecord) Result() SearchResult {
	return newResult(DomainClient, r.ID, r.Name,
		orDefault(r.Email, NoEmail)+subtitleSeparator+orDefault(r.Phone, NoPhone))
}

func (ClientRecord) sealed() {}

// ServiceRecord is an entry of the service catalogue.
// Price is kept as the backend's decimal string.
type ServiceRecord struct {
	ID          int64
	Name        string
	Description string
	Price       string
}

// Domain implements Record.
func (ServiceRecord) Domain() DomainType { return DomainService }

// RecordID implements Record.
func (r ServiceRecord) RecordID() int64 { return r.ID }

// Result implements Record.
func (r ServiceRecord) Result() SearchResult {
	return newResult(DomainService, r.ID, r.Name,
		orDefault(r.Description, NoDescription)+subtitleSeparator+"$"+orDefault(r.Price, "0"))
}

func (ServiceRecord) sealed() {}

// QuotationRecord is a priced offer sent to a client.
type QuotationRecord struct {
	ID             int64
	Number         string
	ClientName     string
	FormattedTotal string
	TotalAmount    string
}

// Domain implements Record.
func (QuotationRecord) Domain() DomainType { return DomainQuotation }

// RecordID implements Record.
func (r QuotationRecord) RecordID() int64 { return r.ID }

// Result implements Record.
func (r QuotationRecord) Result() SearchResult {
	return newResult(DomainQuotation, r.ID, "Quotation #"+r.Number,
		billingSubtitle(r.ClientName, r.FormattedTotal, r.TotalAmount))
}

func (QuotationRecord) sealed() {}

// InvoiceRecord is a bill issued to a client.
type InvoiceRecord struct {
	ID             int64
	Number         string
	ClientName     string
	FormattedTotal string
	TotalAmount    string
}

// Domain implements Record.
func (InvoiceRecord) Domain() DomainType { return DomainInvoice }

// RecordID implements Record.
func (r InvoiceRecord) RecordID() int64 { return r.ID }

// Result implements Record.
func (r InvoiceRecord) Result() SearchResult {
	return newResult(DomainInvoice, r.ID, "Invoice #"+r.Number,
		billingSubtitle(r.ClientName, r.FormattedTotal, r.TotalAmount))
}

func (InvoiceRecord) sealed() {}

// ActivityRecord is a financial activity (expense or income entry).
type ActivityRecord struct {
	ID          int64
	Description string
	Type        string
	Amount      string
}

// Domain implements Record.
func (ActivityRecord) Domain() DomainType { return DomainExpense }

// RecordID implements Record.
func (r ActivityRecord) RecordID() int64 { return r.ID }

// Result implements Record.
func (r ActivityRecord) Result() SearchResult {
	return newResult(DomainExpense, r.ID, orDefault(r.Description, defaultActivityTitle),
		orDefault(r.Type, defaultActivityType)+subtitleSeparator+orDefault(r.Amount, ZeroAmount))
}

func (ActivityRecord) sealed() {}

func newResult(d DomainType, id int64, title, subtitle string) SearchResult {
	return SearchResult{
		ID:       id,
		Title:    title,
		Subtitle: subtitle,
		Type:     d,
		Route:    d.Route(id),
		Icon:     d.Icon(),
	}
}

func billingSubtitle(client, formatted, total string) string {
	amount := orDefault(formatted, orDefault(total, ZeroAmount))
	return orDefault(client, NoClient) + subtitleSeparator + amount
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
