package domain

import "strconv"

// DomainType identifies one of the searchable record categories.
type DomainType string

// The searchable record categories. The set is closed.
const (
	// DomainClient is the client (customer) domain.
	DomainClient DomainType = "client"

	// DomainService is the service catalogue domain.
	DomainService DomainType = "service"

	// DomainQuotation is the quotation domain.
	DomainQuotation DomainType = "quotation"

	// DomainInvoice is the invoice domain.
	DomainInvoice DomainType = "invoice"

	// DomainExpense is the financial activity domain.
	DomainExpense DomainType = "expense"
)

// Domains returns every domain in fixed issue order.
// The order doubles as the stable tie-break of the merged result list.
func Domains() []DomainType {
	return []DomainType{
		DomainClient,
		DomainService,
		DomainQuotation,
		DomainInvoice,
		DomainExpense,
	}
}

// IsValid returns true if the domain is one of the known categories.
func (d DomainType) IsValid() bool {
	return d.Order() >= 0
}

// Order returns the position of the domain in the fixed issue order, or -1.
func (d DomainType) Order() int {
	switch d {
	case DomainClient:
		return 0
	case DomainService:
		return 1
	case DomainQuotation:
		return 2
	case DomainInvoice:
		return 3
	case DomainExpense:
		return 4
	default:
		return -1
	}
}

// String returns the string representation.
func (d DomainType) String() string {
	return string(d)
}

// Icon returns the glyph displayed next to results of this domain.
func (d DomainType) Icon() string {
	switch d {
	case DomainClient:
		return "👤"
	case DomainService:
		return "⚙️"
	case DomainQuotation:
		return "📄"
	case DomainInvoice:
		return "🧾"
	case DomainExpense:
		return "💰"
	default:
		return "•"
	}
}

// RoutePrefix returns the navigation prefix of the domain, including the trailing slash.
func (d DomainType) RoutePrefix() string {
	switch d {
	case DomainClient:
		return "/clients/"
	case DomainService:
		return "/services/"
	case DomainQuotation:
		return "/quotations/"
	case DomainInvoice:
		return "/invoices/"
	case DomainExpense:
		return "/financial/activities/"
	default:
		return "/"
	}
}

// Route returns the navigation target for the record with the given id.
func (d DomainType) Route(id int64) string {
	return d.RoutePrefix() + strconv.FormatInt(id, 10)
}

// Label returns a human-readable plural label.
func (d DomainType) Label() string {
	switch d {
	case DomainClient:
		return "Clients"
	case DomainService:
		return "Services"
	case DomainQuotation:
		return "Quotations"
	case DomainInvoice:
		return "Invoices"
	case DomainExpense:
		return "Financial activities"
	default:
		return unknownDescription
	}
}

// ParseDomainType converts a string into a DomainType.
func ParseDomainType(s string) (DomainType, error) {
	d := DomainType(s)
	if !d.IsValid() {
		return "", ErrUnsupportedType
	}
	return d, nil
}
