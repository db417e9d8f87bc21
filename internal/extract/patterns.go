package extract

import "regexp"

// RuleKind determines how a pattern's match is turned into field values.
type RuleKind string

const (
	// KindScalar captures a single value from one capture group.
	KindScalar RuleKind = "scalar"
	// KindPairedDateRange captures two values (a From/To pair) from one
	// match with two capture groups.
	KindPairedDateRange RuleKind = "paired-date-range"
	// KindPresenceBoolean sets the field to false when a negative-assertion
	// phrase is present, and leaves it nil when absent. Absence of the
	// phrase is not proof the charge applies, so it never produces true.
	KindPresenceBoolean RuleKind = "presence-boolean"
	// KindLiteralMatch records the matched literal itself as the value.
	KindLiteralMatch RuleKind = "literal-match"
)

// Hint tags a field for post-extraction normalization.
type Hint string

const (
	HintNone    Hint = ""
	HintDate    Hint = "date"
	HintNumeric Hint = "numeric"
)

// Rule is one entry in the pattern library: a field key, a compiled regex,
// capture semantics, and a normalization hint.
type Rule struct {
	Field       string
	Kind        RuleKind
	Pattern     *regexp.Regexp
	SecondField string // paired-date-range only: key for the second capture
	Hint        Hint
}

// library is the ordered catalog of generic extraction rules. Matching is
// case-insensitive and first-match-wins per field. Patterns lean on \s so
// they tolerate values wrapped across lines in the PDF text layer.
var library = []Rule{
	// Invoice metadata
	// "No|Number" is mandatory: with it optional the pattern would latch
	// onto the "Tax Invoice" heading and capture the next word.
	{Field: "invoiceNumber", Kind: KindScalar,
		Pattern: regexp.MustCompile(`(?i)Invoice\s*(?:Number|No)\s*[:.]?\s*([A-Z0-9][A-Z0-9/-]*)`)},
	{Field: "billDate", Kind: KindScalar, Hint: HintDate,
		Pattern: regexp.MustCompile(`(?i)(?:Bill|Invoice)\s*(?:Cycle\s*)?Date[:.\s]*(\d{2}\.?\d{2}\.?\d{2,4})`)},
	{Field: "dueDate", Kind: KindScalar, Hint: HintDate,
		Pattern: regexp.MustCompile(`(?i)Due\s*Date[:.\s]*(\d{2}\.?\d{2}\.?\d{2,4})`)},
	{Field: "relationshipNumber", Kind: KindScalar,
		Pattern: regexp.MustCompile(`(?i)Relationship\s*(?:Number|No)?[:.\s]*(\d+)`)},
	{Field: "controlNumber", Kind: KindScalar,
		Pattern: regexp.MustCompile(`(?i)Control\s*Number\s*[:.]?\s*(\d+)`)},
	{Field: "poNumber", Kind: KindScalar,
		Pattern: regexp.MustCompile(`(?i)(?:PO\s*Number|Purchase\s*Order)\s*(?:No\.?)?\s*[:.]?\s*([A-Z0-9][A-Z0-9/-]*)`)},
	{Field: "placeOfSupply", Kind: KindScalar,
		Pattern: regexp.MustCompile(`(?i)Place\s*of\s*Supply\s*[:.]?\s*([^\n]+)`)},

	// Amounts
	{Field: "totalPayable", Kind: KindScalar, Hint: HintNumeric,
		Pattern: regexp.MustCompile(`(?i)TOTAL\s*PAYABLE\s*[:.]?\s*(?:Rs\.?|INR)?\s*([0-9,]+\.?[0-9]{0,2})`)},
	{Field: "subTotal", Kind: KindScalar, Hint: HintNumeric,
		Pattern: regexp.MustCompile(`(?i)(?:Sub\s*total|Total\s*taxable\s*charges)\s*[:.]?\s*([0-9,]+\.?[0-9]{0,2})`)},
	{Field: "taxableValue", Kind: KindScalar, Hint: HintNumeric,
		Pattern: regexp.MustCompile(`(?i)Taxable\s*(?:Value|Amount)\s*[:.]?\s*([0-9,]+\.?[0-9]{0,2})`)},
	{Field: "tax", Kind: KindScalar, Hint: HintNumeric,
		Pattern: regexp.MustCompile(`(?i)\bTax\s*[:.]?\s*([0-9,]+\.?[0-9]{0,2})`)},
	{Field: "recurringCharges", Kind: KindScalar, Hint: HintNumeric,
		Pattern: regexp.MustCompile(`(?i)Recurring\s*charges\s*[:.]?\s*([0-9,]+\.?[0-9]{0,2})`)},
	{Field: "oneTimeCharges", Kind: KindScalar, Hint: HintNumeric,
		Pattern: regexp.MustCompile(`(?i)One\s*time\s*charges\s*[:.]?\s*([0-9,]+\.?[0-9]{0,2})`)},
	{Field: "usageCharges", Kind: KindScalar, Hint: HintNumeric,
		Pattern: regexp.MustCompile(`(?i)Usage\s*charges\s*[:.]?\s*([0-9,]+\.?[0-9]{0,2})`)},
	{Field: "roundOff", Kind: KindScalar, Hint: HintNumeric,
		Pattern: regexp.MustCompile(`(?i)Round(?:ed)?\s*Off\s*[:.]?\s*\(?(-?[0-9,]+\.?[0-9]{0,2})\)?`)},

	// Tax breakdown
	{Field: "cgst", Kind: KindScalar, Hint: HintNumeric,
		Pattern: regexp.MustCompile(`(?i)Central\s*GST\s*@\s*([0-9.]+)\s*%`)},
	{Field: "sgst", Kind: KindScalar, Hint: HintNumeric,
		Pattern: regexp.MustCompile(`(?i)State\s*GST\s*@\s*([0-9.]+)\s*%`)},
	{Field: "igst", Kind: KindScalar, Hint: HintNumeric,
		Pattern: regexp.MustCompile(`(?i)Integrated\s*GST\s*@\s*([0-9.]+)\s*%`)},
	{Field: "cgstAmount", Kind: KindScalar, Hint: HintNumeric,
		Pattern: regexp.MustCompile(`(?i)CGST\s*(?:@\s*[0-9.]+\s*%)?\s*[:.]?\s*([0-9,]+\.[0-9]{2})`)},
	{Field: "sgstAmount", Kind: KindScalar, Hint: HintNumeric,
		Pattern: regexp.MustCompile(`(?i)SGST\s*(?:@\s*[0-9.]+\s*%)?\s*[:.]?\s*([0-9,]+\.[0-9]{2})`)},
	{Field: "igstAmount", Kind: KindScalar, Hint: HintNumeric,
		Pattern: regexp.MustCompile(`(?i)IGST\s*(?:@\s*[0-9.]+\s*%)?\s*[:.]?\s*([0-9,]+\.[0-9]{2})`)},
	{Field: "reverseCharge", Kind: KindPresenceBoolean,
		Pattern: regexp.MustCompile(`(?i)No\s+Tax\s+is\s+payable\s+under\s+reverse\s+charge`)},
	{Field: "taxName", Kind: KindLiteralMatch,
		Pattern: regexp.MustCompile(`(?i)\b(GST|VAT)\b`)},
	{Field: "currencyCode", Kind: KindLiteralMatch,
		Pattern: regexp.MustCompile(`\b(INR|USD|EUR|GBP)\b`)},

	// Vendor / company details
	{Field: "companyName", Kind: KindScalar,
		Pattern: regexp.MustCompile(`(?i)Company\s*Name\s*[:.]?\s*\.?\s*([^\n]+)`)},
	{Field: "vendorName", Kind: KindScalar,
		Pattern: regexp.MustCompile(`(?i)(?:Vendor|Supplier)\s*Name\s*[:.]?\s*([^\n]+)`)},
	{Field: "gstin", Kind: KindScalar,
		Pattern: regexp.MustCompile(`(?i)GSTIN(?:/GSTIN_ISD)?(?:/UIN)?(?:\s*No)?[:.\s]*([0-9A-Z]{15})`)},
	{Field: "pan", Kind: KindScalar,
		Pattern: regexp.MustCompile(`(?i)\bPAN\s*(?:No)?[:.\s]*([A-Z]{5}[0-9]{4}[A-Z])`)},
	{Field: "cin", Kind: KindScalar,
		Pattern: regexp.MustCompile(`(?i)\bCIN\s*[:.\s]*([A-Z0-9]{21})`)},
	{Field: "hsnSac", Kind: KindScalar,
		Pattern: regexp.MustCompile(`(?i)(?:HSN/SAC|HSN|SAC)\s*(?:Code)?\s*[:.]?\s*([0-9]{4,8})`)},
	{Field: "email", Kind: KindScalar,
		Pattern: regexp.MustCompile(`(?i)E-?mail\s*(?:ID)?\s*[:.]?\s*([A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,})`)},
	{Field: "website", Kind: KindScalar,
		Pattern: regexp.MustCompile(`(?i)Website\s*[:.]?\s*((?:https?://|www\.)\S+)`)},

	// Service / circuit details
	{Field: "circuitId", Kind: KindScalar,
		Pattern: regexp.MustCompile(`(?i)Circuit\s*ID\s*[:.]?\s*([A-Z0-9][A-Z0-9/-]*)`)},
	{Field: "serviceId", Kind: KindScalar,
		Pattern: regexp.MustCompile(`(?i)Service\s*ID\s*[:.]?\s*([A-Z0-9][A-Z0-9/-]*)`)},
	{Field: "bandwidth", Kind: KindScalar, Hint: HintNumeric,
		Pattern: regexp.MustCompile(`(?i)(?:CIR\s*)?Bandwidth\s*[:.]?\s*([0-9]+)\s*Mbps`)},
	{Field: "planName", Kind: KindScalar,
		Pattern: regexp.MustCompile(`(?i)Plan\s*Name\s*[:.]?\s*([^\n]+)`)},
	{Field: "billingPeriodFrom", Kind: KindPairedDateRange, SecondField: "billingPeriodTo", Hint: HintDate,
		Pattern: regexp.MustCompile(`(?i)(?:Billing|Bill|Service)\s*Period\s*(?:From)?\s*[:.]?\s*(\d{2}\.\d{2}\.\d{2,4})\s*(?:to|-|–)\s*(\d{2}\.\d{2}\.\d{2,4})`)},

	// Payment / bank details
	{Field: "bankName", Kind: KindScalar,
		Pattern: regexp.MustCompile(`(?i)Bank\s*Name\s*[:.]?\s*([^\n]+)`)},
	{Field: "bankAccountNumber", Kind: KindScalar,
		Pattern: regexp.MustCompile(`(?i)A/?c(?:count)?\s*(?:No|Number)\s*[:.]?\s*([0-9]{9,18})`)},
	{Field: "ifscCode", Kind: KindScalar,
		Pattern: regexp.MustCompile(`(?i)IFSC\s*(?:Code)?\s*[:.]?\s*([A-Z]{4}0[A-Z0-9]{6})`)},

	// Location / contact
	// City and State require the separator: "State GST @ 9%" must not
	// populate the state field.
	{Field: "city", Kind: KindScalar,
		Pattern: regexp.MustCompile(`(?i)City\s*[:.]\s*([A-Za-z][A-Za-z .]*)`)},
	{Field: "state", Kind: KindScalar,
		Pattern: regexp.MustCompile(`(?i)State\s*[:.]\s*([A-Za-z][A-Za-z .]*)`)},
	{Field: "pin", Kind: KindScalar,
		Pattern: regexp.MustCompile(`(?i)(?:PIN\s*Code|Pincode|PIN)\s*[:.]?\s*([0-9]{6})`)},
	{Field: "contactPerson", Kind: KindScalar,
		Pattern: regexp.MustCompile(`(?i)Contact\s*Person\s*[:.]?\s*([^\n]+)`)},
	{Field: "contactNumber", Kind: KindScalar,
		Pattern: regexp.MustCompile(`(?i)(?:Contact|Phone|Mobile)\s*(?:No|Number)?\s*[:.]?\s*(\+?[0-9][0-9 -]{8,14})`)},
}

// addressLabels are the labels scanned for address blocks. Each address
// field captures everything between its label and the next known boundary
// label (or end of text), with internal whitespace collapsed.
var addressLabels = []struct {
	Field string
	Label string
}{
	{"shipToAddress", "Ship To"},
	{"billToAddress", "Bill To"},
	{"installationAddress", "Installation Address"},
}

// addressBoundaries terminate an address scan. Besides the address labels
// themselves, section headers that commonly follow an address block.
var addressBoundaries = []string{
	"Ship To", "Bill To", "Installation Address",
	"City:", "Description", "GSTIN",
}

// Keys returns every field key the generic extractor produces, in library
// order. Generic extraction is total over this set: each key is present in
// the result, as a value or nil.
func Keys() []string {
	keys := make([]string, 0, len(library)+len(addressLabels)+2)
	for _, r := range library {
		keys = append(keys, r.Field)
		if r.Kind == KindPairedDateRange {
			keys = append(keys, r.SecondField)
		}
	}
	for _, a := range addressLabels {
		keys = append(keys, a.Field)
	}
	return keys
}

// DateFields returns the field keys normalized as dates.
func DateFields() []string {
	var keys []string
	for _, r := range library {
		if r.Hint != HintDate {
			continue
		}
		keys = append(keys, r.Field)
		if r.Kind == KindPairedDateRange {
			keys = append(keys, r.SecondField)
		}
	}
	return keys
}

// NumericFields returns the field keys normalized as numbers.
func NumericFields() []string {
	var keys []string
	for _, r := range library {
		if r.Hint == HintNumeric {
			keys = append(keys, r.Field)
		}
	}
	return keys
}
