// Package export maps extracted field maps onto the fixed tabular export
// schema and writes them as XLSX or CSV. The column list is a versioned
// contract with downstream spreadsheet consumers: changing column order or
// header text is a breaking change.
package export

import (
	"telextract/internal/domain"
)

// Column describes one export column: its stable key, the header text the
// spreadsheet consumers expect, an ordered alias chain over FieldMap keys,
// and an optional default.
//
// Defaults are business-domain assumptions for this telecom billing
// workflow (INR invoices, monthly MPLS circuits taxed as GST services) —
// they are not extracted data and not data-integrity fixes. A consumer who
// needs to tell the two apart must compare against the raw FieldMap.
type Column struct {
	Key     string
	Header  string
	Width   float64
	Type    domain.ColumnType
	Aliases []string // resolved in order; first usable value wins
	Default any      // applied when every alias is nil, missing, or empty
}

// columns is the fixed export schema, in contract order.
var columns = []Column{
	{Key: "filename", Header: "Filename", Width: 25, Type: domain.ColumnText, Aliases: []string{"filename"}},
	{Key: "billDate", Header: "Bill Date", Width: 15, Type: domain.ColumnDate, Aliases: []string{"billDate"}},
	{Key: "dueDate", Header: "Due Date", Width: 15, Type: domain.ColumnDate, Aliases: []string{"dueDate"}},
	{Key: "billId", Header: "Bill ID", Width: 20, Type: domain.ColumnText, Aliases: []string{"invoiceNumber", "billId"}},
	{Key: "vendorName", Header: "Vendor Name", Width: 25, Type: domain.ColumnText, Aliases: []string{"vendorName"}, Default: "Vodafone Idea"},
	{Key: "paymentTermsLabel", Header: "Payment Terms Label", Width: 20, Type: domain.ColumnText, Aliases: []string{"paymentTermsLabel"}, Default: "Net 30"},
	{Key: "vendorCircuitId", Header: "CF.VENDOR CIRCUIT ID", Width: 25, Type: domain.ColumnText, Aliases: []string{"circuitId"}},
	{Key: "billNumber", Header: "Bill Number", Width: 25, Type: domain.ColumnText, Aliases: []string{"invoiceNumber"}},
	{Key: "purchaseOrder", Header: "Purchase Order", Width: 25, Type: domain.ColumnText, Aliases: []string{"poNumber", "purchaseOrder"}},
	{Key: "currencyCode", Header: "Currency Code", Width: 15, Type: domain.ColumnText, Aliases: []string{"currencyCode"}, Default: "INR"},
	{Key: "subTotal", Header: "Sub Total", Width: 15, Type: domain.ColumnMoney, Aliases: []string{"subTotal"}},
	{Key: "total", Header: "Total", Width: 15, Type: domain.ColumnMoney, Aliases: []string{"totalPayable", "total"}},
	{Key: "branchId", Header: "Branch ID", Width: 15, Type: domain.ColumnText, Aliases: []string{"branchId"}, Default: "1"},
	{Key: "branchName", Header: "Branch Name", Width: 25, Type: domain.ColumnText, Aliases: []string{"branchName"}, Default: "Main Branch"},
	{Key: "itemName", Header: "Item Name", Width: 25, Type: domain.ColumnText, Aliases: []string{"itemName"}, Default: "MPLS Service"},
	{Key: "account", Header: "Account", Width: 20, Type: domain.ColumnText, Aliases: []string{"account"}},
	{Key: "description", Header: "Description", Width: 35, Type: domain.ColumnText, Aliases: []string{"description", "planName"}},
	{Key: "quantity", Header: "Quantity", Width: 12, Type: domain.ColumnNumber, Aliases: []string{"quantity"}, Default: 1.0},
	{Key: "usageUnit", Header: "Usage Unit", Width: 15, Type: domain.ColumnText, Aliases: []string{"usageUnit"}, Default: "Month"},
	{Key: "taxAmount", Header: "Tax Amount", Width: 15, Type: domain.ColumnMoney, Aliases: []string{"tax", "taxAmount"}},
	{Key: "sourceOfSupply", Header: "Source of Supply", Width: 20, Type: domain.ColumnText, Aliases: []string{"sourceOfSupply"}, Default: "India"},
	{Key: "destinationOfSupply", Header: "Destination of Supply", Width: 20, Type: domain.ColumnText, Aliases: []string{"destinationOfSupply"}, Default: "India"},
	{Key: "gstin", Header: "GST Identification Number (GSTIN)", Width: 25, Type: domain.ColumnText, Aliases: []string{"gstin"}},
	{Key: "lineItemLocationName", Header: "Line Item Location Name", Width: 25, Type: domain.ColumnText, Aliases: []string{"lineItemLocationName"}},
	{Key: "gstinIsdUin", Header: "GSTIN_ISD/UIN No", Width: 25, Type: domain.ColumnText, Aliases: []string{"gstinIsdUin"}},
	{Key: "hsnSac", Header: "HSN/SAC", Width: 15, Type: domain.ColumnText, Aliases: []string{"hsnSac"}, Default: "998414"},
	{Key: "purchaseOrderNumber", Header: "Purchase Order Number", Width: 25, Type: domain.ColumnText, Aliases: []string{"poNumber"}},
	{Key: "taxName", Header: "Tax Name", Width: 15, Type: domain.ColumnText, Aliases: []string{"taxName"}, Default: "GST"},
	{Key: "taxPercentage", Header: "Tax Percentage", Width: 15, Type: domain.ColumnNumber, Aliases: []string{"taxPercentage"}, Default: 0.18},
	{Key: "itemType", Header: "Item Type", Width: 15, Type: domain.ColumnText, Aliases: []string{"itemType"}, Default: "Service"},
	{Key: "cgstRate", Header: "CGST Rate %", Width: 12, Type: domain.ColumnNumber, Aliases: []string{"cgst"}, Default: 0.09},
	{Key: "sgstRate", Header: "SGST Rate %", Width: 12, Type: domain.ColumnNumber, Aliases: []string{"sgst"}, Default: 0.09},
	{Key: "igstRate", Header: "IGST Rate %", Width: 12, Type: domain.ColumnNumber, Aliases: []string{"igst", "igstRate"}, Default: 0.0},
	{Key: "cgstFcy", Header: "CGST (FCY)", Width: 15, Type: domain.ColumnMoney, Aliases: []string{"cgstFcy"}},
	{Key: "sgstFcy", Header: "SGST (FCY)", Width: 15, Type: domain.ColumnMoney, Aliases: []string{"sgstFcy"}},
	{Key: "igstFcy", Header: "IGST (FCY)", Width: 15, Type: domain.ColumnMoney, Aliases: []string{"igstFcy"}},
	{Key: "cgst", Header: "CGST", Width: 15, Type: domain.ColumnMoney, Aliases: []string{"cgstAmount"}},
	{Key: "sgst", Header: "SGST", Width: 15, Type: domain.ColumnMoney, Aliases: []string{"sgstAmount"}},
	{Key: "igst", Header: "IGST", Width: 15, Type: domain.ColumnMoney, Aliases: []string{"igstAmount"}},
	{Key: "roundOff", Header: "CF.Round Off", Width: 12, Type: domain.ColumnMoney, Aliases: []string{"roundOff"}},
	{Key: "poArcValue", Header: "CF.PO ARC VALUE - Rs", Width: 18, Type: domain.ColumnMoney, Aliases: []string{"poArcValue", "subTotal"}},
	{Key: "chargesOfPeriods", Header: "Charges of the Periods", Width: 25, Type: domain.ColumnText, Aliases: []string{"chargesOfPeriods"}},
	{Key: "bandwidthMbps", Header: "CF.Bandwidth (Mbps)", Width: 18, Type: domain.ColumnNumber, Aliases: []string{"bandwidth", "bandwidthMbps"}},
	{Key: "relationshipNumber", Header: "Relationship Number", Width: 20, Type: domain.ColumnText, Aliases: []string{"relationshipNumber"}},
	{Key: "controlNumber", Header: "Control Number", Width: 18, Type: domain.ColumnText, Aliases: []string{"controlNumber"}},
	{Key: "circuitId", Header: "Circuit ID", Width: 25, Type: domain.ColumnText, Aliases: []string{"circuitId"}},
	{Key: "companyName", Header: "Company Name", Width: 30, Type: domain.ColumnText, Aliases: []string{"companyName"}},
	{Key: "city", Header: "City", Width: 20, Type: domain.ColumnText, Aliases: []string{"city"}},
	{Key: "state", Header: "State", Width: 20, Type: domain.ColumnText, Aliases: []string{"state"}},
	{Key: "pin", Header: "PIN", Width: 12, Type: domain.ColumnText, Aliases: []string{"pin"}},
	{Key: "contactPerson", Header: "Contact Person", Width: 25, Type: domain.ColumnText, Aliases: []string{"contactPerson"}},
	{Key: "contactNumber", Header: "Contact Number", Width: 18, Type: domain.ColumnText, Aliases: []string{"contactNumber"}},
	{Key: "installationAddress", Header: "Installation Address", Width: 40, Type: domain.ColumnText, Aliases: []string{"installationAddress"}},
}

// Columns returns the export schema in contract order.
func Columns() []Column {
	out := make([]Column, len(columns))
	copy(out, columns)
	return out
}

// MapToRow resolves each export column against the field map via its alias
// chain, applying column defaults when every alias comes up empty. The
// input is never mutated; the returned row is keyed by column key.
//
// chargesOfPeriods is derived from the billing period pair when no direct
// value exists.
func MapToRow(fields domain.FieldMap, filename string) domain.FieldMap {
	row := make(domain.FieldMap, len(columns))

	for _, col := range columns {
		var value any
		for _, alias := range col.Aliases {
			if v, ok := fields[alias]; ok && usable(v) {
				value = v
				break
			}
		}
		if value == nil && col.Default != nil {
			value = col.Default
		}
		row[col.Key] = value
	}

	if row["filename"] == nil && filename != "" {
		row["filename"] = filename
	}

	if row["chargesOfPeriods"] == nil {
		from, okFrom := fields["billingPeriodFrom"].(string)
		to, okTo := fields["billingPeriodTo"].(string)
		if okFrom && okTo && from != "" && to != "" {
			row["chargesOfPeriods"] = from + " to " + to
		}
	}

	return row
}

// usable reports whether a field value can satisfy a column: nil and empty
// strings fall through to the next alias or the default.
func usable(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok && s == "" {
		return false
	}
	return true
}
