package domain

// Method identifies which extraction strategy produced a FieldMap.
type Method string

const (
	MethodAI       Method = "AI"
	MethodTemplate Method = "Template"
	MethodRegex    Method = "Regex"
)

// ColumnType tags an export column for caller-side formatting.
type ColumnType string

const (
	ColumnText   ColumnType = "text"
	ColumnMoney  ColumnType = "money"
	ColumnDate   ColumnType = "date"
	ColumnNumber ColumnType = "number"
)
