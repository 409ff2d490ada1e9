package models

import "github.com/shopspring/decimal"

func init() {
	// Money columns are sent to clients as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}
