package pdf

import "github.com/shopspring/decimal"

func FormatBRL(d decimal.Decimal) string { return formatBRL(d) }
