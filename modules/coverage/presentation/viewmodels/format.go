package viewmodels

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/types"
)

// FormatMoney renders a dollar amount with thousands separators. Whole amounts have
// no cents ("$450"); fractional amounts are shown to the cent ("$1,234.50").
func FormatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	d = d.Round(2)
	whole := d.Truncate(0)
	text := groupThousands(whole.String())
	if !d.Equal(whole) {
		text += "." + d.StringFixed(2)[len(whole.String())+1:]
	}
	return sign + "$" + text
}

// FormatPlain is FormatMoney without the currency sign, used for detail lines.
func FormatPlain(d decimal.Decimal) string {
	return strings.Replace(FormatMoney(d), "$", "", 1)
}

func FormatPercent(p int) string { return strconv.Itoa(p) + "%" }

func FormatDate(t types.Timestamp) string { return t.Date() }

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func statusBadge(status string) string {
	return "status-" + strings.ToLower(strings.TrimSpace(status))
}
