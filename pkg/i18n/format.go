package i18n

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var arabicMonths = [...]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

func printer(lang Language) *message.Printer {
	return message.NewPrinter(lang.Tag())
}

// FormatNumber groups digits the way the locale does, no fraction digits.
func FormatNumber(n int64, lang Language) string {
	return printer(lang).Sprintf("%v", number.Decimal(n))
}

// FormatCurrency renders a USD amount rounded to whole dollars.
func FormatCurrency(amount decimal.Decimal, lang Language) string {
	whole := amount.Round(0).IntPart()
	sign := ""
	if whole < 0 {
		sign = "-"
		whole = -whole
	}
	digits := FormatNumber(whole, lang)
	if lang.IsRTL() {
		return fmt.Sprintf("%s%s US$", sign, digits)
	}
	return fmt.Sprintf("%s$%s", sign, digits)
}

// FormatDate renders the long date form: "January 20, 2024" or "٢٠ يناير ٢٠٢٤".
func FormatDate(t time.Time, lang Language) string {
	if !lang.IsRTL() {
		return t.Format("January 2, 2006")
	}
	p := printer(lang)
	day := p.Sprintf("%v", number.Decimal(t.Day(), number.NoSeparator()))
	year := p.Sprintf("%v", number.Decimal(t.Year(), number.NoSeparator()))
	return fmt.Sprintf("%s %s %s", day, arabicMonths[t.Month()-1], year)
}

// FormatTime renders a 12-hour clock with two-digit hour and minute.
func FormatTime(t time.Time, lang Language) string {
	if !lang.IsRTL() {
		return t.Format("03:04 PM")
	}
	p := printer(lang)
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	period := "ص"
	if t.Hour() >= 12 {
		period = "م"
	}
	hh := p.Sprintf("%v", number.Decimal(hour, number.MinIntegerDigits(2)))
	mm := p.Sprintf("%v", number.Decimal(t.Minute(), number.MinIntegerDigits(2)))
	return fmt.Sprintf("%s:%s %s", hh, mm, period)
}

// FormatPercent renders a 0-100 value rounded to a whole percent.
func FormatPercent(value float64, lang Language) string {
	digits := FormatNumber(int64(math.Round(value)), lang)
	if lang.IsRTL() {
		return digits + "٪"
	}
	return digits + "%"
}
