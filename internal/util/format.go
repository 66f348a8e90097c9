package util

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatRWF renders an integer amount as "RWF 1,234,567".
func FormatRWF(amount int64) string {
	return printer.Sprintf("RWF %d", amount)
}

// FormatDate renders a timestamp as "02 Jan, 2006".
func FormatDate(t time.Time) string {
	return t.Format("02 Jan, 2006")
}

// FormatDateTime renders a timestamp as "02 Jan, 03:04 PM".
func FormatDateTime(t time.Time) string {
	return t.Format("02 Jan, 03:04 PM")
}
