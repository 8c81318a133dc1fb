// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

package documents

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var germanPrinter = message.NewPrinter(language.German)

// FormatEuro formats an amount the German way with a trailing euro sign,
// e.g. "29,00 €".
func FormatEuro(amount float64) string {
	return germanPrinter.Sprintf("%.2f €", amount)
}

// SplitAddress splits "Street 1, 12345 City" on the first comma. Without a
// comma the whole address is returned as the street line.
func SplitAddress(address string) (street, city string) {
	street, city, found := strings.Cut(address, ",")
	if !found {
		return strings.TrimSpace(address), ""
	}
	return strings.TrimSpace(street), strings.TrimSpace(city)
}

var germanMonths = [...]string{
	"Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember",
}

// LongDate formats t as "02. Januar 2006".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%02d. %s %d", t.Day(), germanMonths[t.Month()-1], t.Year())
}

// ShortDate formats t as "02.01.2006".
func ShortDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// InvoiceNumber builds "GV-YYYYMMDD-NNNN" from the issue date and a
// four-digit suffix.
func InvoiceNumber(t time.Time, suffix int) string {
	return fmt.Sprintf("GV-%s-%04d", t.Format("20060102"), suffix)
}
