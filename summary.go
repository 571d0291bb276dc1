package main

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numbers = message.NewPrinter(language.English)

// fmtCount renders n with thousands separators.
func fmtCount(n int) string {
	return numbers.Sprintf("%d", n)
}

func fmtPercent(part, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return numbers.Sprintf("%.1f%%", 100*float64(part)/float64(total))
}
