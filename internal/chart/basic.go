package chart

import (
	_ "embed"
	"strings"
)

//go:embed basic.txt
var basicChart string

// Basic returns the standard multi-deck basic strategy chart.
func Basic() Chart {
	c, err := Parse(strings.NewReader(basicChart))
	if err != nil {
		panic("chart: embedded basic strategy is invalid: " + err.Error())
	}
	return c
}
