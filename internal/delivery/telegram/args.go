package telegram

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"shift-tracker/internal/domain"
)

var (
	errRateUsage     = errors.New("Usage: /rate <walmart|canes> <hourly rate>")
	errTakeHomeUsage = errors.New("Usage: /takehome <percent between 1 and 100>")
)

func ParseRateArgs(args []string) (domain.Source, float64, error) {
	if len(args) != 2 {
		return "", 0, errRateUsage
	}
	var source domain.Source
	for _, s := range domain.Sources() {
		if strings.EqualFold(args[0], string(s)) {
			source = s
		}
	}
	if source == "" {
		return "", 0, errRateUsage
	}
	rate, err := parseNumber(args[1])
	if err != nil || rate <= 0 {
		return "", 0, errRateUsage
	}
	return source, rate, nil
}

func ParseTakeHomeArgs(args []string) (float64, error) {
	if len(args) != 1 {
		return 0, errTakeHomeUsage
	}
	pct, err := parseNumber(strings.TrimSuffix(args[0], "%"))
	if err != nil || pct <= 0 || pct > 100 {
		return 0, errTakeHomeUsage
	}
	return pct, nil
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimPrefix(s, "$"), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("not a finite number")
	}
	return v, nil
}
