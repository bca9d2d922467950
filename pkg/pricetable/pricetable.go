// Package pricetable parses the loosely tab/space-separated product
// listing exported by the clinic's point-of-sale system.
package pricetable

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoHeader is returned when no line contains both "code" and "name".
var ErrNoHeader = errors.New("pricetable: header row not found")

type Product struct {
	ID       int
	Code     string
	Name     string
	Category string
	Price    float64
	Stock    int
}

const defaultCategory = "Others"

var (
	multiSpaceRe = regexp.MustCompile(`\s{2,}`)
	tokenSplitRe = regexp.MustCompile(`\t|\s{2,}`)
	priceJunkRe  = regexp.MustCompile(`[,\s]`)
	stockJunkRe  = regexp.MustCompile(`[^-0-9]`)
)

// Parse converts the raw table text into products in input order with
// sequential ids starting at 1. Individual rows that cannot be mapped
// to columns are skipped, not reported.
func Parse(text string) ([]Product, error) {
	lines := dataLines(text)

	start := headerIndex(lines)
	if start < 0 {
		return nil, ErrNoHeader
	}

	var products []Product
	for _, line := range lines[start:] {
		row, ok := parseRow(line)
		if !ok {
			continue
		}
		row.ID = len(products) + 1
		products = append(products, row)
	}
	return products, nil
}

func dataLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(strings.TrimSuffix(l, "\r"))
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// headerIndex returns the index of the first data line, or -1.
func headerIndex(lines []string) int {
	for i, l := range lines {
		low := strings.ToLower(l)
		if strings.Contains(low, "code") && strings.Contains(low, "name") {
			return i + 1
		}
	}
	return -1
}

func parseRow(line string) (Product, bool) {
	var code, name, category, priceText, stockText string

	cols := splitColumns(line)
	switch {
	case len(cols) >= 7:
		code, name, category = cols[2], cols[3], cols[4]
		priceText, stockText = cols[5], cols[6]
	case len(cols) == 6:
		code, name, category = cols[1], cols[2], cols[3]
		priceText, stockText = cols[4], cols[5]
	default:
		toks := tokenize(line)
		if len(toks) < 5 {
			return Product{}, false
		}
		code = toks[1]
		name = strings.Join(toks[2:len(toks)-3], " ")
		category = toks[len(toks)-3]
		priceText = toks[len(toks)-2]
		stockText = toks[len(toks)-1]
	}

	if category == "" {
		category = defaultCategory
	}

	return Product{
		Code:     code,
		Name:     name,
		Category: category,
		Price:    parsePrice(priceText),
		Stock:    parseStock(stockText),
	}, true
}

// splitColumns splits on tabs; a line without tabs falls back to runs
// of two or more spaces.
func splitColumns(line string) []string {
	cols := strings.Split(line, "\t")
	if len(cols) == 1 {
		cols = multiSpaceRe.Split(line, -1)
	}
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}
	return cols
}

// tokenize is the best-effort split for malformed rows: tabs or double
// spaces, empty tokens dropped.
func tokenize(line string) []string {
	raw := tokenSplitRe.Split(line, -1)
	toks := raw[:0]
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t != "" {
			toks = append(toks, t)
		}
	}
	return toks
}

func parsePrice(s string) float64 {
	s = priceJunkRe.ReplaceAllString(s, "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseStock(s string) int {
	s = stockJunkRe.ReplaceAllString(s, "")
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
