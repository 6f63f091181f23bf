package upc

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Provider payloads have accumulated several shapes over time: the fields
// of interest appear under assorted aliases, either at the top level or one
// level down beneath a generic wrapper key. Extraction walks an ordered
// candidate list of objects and reads the first alias that carries a value.

var wrapperKeys = []string{"data", "result", "item", "movie", "product"}

var (
	titleAliases = []string{"title", "name"}
	imdbAliases  = []string{"imdb_id", "imdb", "imdbId"}
	yearAliases  = []string{"year", "release_year"}
)

func decodeProduct(body []byte) *Product {
	product := &Product{Raw: json.RawMessage(body)}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		product.Unresolved = true
		return product
	}

	candidates := []map[string]json.RawMessage{top}
	for _, key := range wrapperKeys {
		raw, ok := top[key]
		if !ok {
			continue
		}
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(raw, &nested); err == nil {
			candidates = append(candidates, nested)
		}
	}

	for _, candidate := range candidates {
		if product.Title == "" {
			product.Title = firstString(candidate, titleAliases)
		}
		if product.IMDbID == "" {
			product.IMDbID = firstString(candidate, imdbAliases)
		}
		if product.Year == 0 {
			product.Year = firstYear(candidate, yearAliases)
		}
	}

	if product.Title == "" && product.IMDbID == "" {
		product.Unresolved = true
	}
	return product
}

func firstString(obj map[string]json.RawMessage, aliases []string) string {
	for _, alias := range aliases {
		raw, ok := obj[alias]
		if !ok {
			continue
		}
		var value string
		if err := json.Unmarshal(raw, &value); err == nil {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

func firstYear(obj map[string]json.RawMessage, aliases []string) int {
	for _, alias := range aliases {
		raw, ok := obj[alias]
		if !ok {
			continue
		}
		var number int
		if err := json.Unmarshal(raw, &number); err == nil && number > 0 {
			return number
		}
		var text string
		if err := json.Unmarshal(raw, &text); err == nil {
			if year := parseYearText(text); year > 0 {
				return year
			}
		}
	}
	return 0
}

func parseYearText(text string) int {
	text = strings.TrimSpace(text)
	if len(text) < 4 {
		return 0
	}
	year, err := strconv.Atoi(text[:4])
	if err != nil {
		return 0
	}
	return year
}
