package apiresource

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/SierraSoftworks/connor"
	"github.com/go-json-experiment/json"

	"github.com/fulldump/dbjson/service"
)

var ErrInvalidQuery = errors.New("invalid query")

// traverse applies the query string to a list of items. Parameters starting
// with '_' are options (_start, _limit), every other parameter is an equality
// condition on the field with the same name, repeated parameters match any
// of their values.
func traverse(items []service.Item, query url.Values) ([]service.Item, error) {

	filter := map[string]interface{}{}
	skip := 0
	limit := -1

	for key, values := range query {
		switch {
		case key == "_start":
			skip = queryInt(values, 0)
		case key == "_limit":
			limit = queryInt(values, -1)
		case strings.HasPrefix(key, "_"):
			// unsupported option
		case len(values) == 1:
			filter[key] = queryValue(values[0])
		default:
			in := make([]interface{}, len(values))
			for i, value := range values {
				in[i] = queryValue(value)
			}
			filter[key] = map[string]interface{}{"$in": in}
		}
	}

	hasFilter := len(filter) > 0

	result := []service.Item{}
	for _, item := range items {

		if limit == 0 {
			break
		}

		if hasFilter {
			match, err := connor.Match(filter, item)
			if err != nil {
				return nil, fmt.Errorf("%w: match: %w", ErrInvalidQuery, err)
			}
			if !match {
				continue
			}
		}

		if skip > 0 {
			skip--
			continue
		}

		limit--
		result = append(result, item)
	}

	return result, nil
}

// queryValue reads numbers, booleans and null as JSON, anything else is a
// plain string.
func queryValue(s string) interface{} {
	var value interface{}
	err := json.Unmarshal([]byte(s), &value)
	if err != nil {
		return s
	}
	switch value.(type) {
	case map[string]interface{}, []interface{}:
		return s
	}
	return value
}

func queryInt(values []string, fallback int) int {
	n, err := strconv.Atoi(values[0])
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
