package schema

import (
	"fmt"
	"strings"
)

// FilterType identifies a tool filter operation.
type FilterType string

const (
	FilterOnly        FilterType = "only"
	FilterExcept      FilterType = "except"
	FilterTags        FilterType = "tags"
	FilterWithoutTags FilterType = "without-tags"
	FilterToolsets    FilterType = "toolsets"
)

var validFilterTypes = []FilterType{FilterOnly, FilterExcept, FilterTags, FilterWithoutTags, FilterToolsets}

// ParseFilterSpec parses a command-line filter specification of the form
// "type:value1,value2" (e.g. "tags:api,database").
func ParseFilterSpec(spec string) (FilterType, []string, error) {
	idx := strings.Index(spec, ":")
	if spec == "" || idx < 0 {
		return "", nil, fmt.Errorf(
			"invalid filter specification %q: expected format 'type:value1,value2,...' where type is one of: %s",
			spec, filterTypeNames())
	}

	filterType := FilterType(strings.TrimSpace(spec[:idx]))
	valid := false
	for _, t := range validFilterTypes {
		if filterType == t {
			valid = true
			break
		}
	}
	if !valid {
		return "", nil, fmt.Errorf("invalid filter type %q: valid types are: %s", filterType, filterTypeNames())
	}

	var values []string
	for _, v := range strings.Split(spec[idx+1:], ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return "", nil, fmt.Errorf("no values provided for filter type %q", filterType)
	}

	return filterType, values, nil
}

// ApplyFilterSpec parses a filter specification and applies it to the
// client's tool set.
func ApplyFilterSpec(c *Client, spec string) ([]Tool, error) {
	filterType, values, err := ParseFilterSpec(spec)
	if err != nil {
		return nil, err
	}

	switch filterType {
	case FilterOnly:
		return c.Only(values), nil
	case FilterExcept:
		return c.Without(values), nil
	case FilterTags:
		return c.Tags(values), nil
	case FilterWithoutTags:
		return c.WithoutTags(values), nil
	case FilterToolsets:
		return c.Toolsets(values), nil
	default:
		return nil, fmt.Errorf("unsupported filter type %q", filterType)
	}
}

func filterTypeNames() string {
	names := make([]string, len(validFilterTypes))
	for i, t := range validFilterTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
