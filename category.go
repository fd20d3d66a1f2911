package paramx

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownCategory = errors.New("unknown parameter category")
	ErrUnknownStrategy = errors.New("unknown update strategy")
)

// Category is the destination a parameter is submitted for.
type Category int

const (
	// Request is the generic request parameter. Depending on the HTTP verb it also sees
	// query and form submissions, see FoldFor.
	Request Category = iota
	Query
	Form
	Path
)

// Categories lists every category in declaration order.
var Categories = []Category{Request, Query, Form, Path}

func (c Category) String() string {
	switch c {
	case Request:
		return "request"
	case Query:
		return "query"
	case Form:
		return "form"
	case Path:
		return "path"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// ParseCategory maps a category name (case-insensitive) to its Category.
func ParseCategory(name string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(strings.TrimSpace(name), c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// UpdateStrategy decides what happens to a key that is submitted more than once.
type UpdateStrategy int

const (
	// Merge keeps every submitted value, in submission order.
	Merge UpdateStrategy = iota
	// Replace keeps only the most recently submitted value.
	Replace
)

func (s UpdateStrategy) String() string {
	switch s {
	case Merge:
		return "merge"
	case Replace:
		return "replace"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy maps "merge" or "replace" (case-insensitive) to an UpdateStrategy.
func ParseStrategy(name string) (UpdateStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "merge":
		return Merge, nil
	case "replace":
		return Replace, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}
