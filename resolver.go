package paramx

import (
	"net/http"
	"strings"

	"github.com/samber/lo"
)

// Fold tells which standalone categories count as request parameters for a verb.
type Fold struct {
	Query bool
	Form  bool
}

// FoldFor returns the fold rule of the HTTP method. Query parameters are request
// parameters for every verb; form parameters only for verbs that carry a form-encoded
// body. Unknown verbs behave like GET.
func FoldFor(method string) Fold {
	switch strings.ToUpper(method) {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return Fold{Query: true, Form: true}
	default:
		return Fold{Query: true}
	}
}

// Resolved holds the final parameters of every category for one request.
type Resolved struct {
	Method  string
	Path    Params
	Query   Params
	Form    Params
	Request Params
}

// Category returns the resolved parameters of the category.
func (r *Resolved) Category(category Category) Params {
	switch category {
	case Path:
		return r.Path
	case Query:
		return r.Query
	case Form:
		return r.Form
	default:
		return r.Request
	}
}

// Resolve applies the policy to the accumulated submissions. Every category is resolved
// on its own; Request additionally takes in query and form submissions according to
// FoldFor(method), after its own.
func Resolve(acc *Accumulator, policy Policy, method string) *Resolved {
	fold := FoldFor(method)

	request := acc.of(Request)
	if fold.Query {
		request = append(request, acc.of(Query)...)
	}
	if fold.Form {
		request = append(request, acc.of(Form)...)
	}

	return &Resolved{
		Method:  strings.ToUpper(method),
		Path:    collapse(acc.of(Path), policy.Strategy(Path)),
		Query:   collapse(acc.of(Query), policy.Strategy(Query)),
		Form:    collapse(acc.of(Form), policy.Strategy(Form)),
		Request: collapse(request, policy.Strategy(Request)),
	}
}

// collapse groups the submissions by key and applies the strategy to each group.
func collapse(submissions []Submission, strategy UpdateStrategy) Params {
	keys := lo.Uniq(lo.Map(submissions, func(s Submission, _ int) string {
		return s.Key
	}))
	grouped := lo.GroupBy(submissions, func(s Submission) string {
		return s.Key
	})

	return Params{
		entries: lo.Map(keys, func(key string, _ int) Entry {
			values := lo.Map(grouped[key], func(s Submission, _ int) string {
				return s.Value
			})
			if strategy == Replace {
				values = values[len(values)-1:]
			}
			return Entry{Key: key, Values: values}
		}),
	}
}
