package paramx

import "github.com/samber/lo"

// Submission is a single key/value pair as it was handed over by the caller.
type Submission struct {
	Category Category
	Key      string
	Value    string
}

// Accumulator records parameter submissions in the order they were made. It does not
// interpret them; duplicates are kept as they are meaningful for both strategies.
//
// An Accumulator belongs to one request-building sequence and is not safe for concurrent use.
type Accumulator struct {
	submissions []Submission
}

func NewAccumulator() *Accumulator {
	return new(Accumulator)
}

// AddParam adds a generic request parameter.
func (a *Accumulator) AddParam(key, value string) *Accumulator {
	return a.add(Request, key, value)
}

// AddQueryParam adds a query string parameter.
func (a *Accumulator) AddQueryParam(key, value string) *Accumulator {
	return a.add(Query, key, value)
}

// AddFormParam adds a form-encoded body parameter.
func (a *Accumulator) AddFormParam(key, value string) *Accumulator {
	return a.add(Form, key, value)
}

// AddPathParam adds a path template substitution.
func (a *Accumulator) AddPathParam(key, value string) *Accumulator {
	return a.add(Path, key, value)
}

func (a *Accumulator) add(category Category, key, value string) *Accumulator {
	a.submissions = append(a.submissions, Submission{
		Category: category,
		Key:      key,
		Value:    value,
	})
	return a
}

// Submissions returns a copy of every submission in submission order.
func (a *Accumulator) Submissions() []Submission {
	return clone(a.submissions)
}

// Len returns the number of submissions.
func (a *Accumulator) Len() int {
	return len(a.submissions)
}

// Clone creates an independent copy.
func (a *Accumulator) Clone() *Accumulator {
	return &Accumulator{submissions: clone(a.submissions)}
}

// of returns the submissions made for the category, in order.
func (a *Accumulator) of(category Category) []Submission {
	return lo.Filter(a.submissions, func(s Submission, _ int) bool {
		return s.Category == category
	})
}

func clone[T any](source []T) []T {
	if len(source) == 0 {
		return nil
	}

	newSlice := make([]T, len(source))
	copy(newSlice, source)

	return newSlice
}
