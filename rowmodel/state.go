package rowmodel

// Operator names a filter comparison. Unknown operator strings fail
// closed: Matches returns false rather than erroring, which excludes the
// row from results.
type Operator string

// Filter operators.
const (
	OpEquals         Operator = "eq"
	OpNotEquals      Operator = "neq"
	OpContains       Operator = "contains"
	OpStartsWith     Operator = "starts-with"
	OpGreaterThan    Operator = "gt"
	OpGreaterOrEqual Operator = "gte"
	OpLessThan       Operator = "lt"
	OpLessOrEqual    Operator = "lte"
	OpEmpty          Operator = "empty"
	OpNotEmpty       Operator = "not-empty"
)

// Filter is one active filter descriptor.
type Filter struct {
	Column string
	Op     Operator
	Value  any
}

// Sort is one active sort descriptor. Earlier entries take precedence.
type Sort struct {
	Column string
	Desc   bool
}

// Pagination is the current page state.
type Pagination struct {
	PageIndex int
	PageSize  int
}

// DefaultPageSize is used when no page size has been set.
const DefaultPageSize = 10
