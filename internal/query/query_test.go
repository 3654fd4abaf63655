package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"campdir/pkg/apperr"
)

var testFields = Fields{
	"name":        {Column: "name", Kind: Text},
	"averageCost": {Column: "average_cost", Kind: Numeric},
	"housing":     {Column: "housing", Kind: Bool},
	"careers":     {Column: "careers", Kind: TextArray},
	"createdAt":   {Column: "created_at", Kind: Text},
}

func TestParseDefaults(t *testing.T) {
	opts, err := Parse(url.Values{}, testFields)
	require.NoError(t, err)
	require.Equal(t, DefaultPage, opts.Page)
	require.Equal(t, DefaultLimit, opts.Limit)
	require.Empty(t, opts.Filters)
	require.Empty(t, opts.Sort)
	require.Empty(t, opts.Select)
}

func TestParseBracketOperators(t *testing.T) {
	v := url.Values{}
	v.Set("averageCost[lte]", "10000")
	v.Set("careers[in]", "Business,UI/UX")
	v.Set("housing", "true")

	opts, err := Parse(v, testFields)
	require.NoError(t, err)
	require.Len(t, opts.Filters, 3)

	byField := map[string]Filter{}
	for _, f := range opts.Filters {
		byField[f.Field] = f
	}
	require.Equal(t, OpLte, byField["averageCost"].Op)
	require.Equal(t, "10000", byField["averageCost"].Value)
	require.Equal(t, OpIn, byField["careers"].Op)
	require.Equal(t, OpEq, byField["housing"].Op)
}

func TestParseUnknownFieldRejected(t *testing.T) {
	v := url.Values{}
	v.Set("password", "x")
	_, err := Parse(v, testFields)
	require.Error(t, err)
	require.Equal(t, apperr.Validation, apperr.KindOf(err))
}

// An unrecognized operator suffix is not an operator at all; the whole key is
// treated as a field name and fails the allow-list.
func TestParseUnknownOperatorRejected(t *testing.T) {
	v := url.Values{}
	v.Set("averageCost[regex]", "1")
	_, err := Parse(v, testFields)
	require.Error(t, err)
	require.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestParseSelectAndSort(t *testing.T) {
	v := url.Values{}
	v.Set("select", "name,averageCost")
	v.Set("sort", "-averageCost,name")

	opts, err := Parse(v, testFields)
	require.NoError(t, err)
	require.Equal(t, []string{"name", "averageCost"}, opts.Select)
	require.Equal(t, []SortKey{{Field: "averageCost", Desc: true}, {Field: "name"}}, opts.Sort)
}

func TestParseSortUnknownFieldRejected(t *testing.T) {
	v := url.Values{}
	v.Set("sort", "password")
	_, err := Parse(v, testFields)
	require.Error(t, err)
	require.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestParsePageAndLimitValidation(t *testing.T) {
	for _, bad := range []url.Values{
		{"page": {"0"}},
		{"page": {"-2"}},
		{"page": {"abc"}},
		{"limit": {"0"}},
		{"limit": {"x"}},
	} {
		_, err := Parse(bad, testFields)
		require.Error(t, err, "values %v", bad)
		require.Equal(t, apperr.Validation, apperr.KindOf(err))
	}

	opts, err := Parse(url.Values{"page": {"3"}, "limit": {"5"}}, testFields)
	require.NoError(t, err)
	require.Equal(t, 3, opts.Page)
	require.Equal(t, 5, opts.Limit)
	require.Equal(t, 10, opts.Skip())
}

func TestPaginate(t *testing.T) {
	// middle page has both neighbors
	p := Paginate(2, 10, 35)
	require.NotNil(t, p)
	require.Equal(t, &PageRef{Page: 3, Limit: 10}, p.Next)
	require.Equal(t, &PageRef{Page: 1, Limit: 10}, p.Prev)

	// first page of many has only next
	p = Paginate(1, 10, 35)
	require.NotNil(t, p)
	require.NotNil(t, p.Next)
	require.Nil(t, p.Prev)

	// last page has only prev
	p = Paginate(4, 10, 35)
	require.NotNil(t, p)
	require.Nil(t, p.Next)
	require.NotNil(t, p.Prev)

	// everything fits on one page
	require.Nil(t, Paginate(1, 25, 10))
	require.Nil(t, Paginate(1, 25, 0))
}
