package query

import (
	"testing"

	"github.com/stretchr/testify/require"

	"campdir/pkg/apperr"
)

func TestWhereComparisons(t *testing.T) {
	opts := &Options{Filters: []Filter{
		{Field: "averageCost", Op: OpLte, Value: "10000"},
		{Field: "housing", Op: OpEq, Value: "true"},
	}}
	clause, args, err := Where(opts, testFields, 0)
	require.NoError(t, err)
	require.Equal(t, "average_cost <= $1 AND housing = $2", clause)
	require.Equal(t, []any{10000.0, true}, args)
}

func TestWhereInOnArrayColumn(t *testing.T) {
	opts := &Options{Filters: []Filter{
		{Field: "careers", Op: OpIn, Value: "Business,UI/UX"},
	}}
	clause, args, err := Where(opts, testFields, 0)
	require.NoError(t, err)
	require.Equal(t, "careers && $1", clause)
	require.Equal(t, []any{[]string{"Business", "UI/UX"}}, args)
}

func TestWhereEqualityOnArrayColumn(t *testing.T) {
	opts := &Options{Filters: []Filter{
		{Field: "careers", Op: OpEq, Value: "Business"},
	}}
	clause, args, err := Where(opts, testFields, 0)
	require.NoError(t, err)
	require.Equal(t, "$1 = ANY(careers)", clause)
	require.Equal(t, []any{"Business"}, args)
}

func TestWhereInOnScalarColumn(t *testing.T) {
	opts := &Options{Filters: []Filter{
		{Field: "averageCost", Op: OpIn, Value: "100,200"},
	}}
	clause, args, err := Where(opts, testFields, 0)
	require.NoError(t, err)
	require.Equal(t, "average_cost = ANY($1)", clause)
	require.Equal(t, []any{[]float64{100, 200}}, args)
}

func TestWhereArgOffset(t *testing.T) {
	opts := &Options{Filters: []Filter{
		{Field: "name", Op: OpEq, Value: "Devworks"},
	}}
	clause, _, err := Where(opts, testFields, 2)
	require.NoError(t, err)
	require.Equal(t, "name = $3", clause)
}

func TestWhereBadTypedValue(t *testing.T) {
	opts := &Options{Filters: []Filter{
		{Field: "averageCost", Op: OpGt, Value: "lots"},
	}}
	_, _, err := Where(opts, testFields, 0)
	require.Error(t, err)
	require.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestOrderBy(t *testing.T) {
	require.Equal(t, "ORDER BY created_at DESC", OrderBy(&Options{}, testFields))

	opts := &Options{Sort: []SortKey{{Field: "averageCost", Desc: true}, {Field: "name"}}}
	require.Equal(t, "ORDER BY average_cost DESC, name ASC", OrderBy(opts, testFields))
}

func TestLimitOffset(t *testing.T) {
	require.Equal(t, "LIMIT 25 OFFSET 0", LimitOffset(&Options{Page: 1, Limit: 25}))
	require.Equal(t, "LIMIT 10 OFFSET 20", LimitOffset(&Options{Page: 3, Limit: 10}))
}
