package query

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type record struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Housing     bool   `json:"housing"`
}

func TestApplySelectKeepsIDAndRequestedFields(t *testing.T) {
	in := []record{
		{ID: "1", Name: "a", Description: "da", Housing: true},
		{ID: "2", Name: "b", Description: "db"},
	}
	out, ok := ApplySelect(in, []string{"name"}).([]map[string]any)
	require.True(t, ok)
	require.Len(t, out, 2)
	require.Equal(t, map[string]any{"id": "1", "name": "a"}, out[0])
	require.Equal(t, map[string]any{"id": "2", "name": "b"}, out[1])
}

func TestApplySelectSingleRecord(t *testing.T) {
	in := record{ID: "1", Name: "a", Description: "d"}
	out, ok := ApplySelect(in, []string{"description"}).(map[string]any)
	require.True(t, ok)
	require.Equal(t, map[string]any{"id": "1", "description": "d"}, out)
}

func TestApplySelectNoFieldsPassthrough(t *testing.T) {
	in := []record{{ID: "1"}}
	require.Equal(t, any(in), ApplySelect(in, nil))
}
