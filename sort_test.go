package condtable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bjaus/condtable"
)

func ids(rows []condtable.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r["id"].(string)
	}
	return out
}

func TestSortRowsStable(t *testing.T) {
	t.Parallel()
	rows := []condtable.Row{
		{"id": "z", "k": 1},
		{"id": "x", "k": 1},
		{"id": "y", "k": 1},
	}
	col := condtable.Column{Key: "k", Type: condtable.TypeNumber}
	assert.Equal(t, []string{"z", "x", "y"}, ids(condtable.SortRows(rows, col, condtable.SortAscending)))
	assert.Equal(t, []string{"z", "x", "y"}, ids(condtable.SortRows(rows, col, condtable.SortDescending)))
}

func TestSortRows(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		rows []condtable.Row
		col  condtable.Column
		dir  condtable.SortDirection
		want []string
	}{
		"numbers ascending": {
			rows: []condtable.Row{{"id": "c", "v": 3}, {"id": "a", "v": 1}, {"id": "b", "v": 2.5}},
			col:  condtable.Column{Key: "v", Type: condtable.TypeNumber},
			dir:  condtable.SortAscending,
			want: []string{"a", "b", "c"},
		},
		"numbers descending": {
			rows: []condtable.Row{{"id": "c", "v": 3}, {"id": "a", "v": 1}, {"id": "b", "v": 2.5}},
			col:  condtable.Column{Key: "v", Type: condtable.TypeNumber},
			dir:  condtable.SortDescending,
			want: []string{"c", "b", "a"},
		},
		"ties keep order descending": {
			rows: []condtable.Row{{"id": "a", "v": 1}, {"id": "b", "v": 2}, {"id": "c", "v": 1}},
			col:  condtable.Column{Key: "v", Type: condtable.TypeNumber},
			dir:  condtable.SortDescending,
			want: []string{"b", "a", "c"},
		},
		"missing first": {
			rows: []condtable.Row{{"id": "a", "v": 1}, {"id": "b"}, {"id": "c", "v": 0}},
			col:  condtable.Column{Key: "v", Type: condtable.TypeNumber},
			dir:  condtable.SortAscending,
			want: []string{"b", "c", "a"},
		},
		"numbers before text": {
			rows: []condtable.Row{{"id": "a", "v": "n/a"}, {"id": "b", "v": 5}},
			col:  condtable.Column{Key: "v"},
			dir:  condtable.SortAscending,
			want: []string{"b", "a"},
		},
		"strings collate": {
			rows: []condtable.Row{{"id": "1", "v": "b"}, {"id": "2", "v": "a10"}, {"id": "3", "v": "A"}, {"id": "4", "v": "a9"}},
			col:  condtable.Column{Key: "v", Type: condtable.TypeString},
			dir:  condtable.SortAscending,
			want: []string{"3", "4", "2", "1"},
		},
		"temporal": {
			rows: []condtable.Row{
				{"id": "mar", "v": "2024-03-01"},
				{"id": "feb", "v": 1706745600000},
				{"id": "jan", "v": "2024-01-01T00:00:00Z"},
			},
			col:  condtable.Column{Key: "v", Type: condtable.TypeTemporal},
			dir:  condtable.SortAscending,
			want: []string{"jan", "feb", "mar"},
		},
		"none keeps order": {
			rows: []condtable.Row{{"id": "b", "v": 2}, {"id": "a", "v": 1}},
			col:  condtable.Column{Key: "v", Type: condtable.TypeNumber},
			dir:  condtable.SortNone,
			want: []string{"b", "a"},
		},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ids(condtable.SortRows(tt.rows, tt.col, tt.dir)))
		})
	}
}

func TestSortRowsDoesNotModifyInput(t *testing.T) {
	t.Parallel()
	rows := []condtable.Row{{"id": "b", "v": 2}, {"id": "a", "v": 1}}
	sorted := condtable.SortRows(rows, condtable.Column{Key: "v"}, condtable.SortAscending)
	assert.Equal(t, []string{"a", "b"}, ids(sorted))
	assert.Equal(t, []string{"b", "a"}, ids(rows))
}

func TestSortDirectionString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "None", condtable.SortNone.String())
	assert.Equal(t, "Ascending", condtable.SortAscending.String())
	assert.Equal(t, "Descending", condtable.SortDescending.String())
	assert.Equal(t, "Unknown(9)", condtable.SortDirection(9).String())
}
