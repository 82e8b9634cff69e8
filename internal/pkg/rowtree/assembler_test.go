package rowtree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/train-schedule-microservice/internal/pkg/rowtree"
)

func TestAssemble(t *testing.T) {
	t.Run("three rows for one root fold into one object with three children", func(t *testing.T) {
		rows := []rowtree.Row{
			{"id": int64(1), "name": "Red", "stations.id": int64(10), "stations.name": "Central"},
			{"id": int64(1), "name": "Red", "stations.id": int64(11), "stations.name": "North"},
			{"id": int64(1), "name": "Red", "stations.id": int64(12), "stations.name": "East"},
		}

		got := rowtree.Assemble(rows, []string{"stations"})

		require.Len(t, got, 1)
		assert.Equal(t, int64(1), got[0]["id"])
		stations := got[0]["stations"].([]any)
		require.Len(t, stations, 3)
		assert.Equal(t, "Central", stations[0].(map[string]any)["name"])
		assert.Equal(t, "North", stations[1].(map[string]any)["name"])
		assert.Equal(t, "East", stations[2].(map[string]any)["name"])
	})

	t.Run("idempotent under row duplication", func(t *testing.T) {
		rows := []rowtree.Row{
			{"id": int64(1), "number": "T1", "trainRuns.id": int64(100), "trainRuns.policePeople.id": int64(7)},
			{"id": int64(1), "number": "T1", "trainRuns.id": int64(100), "trainRuns.policePeople.id": int64(8)},
			{"id": int64(1), "number": "T1", "trainRuns.id": int64(101), "trainRuns.policePeople.id": int64(7)},
		}
		withDuplicates := append(append([]rowtree.Row{}, rows...), rows[1], rows[0], rows[2])

		keys := []string{"trainRuns", "trainRuns.policePeople"}
		assert.Equal(t, rowtree.Assemble(rows, keys), rowtree.Assemble(withDuplicates, keys))
	})

	t.Run("grandchildren dedupe per parent, not globally", func(t *testing.T) {
		rows := []rowtree.Row{
			{"id": int64(1), "trainRuns.id": int64(100), "trainRuns.policePeople.id": int64(7)},
			{"id": int64(1), "trainRuns.id": int64(100), "trainRuns.policePeople.id": int64(8)},
			{"id": int64(1), "trainRuns.id": int64(101), "trainRuns.policePeople.id": int64(7)},
		}

		got := rowtree.Assemble(rows, []string{"trainRuns", "trainRuns.policePeople"})

		require.Len(t, got, 1)
		runs := got[0]["trainRuns"].([]any)
		require.Len(t, runs, 2)

		first := runs[0].(map[string]any)["policePeople"].([]any)
		require.Len(t, first, 2)
		assert.Equal(t, int64(7), first[0].(map[string]any)["id"])
		assert.Equal(t, int64(8), first[1].(map[string]any)["id"])

		second := runs[1].(map[string]any)["policePeople"].([]any)
		require.Len(t, second, 1)
		assert.Equal(t, int64(7), second[0].(map[string]any)["id"])
	})

	t.Run("roots keep first-seen order", func(t *testing.T) {
		rows := []rowtree.Row{
			{"id": int64(3), "trainRuns.id": nil},
			{"id": int64(1), "trainRuns.id": int64(100)},
			{"id": int64(2), "trainRuns.id": nil},
			{"id": int64(1), "trainRuns.id": int64(101)},
		}

		got := rowtree.Assemble(rows, []string{"trainRuns"})

		require.Len(t, got, 3)
		assert.Equal(t, int64(3), got[0]["id"])
		assert.Equal(t, int64(1), got[1]["id"])
		assert.Equal(t, int64(2), got[2]["id"])
	})

	t.Run("absent relation materializes as empty array", func(t *testing.T) {
		rows := []rowtree.Row{
			{"id": int64(5), "number": "T5", "trainRuns.id": nil, "trainRuns.day": nil},
		}

		got := rowtree.Assemble(rows, []string{"trainRuns"})

		require.Len(t, got, 1)
		runs, ok := got[0]["trainRuns"].([]any)
		require.True(t, ok, "relation key must be an array even when empty")
		assert.Empty(t, runs)
	})

	t.Run("relation appearing later still appends to the empty array", func(t *testing.T) {
		rows := []rowtree.Row{
			{"id": int64(5), "trainRuns.id": nil},
			{"id": int64(5), "trainRuns.id": int64(100)},
		}

		got := rowtree.Assemble(rows, []string{"trainRuns"})

		require.Len(t, got, 1)
		runs := got[0]["trainRuns"].([]any)
		require.Len(t, runs, 1)
		assert.Equal(t, int64(100), runs[0].(map[string]any)["id"])
	})

	t.Run("single nested objects stay objects", func(t *testing.T) {
		rows := []rowtree.Row{
			{"id": int64(1), "line.id": int64(2), "line.name": "Red", "trainRuns.id": int64(100)},
		}

		got := rowtree.Assemble(rows, []string{"trainRuns"})

		require.Len(t, got, 1)
		line, ok := got[0]["line"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Red", line["name"])
	})

	t.Run("scalar attributes materialize once", func(t *testing.T) {
		rows := []rowtree.Row{
			{"id": int64(1), "number": "T1", "trainRuns.id": int64(100)},
			{"id": int64(1), "number": "changed", "trainRuns.id": int64(101)},
		}

		got := rowtree.Assemble(rows, []string{"trainRuns"})

		require.Len(t, got, 1)
		assert.Equal(t, "T1", got[0]["number"])
	})

	t.Run("rows without a root identity are dropped", func(t *testing.T) {
		rows := []rowtree.Row{
			{"id": nil, "number": "ghost"},
			{"id": int64(1), "number": "T1"},
		}

		got := rowtree.Assemble(rows, nil)

		require.Len(t, got, 1)
		assert.Equal(t, int64(1), got[0]["id"])
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Empty(t, rowtree.Assemble(nil, []string{"trainRuns"}))
	})
}
