package ingest

import (
	"testing"

	"arthere/internal/museum"

	"github.com/stretchr/testify/assert"
)

func rec(name, refDate string) museum.Museum {
	return museum.Museum{Name: name, ReferenceDate: refDate}
}

func TestDedupCatalog(t *testing.T) {
	t.Run("newer reference date wins", func(t *testing.T) {
		in := []museum.Museum{
			rec("A", "20240101"),
			rec("A", "20240105"),
			rec("B", ""),
		}

		out := DedupCatalog(in)

		assert.Equal(t, []museum.Museum{rec("A", "20240105"), rec("B", "")}, out)
	})

	t.Run("first seen wins on equal markers", func(t *testing.T) {
		first := museum.Museum{Name: "A", ReferenceDate: "20240101", Address: "first"}
		second := museum.Museum{Name: "A", ReferenceDate: "20240101", Address: "second"}

		out := DedupCatalog([]museum.Museum{first, second})

		assert.Len(t, out, 1)
		assert.Equal(t, "first", out[0].Address)
	})

	t.Run("missing marker sorts lowest", func(t *testing.T) {
		dated := rec("A", "20230101")
		undated := museum.Museum{Name: "A", Address: "undated"}

		out := DedupCatalog([]museum.Museum{undated, dated})
		assert.Equal(t, "20230101", out[0].ReferenceDate)

		out = DedupCatalog([]museum.Museum{dated, undated})
		assert.Equal(t, "20230101", out[0].ReferenceDate)
	})

	t.Run("output keys are unique and never exceed input size", func(t *testing.T) {
		in := []museum.Museum{
			rec("A", "1"), rec("B", "2"), rec("A", "3"),
			rec("C", ""), rec("B", "1"), rec("A", "2"),
		}

		out := DedupCatalog(in)

		assert.LessOrEqual(t, len(out), len(in))
		seen := map[string]bool{}
		for _, m := range out {
			assert.False(t, seen[m.Name], "duplicate name %q in output", m.Name)
			seen[m.Name] = true
		}
	})

	t.Run("winner has the greatest marker among its candidates", func(t *testing.T) {
		in := []museum.Museum{
			rec("A", "20240103"), rec("A", "20240101"), rec("A", "20240102"),
		}

		out := DedupCatalog(in)

		assert.Len(t, out, 1)
		for _, candidate := range in {
			assert.GreaterOrEqual(t, out[0].ReferenceDate, candidate.ReferenceDate)
		}
	})

	t.Run("first-encounter order is preserved", func(t *testing.T) {
		in := []museum.Museum{
			rec("C", "1"), rec("A", "1"), rec("B", "1"), rec("A", "9"),
		}

		out := DedupCatalog(in)

		names := make([]string, len(out))
		for i, m := range out {
			names[i] = m.Name
		}
		assert.Equal(t, []string{"C", "A", "B"}, names)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, DedupCatalog(nil))
	})
}
