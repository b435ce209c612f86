package layout

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

const floor = 72 / 2.54

func assertSum(t *testing.T, widths []float64, total float64) {
	t.Helper()
	assert.InDelta(t, total, sumOf(widths), 1e-6, "widths %v", widths)
}

func TestColumnWidths_ProportionalToNatural(t *testing.T) {
	widths := ColumnWidths([]Column{{Natural: 100}, {Natural: 300}}, 800, floor)
	assert.InDelta(t, 200, widths[0], 1e-9)
	assert.InDelta(t, 600, widths[1], 1e-9)
}

func TestColumnWidths_EqualWhenUnmeasurable(t *testing.T) {
	widths := ColumnWidths([]Column{{Natural: 0}, {Natural: 50}, {Natural: 10}}, 300, floor)
	for _, w := range widths {
		assert.InDelta(t, 100, w, 1e-9)
	}
	widths = ColumnWidths([]Column{{Natural: 20}, {Natural: 20}}, 300, floor)
	assert.InDelta(t, 150, widths[0], 1e-9)
}

func TestColumnWidths_FixedAndFlexible(t *testing.T) {
	widths := ColumnWidths([]Column{{Fixed: true, Width: 100}, {Natural: 10}, {Natural: 10}}, 500, floor)
	assert.InDelta(t, 100, widths[0], 1e-9)
	assert.InDelta(t, 200, widths[1], 1e-9)
	assert.InDelta(t, 200, widths[2], 1e-9)
}

func TestColumnWidths_GrowFixedWithoutFlexible(t *testing.T) {
	widths := ColumnWidths([]Column{{Fixed: true, Width: 100}, {Fixed: true, Width: 50}}, 300, floor)
	assert.InDelta(t, 200, widths[0], 1e-9)
	assert.InDelta(t, 100, widths[1], 1e-9)
}

func TestColumnWidths_ShrinkFixed(t *testing.T) {
	widths := ColumnWidths([]Column{{Fixed: true, Width: 300}, {Fixed: true, Width: 300}}, 400, floor)
	assert.InDelta(t, 200, widths[0], 1e-9)
	assert.InDelta(t, 200, widths[1], 1e-9)
}

func TestColumnWidths_FlexibleKeepsFloor(t *testing.T) {
	widths := ColumnWidths([]Column{{Fixed: true, Width: 380}, {Natural: 50}}, 400, floor)
	assert.InDelta(t, floor, widths[1], 1e-9)
	assert.InDelta(t, 400-floor, widths[0], 1e-9)
}

func TestColumnWidths_FloorsExceedBudget(t *testing.T) {
	cols := make([]Column, 10)
	for i := range cols {
		cols[i].Natural = float64(i + 1)
	}
	widths := ColumnWidths(cols, 100, 50)
	for _, w := range widths {
		assert.InDelta(t, 10, w, 1e-9)
	}
}

func TestColumnWidths_Empty(t *testing.T) {
	assert.Nil(t, ColumnWidths(nil, 100, floor))
}

func TestColumnWidths_SumProperty(t *testing.T) {
	rnd := rand.New(rand.NewSource(14))
	for run := 0; run < 500; run++ {
		n := 1 + rnd.Intn(8)
		total := 50 + rnd.Float64()*800
		cols := make([]Column, n)
		var fixed float64
		for i := range cols {
			if rnd.Intn(3) == 0 && fixed < total {
				cols[i] = Column{Fixed: true, Width: math.Min(rnd.Float64()*total/2, total-fixed)}
				fixed += cols[i].Width
			} else {
				cols[i] = Column{Natural: rnd.Float64() * 400}
			}
		}
		widths := ColumnWidths(cols, total, floor)
		assertSum(t, widths, total)
		// fixed columns never shrink while flexible columns have room
		if fixed+floor*float64(n-countFixed(cols)) > total {
			continue
		}
		for i, c := range cols {
			if c.Fixed {
				assert.GreaterOrEqual(t, widths[i], c.Width-1e-6)
			}
		}
	}
}

func countFixed(cols []Column) int {
	n := 0
	for _, c := range cols {
		if c.Fixed {
			n++
		}
	}
	return n
}
