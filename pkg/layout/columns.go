package layout

import "math"

// Column describes one table column for width resolution.
// Fixed columns have a resolved Width (from an absolute or percentage
// hint). Natural is the widest cell of the column set without wrapping.
type Column struct {
	Fixed   bool
	Width   float64
	Natural float64
}

const widthTolerance = 1e-9

// ColumnWidths assigns a width to every column so that the widths sum to
// total. Flexible columns share what the fixed columns leave, in proportion
// to their natural widths and no narrower than floor. Over budget, flexible
// columns shrink first (down to floor), then fixed ones, then all columns
// proportionally. Under budget, flexible columns grow, or the fixed ones
// if there are none.
func ColumnWidths(cols []Column, total, floor float64) []float64 {
	n := len(cols)
	if n == 0 {
		return nil
	}
	widths := make([]float64, n)
	var fixedSum float64
	var flex []int
	var fixed []int
	for i, c := range cols {
		if c.Fixed {
			widths[i] = c.Width
			fixedSum += c.Width
			fixed = append(fixed, i)
		} else {
			flex = append(flex, i)
		}
	}

	if len(flex) > 0 {
		remaining := math.Max(total-fixedSum, 0)
		var naturalSum float64
		measurable, allEqual := true, true
		for _, i := range flex {
			naturalSum += cols[i].Natural
			if cols[i].Natural <= 0 {
				measurable = false
			}
			if cols[i].Natural != cols[flex[0]].Natural {
				allEqual = false
			}
		}
		measurable = measurable && !allEqual
		for _, i := range flex {
			if measurable {
				widths[i] = remaining * cols[i].Natural / naturalSum
			} else {
				widths[i] = remaining / float64(len(flex))
			}
			widths[i] = math.Max(widths[i], floor)
		}
	}

	sum := sumOf(widths)
	switch {
	case sum > total+widthTolerance:
		excess := sum - total
		excess = shrink(widths, flex, floor, excess)
		excess = shrink(widths, fixed, floor, excess)
		if excess > widthTolerance {
			scaleAll(widths, total)
		}
	case sum < total-widthTolerance:
		grow := flex
		if len(grow) == 0 {
			grow = fixed
		}
		distribute(widths, grow, total-sum)
	}

	// absorb rounding in the widest column
	if diff := total - sumOf(widths); diff != 0 {
		widest := 0
		for i := range widths {
			if widths[i] > widths[widest] {
				widest = i
			}
		}
		widths[widest] += diff
	}
	return widths
}

// shrink reduces the columns in set towards floor, in proportion to what
// each can give, and returns the excess it could not absorb.
func shrink(widths []float64, set []int, floor, excess float64) float64 {
	if excess <= widthTolerance || len(set) == 0 {
		return excess
	}
	var capacity float64
	for _, i := range set {
		capacity += math.Max(widths[i]-floor, 0)
	}
	if capacity <= 0 {
		return excess
	}
	if capacity <= excess {
		for _, i := range set {
			widths[i] = math.Min(widths[i], floor)
		}
		return excess - capacity
	}
	for _, i := range set {
		widths[i] -= excess * math.Max(widths[i]-floor, 0) / capacity
	}
	return 0
}

// distribute adds extra to the columns in set, in proportion to their
// current widths, or evenly if they are all zero.
func distribute(widths []float64, set []int, extra float64) {
	if len(set) == 0 {
		return
	}
	var base float64
	for _, i := range set {
		base += widths[i]
	}
	for _, i := range set {
		if base > 0 {
			widths[i] += extra * widths[i] / base
		} else {
			widths[i] += extra / float64(len(set))
		}
	}
}

func scaleAll(widths []float64, total float64) {
	sum := sumOf(widths)
	for i := range widths {
		if sum > 0 {
			widths[i] = widths[i] * total / sum
		} else {
			widths[i] = total / float64(len(widths))
		}
	}
}

func sumOf(widths []float64) float64 {
	var sum float64
	for _, w := range widths {
		sum += w
	}
	return sum
}
