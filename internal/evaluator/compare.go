package evaluator

// Compare returns 1 if a beats b, -1 if b beats a and 0 on a true tie.
// Categories compare first; equal categories fall through to an
// element-wise comparison of the tie-break vectors.
func Compare(a, b Result) int {
	if a.Category > b.Category {
		return 1
	}
	if a.Category < b.Category {
		return -1
	}
	for i := range a.Values {
		if i >= len(b.Values) {
			break
		}
		if a.Values[i] > b.Values[i] {
			return 1
		}
		if a.Values[i] < b.Values[i] {
			return -1
		}
	}
	return 0
}

// DetermineWinners returns the indices of every result that compares
// equal to the maximum. More than one index means a split pot.
func DetermineWinners(results []Result) []int {
	if len(results) == 0 {
		return nil
	}

	winners := []int{0}
	for i := 1; i < len(results); i++ {
		switch Compare(results[i], results[winners[0]]) {
		case 1:
			winners = []int{i}
		case 0:
			winners = append(winners, i)
		}
	}
	return winners
}
