package checkers

// captureFilter narrows a non-empty set of candidate jumps.
type captureFilter func(b *Board, r Rules, jumps []Move) []Move

func captureFilters(r Rules) []captureFilter {
	var filters []captureFilter
	if r.ForceCaptureMaximum {
		filters = append(filters, maximumCapture)
	}
	if r.KingCapturePriority {
		filters = append(filters, kingsCaptureFirst)
	}
	return filters
}

// maximumCapture keeps only the jumps that begin a longest capture chain.
func maximumCapture(b *Board, r Rules, jumps []Move) []Move {
	depths := make([]int, len(jumps))
	best := 0
	for i, mv := range jumps {
		depths[i] = captureDepth(b, r, mv)
		if depths[i] > best {
			best = depths[i]
		}
	}
	out := jumps[:0:0]
	for i, mv := range jumps {
		if depths[i] == best {
			out = append(out, mv)
		}
	}
	return out
}

// kingsCaptureFirst drops pawn jumps when a king can capture.
func kingsCaptureFirst(b *Board, _ Rules, jumps []Move) []Move {
	var kings []Move
	for _, mv := range jumps {
		if b.at(mv.From).IsKing() {
			kings = append(kings, mv)
		}
	}
	if len(kings) == 0 {
		return jumps
	}
	return kings
}
