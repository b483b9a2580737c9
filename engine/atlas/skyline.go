package atlas

// skylineSegment is one run of constant height along the page's skyline,
// covering pixel columns [x, x+width).
type skylineSegment struct {
	x, y, width int
}

// findPosition locates the bottom-left position for a width x height rect
// using the classic skyline bin-packing heuristic: scan every candidate
// segment start, compute the resulting height if placed there, and keep the
// lowest (then leftmost) result.
func (p *Page) findPosition(width, height int) (int, int, bool) {
	bestY := p.Size + 1
	bestX := -1

	for i := range p.skyline {
		x := p.skyline[i].x
		if x+width > p.Size {
			continue
		}
		y, fits := p.skylineHeightAt(i, width)
		if !fits || y+height > p.Size {
			continue
		}
		if y < bestY || (y == bestY && x < bestX) {
			bestY, bestX = y, x
		}
	}

	if bestX < 0 {
		return 0, 0, false
	}
	return bestX, bestY, true
}

// skylineHeightAt computes the height a width-wide rect starting at
// skyline segment index start would rest at, i.e. the max height among all
// segments it spans.
func (p *Page) skylineHeightAt(start, width int) (int, bool) {
	y := 0
	remaining := width
	for i := start; remaining > 0; i++ {
		if i >= len(p.skyline) {
			return 0, false
		}
		seg := p.skyline[i]
		if seg.y > y {
			y = seg.y
		}
		remaining -= seg.width
	}
	return y, true
}

// addSkylineLevel raises the skyline over [x, x+width) to y+height, merging
// and splitting existing segments as needed.
func (p *Page) addSkylineLevel(x, y, width, height int) {
	newSegment := skylineSegment{x: x, y: y + height, width: width}

	var result []skylineSegment
	inserted := false
	for _, seg := range p.skyline {
		segEnd := seg.x + seg.width
		newEnd := newSegment.x + newSegment.width

		if segEnd <= newSegment.x || seg.x >= newEnd {
			// No overlap with the new segment.
			result = append(result, seg)
			continue
		}
		if !inserted {
			result = append(result, newSegment)
			inserted = true
		}
		// Keep the portion of seg left of the new segment, if any.
		if seg.x < newSegment.x {
			result = append(result, skylineSegment{x: seg.x, y: seg.y, width: newSegment.x - seg.x})
		}
		// Keep the portion of seg right of the new segment, if any.
		if segEnd > newEnd {
			result = append(result, skylineSegment{x: newEnd, y: seg.y, width: segEnd - newEnd})
		}
	}
	if !inserted {
		result = append(result, newSegment)
	}

	p.skyline = mergeAdjacentSegments(sortSegmentsByX(result))
}

func sortSegmentsByX(segments []skylineSegment) []skylineSegment {
	for i := 1; i < len(segments); i++ {
		for j := i; j > 0 && segments[j].x < segments[j-1].x; j-- {
			segments[j], segments[j-1] = segments[j-1], segments[j]
		}
	}
	return segments
}

func mergeAdjacentSegments(segments []skylineSegment) []skylineSegment {
	if len(segments) == 0 {
		return segments
	}
	merged := segments[:1]
	for _, seg := range segments[1:] {
		last := &merged[len(merged)-1]
		if last.y == seg.y && last.x+last.width == seg.x {
			last.width += seg.width
		} else {
			merged = append(merged, seg)
		}
	}
	return merged
}
