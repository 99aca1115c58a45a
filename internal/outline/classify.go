package outline

// Stats are the document-wide font statistics used by Classify.
type Stats struct {
	Avg float64
	Max float64
}

// ComputeStats derives the mean and maximum size over all blocks. It reports
// false when there is no usable size at all.
func (p Policy) ComputeStats(blocks []TextBlock) (Stats, bool) {
	var sum, maxSize float64
	n := 0
	for _, b := range blocks {
		if p.ExcludeInvalidSizes && b.Size <= 0 {
			continue
		}
		sum += b.Size
		maxSize = max(maxSize, b.Size)
		n++
	}
	if n == 0 || maxSize <= 0 {
		return Stats{}, false
	}
	return Stats{Avg: sum / float64(n), Max: maxSize}, true
}

// Classify assigns a level to b. The first matching rule wins.
func (p Policy) Classify(b TextBlock, st Stats) (Level, bool) {
	switch {
	case b.Size >= st.Max:
		return H1, true
	case b.Size >= st.Avg*p.SizeMultiplier:
		return H2, true
	case b.Bold && b.Size >= st.Avg:
		return H3, true
	}
	return "", false
}
