package paginate

// SimpleBreaks returns page boundary offsets for flowing content of the
// given total height: one break at every whole multiple of the usable
// page height that falls strictly before the content end. Content that
// fits one page yields no breaks. Multiples are computed, not
// accumulated, so long documents do not drift.
func SimpleBreaks(contentHeight, usableHeight float64) []float64 {
	if usableHeight <= 0 || contentHeight <= usableHeight {
		return nil
	}
	var breaks []float64
	for i := 1; ; i++ {
		offset := usableHeight * float64(i)
		if offset >= contentHeight {
			return breaks
		}
		breaks = append(breaks, offset)
	}
}
