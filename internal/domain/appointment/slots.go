package appointment

// GenerateSlots lists the candidate start times from open (inclusive),
// stepping by granularity, while the start is before close.
func GenerateSlots(open, close string, granularity int) ([]string, error) {
	start, err := ParseClock(open)
	if err != nil {
		return nil, err
	}
	end, err := ParseClock(close)
	if err != nil {
		return nil, err
	}

	starts := slotStarts(Window{Start: start, End: end}, granularity)
	out := make([]string, 0, len(starts))
	for _, s := range starts {
		out = append(out, FormatClock(s))
	}
	return out, nil
}

func slotStarts(w Window, granularity int) []int {
	if granularity <= 0 || !w.Valid() {
		return nil
	}
	out := make([]int, 0, (w.End-w.Start)/granularity+1)
	for s := w.Start; s < w.End; s += granularity {
		out = append(out, s)
	}
	return out
}
