package parallel

// Band is a half-open range of rows [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// Height returns the number of rows in the band.
func (b Band) Height() int { return b.Y1 - b.Y0 }

// SplitRows divides height rows into at most n contiguous bands of nearly
// equal size. Earlier bands get the extra rows. Returns nil when height <= 0.
func SplitRows(height, n int) []Band {
	if height <= 0 {
		return nil
	}
	n = min(max(n, 1), height)

	bands := make([]Band, n)
	base, extra := height/n, height%n
	y := 0
	for i := range n {
		h := base
		if i < extra {
			h++
		}
		bands[i] = Band{Y0: y, Y1: y + h}
		y += h
	}
	return bands
}

// ForEachBand calls fn once per band of height rows. With workers <= 1 the
// bands run sequentially on the calling goroutine; otherwise they run on a
// short-lived pool and ForEachBand returns when all are done.
//
// fn must only write state owned by its band.
func ForEachBand(height, workers int, fn func(Band)) {
	if workers <= 1 {
		if height > 0 {
			fn(Band{Y0: 0, Y1: height})
		}
		return
	}

	// Oversplit so stealing can even out bands that cost more.
	bands := SplitRows(height, workers*4)
	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() { fn(b) }
	}

	pool := NewWorkerPool(workers)
	defer pool.Close()
	pool.ExecuteAll(work)
}
