package buffer

// CircularFloat64 is a fixed-size circular buffer of float64 values with
// rolling summary stats over what is currently stored. Chains use these as
// sliding windows over recent step sizes and accept/reject outcomes.
type CircularFloat64 struct {
	buffer    []float64 // actual storage
	pos       int       // Current position in buffer
	BufSize   int       // BufSize is the fixed number of values maintained in memory
	Count     int       // Count is the number of values in memory. Will always be <= BufSize
	TotalSeen int64     // TotalSeen is the total number of times Add has been called
}

// NewCircularFloat64 creates a new circular buffer of totalSize. If totalSize
// is not a multiple of 2, it will be adjusted.
func NewCircularFloat64(totalSize int) *CircularFloat64 {
	// Fix odd number situations
	half := totalSize / 2
	total := half + half

	return &CircularFloat64{
		buffer:  make([]float64, total),
		pos:     0,
		BufSize: total,
		Count:   0,
	}
}

// Internal: return the next array position
func (c *CircularFloat64) nextPos() int {
	return (c.pos + 1) % c.BufSize
}

// Add appends the given value to the buffer, overwriting the oldest entry
func (c *CircularFloat64) Add(v float64) {
	c.TotalSeen++

	c.buffer[c.pos] = v

	c.pos = c.nextPos()

	c.Count++
	if c.Count > c.BufSize {
		c.Count = c.BufSize // max out
	}
}

// Mean returns the mean of the values currently stored. Returns 0 for an
// empty buffer.
func (c *CircularFloat64) Mean() float64 {
	if c.Count < 1 {
		return 0.0
	}

	var sum float64
	for i := 0; i < c.Count; i++ {
		sum += c.buffer[i]
	}

	return sum / float64(c.Count)
}

// HalfMeans returns the means of the oldest and most recent halves of the
// stored values in append order. Not valid (ok == false) until Add has been
// called at least BufSize times.
func (c *CircularFloat64) HalfMeans() (first float64, second float64, ok bool) {
	if c.Count < c.BufSize {
		return 0.0, 0.0, false
	}

	half := c.BufSize / 2

	// Oldest entry is the one we are about to overwrite
	var sum float64
	pos := c.pos
	for i := 0; i < half; i++ {
		sum += c.buffer[pos]
		pos = (pos + 1) % c.BufSize
	}
	first = sum / float64(half)

	sum = 0.0
	for i := 0; i < half; i++ {
		sum += c.buffer[pos]
		pos = (pos + 1) % c.BufSize
	}
	second = sum / float64(half)

	return first, second, true
}
