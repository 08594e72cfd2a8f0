package content

// Pager walks a fixed-size list with wraparound in both directions.
type Pager struct {
	n     int
	index int
}

func NewPager(n int) *Pager {
	if n < 0 {
		n = 0
	}
	return &Pager{n: n}
}

func (p *Pager) Len() int   { return p.n }
func (p *Pager) Index() int { return p.index }

// Next moves forward; the last item wraps to 0.
func (p *Pager) Next() int {
	if p.n > 0 {
		p.index = (p.index + 1) % p.n
	}
	return p.index
}

// Prev moves back; index 0 wraps to the last item.
func (p *Pager) Prev() int {
	if p.n > 0 {
		p.index = (p.index - 1 + p.n) % p.n
	}
	return p.index
}

// Seek jumps to i modulo the length. Negative values count from the end.
func (p *Pager) Seek(i int) int {
	if p.n > 0 {
		p.index = ((i % p.n) + p.n) % p.n
	}
	return p.index
}

// Current returns the example under the pager, or false for an empty list.
func (p *Pager) Current(examples []Example) (Example, bool) {
	if p.n == 0 || p.index >= len(examples) {
		return Example{}, false
	}
	return examples[p.index], true
}
