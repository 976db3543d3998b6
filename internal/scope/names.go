package scope

// nameCounter yields a, b, ..., z, aa, ab, ... (bijective base 26).
type nameCounter struct {
	n uint64
}

func (c *nameCounter) next() string {
	name := shortName(c.n)
	c.n++
	return name
}

func shortName(n uint64) string {
	var buf [16]byte
	i := len(buf)
	for {
		i--
		buf[i] = byte('a' + n%26)
		if n < 26 {
			break
		}
		n = n/26 - 1
	}
	return string(buf[i:])
}
