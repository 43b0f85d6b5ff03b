package xflags

// NotFound is returned by BitOffset for flags the index does not track.
const NotFound uint32 = 0xFFFFFFFF

// Store answers collected/uncollected queries against a bit array using an
// Index. The decoded actor table of the most recently used room is cached
// until a flag from a different scene/room/setup is queried.
type Store struct {
	index *Index
	bits  []byte

	cacheValid bool
	cacheKey   uint32
	cacheFound bool
	cacheBlob  uint16
	cacheBase  uint32
	cache      [256]uint16
}

// NewStore binds index to bits. bits is shared, not copied, so writes land
// directly in the owner's buffer (normally the save file).
func NewStore(index *Index, bits []byte) *Store {
	return &Store{index: index, bits: bits}
}

// Rebind points the store at a new bit array, e.g. after a save is reloaded.
func (s *Store) Rebind(bits []byte) {
	s.bits = bits
}

// Invalidate drops the decoded room cache.
func (s *Store) Invalidate() {
	s.cacheValid = false
}

// BitOffset resolves f to an absolute bit index, or NotFound.
func (s *Store) BitOffset(f Flag) uint32 {
	if s.index == nil {
		return NotFound
	}

	key := f.roomKey()
	if !s.cacheValid || s.cacheKey != key {
		s.cacheKey = key
		s.cacheValid = true
		s.cacheFound = false

		blobOffset, ok := s.index.findRoom(f)
		if ok {
			s.cacheBase, s.cacheFound = s.index.decodeRoom(blobOffset, &s.cache)
			s.cacheBlob = blobOffset
		}
	}

	if !s.cacheFound {
		return NotFound
	}

	rel := s.cache[f.Actor]
	if rel == 0 {
		return NotFound
	}
	if f.Subflag >= s.index.widthAt(s.cacheBlob, f.Actor) {
		return NotFound
	}

	bit := s.cacheBase + uint32(rel-1) + uint32(f.Subflag)
	if bit >= s.index.totalBits || int(bit/8) >= len(s.bits) {
		return NotFound
	}
	return bit
}

// Get reports whether f has been collected. Flags that cannot be resolved
// report true so that untracked actors are never treated as shuffled.
func (s *Store) Get(f Flag) bool {
	bit := s.BitOffset(f)
	if bit == NotFound {
		return true
	}
	return s.bits[bit/8]&(1<<(bit%8)) != 0
}

// Set marks f as collected. Unresolvable flags are ignored.
func (s *Store) Set(f Flag) {
	bit := s.BitOffset(f)
	if bit == NotFound {
		return
	}
	s.bits[bit/8] |= 1 << (bit % 8)
}

// Tracked reports whether f resolves to a bit at all.
func (s *Store) Tracked(f Flag) bool {
	return s.BitOffset(f) != NotFound
}

// Count returns the number of collected flags.
func (s *Store) Count() int {
	n := 0
	for _, b := range s.bits {
		for ; b != 0; b &= b - 1 {
			n++
		}
	}
	return n
}
