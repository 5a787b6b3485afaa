package zrdl

// stringInterner assigns a stable, insertion-ordered index to each
// distinct string content is seen for, deduplicating by content rather
// than by call site.
type stringInterner struct {
	order []string
	index map[string]uint32
}

func newStringInterner() *stringInterner {
	return &stringInterner{index: make(map[string]uint32)}
}

// intern returns s's index, allocating a new one on first sight.
func (si *stringInterner) intern(s string) uint32 {
	if idx, ok := si.index[s]; ok {
		return idx
	}
	idx := uint32(len(si.order))
	si.order = append(si.order, s)
	si.index[s] = idx
	return idx
}

func (si *stringInterner) count() int { return len(si.order) }

// span is a {offset, length} pair into the concatenated string or blob
// byte pool.
type span struct {
	offset uint32
	length uint32
}

// spans computes each interned string's byte offset/length into the
// concatenated, insertion-ordered byte pool, and returns the pool
// itself alongside.
func (si *stringInterner) spans() ([]span, []byte) {
	spans := make([]span, len(si.order))
	var pool []byte
	for i, s := range si.order {
		spans[i] = span{offset: uint32(len(pool)), length: uint32(len(s))}
		pool = append(pool, s...)
	}
	return spans, pool
}

// blobInterner deduplicates text-run segment lists by content. Two
// calls with the same sequence of (string content, style) segments
// resolve to the same blob index.
type blobInterner struct {
	strs  *stringInterner
	order [][]blobSegment
	index map[string]uint32
}

// blobSegment is one resolved segment inside a text-run blob: a string
// index (already resolved against the shared string table) plus its
// byte length and style.
type blobSegment struct {
	stringIndex uint32
	textLen     uint32
	style       Style
}

func newBlobInterner(strs *stringInterner) *blobInterner {
	return &blobInterner{strs: strs, index: make(map[string]uint32)}
}

// intern resolves segs (interning each segment's text into the shared
// string table as a side effect) and returns the blob's index,
// deduplicating against any previously-interned blob with identical
// resolved segments.
func (bi *blobInterner) intern(segs []TextSegment) uint32 {
	resolved := make([]blobSegment, len(segs))
	key := make([]byte, 0, len(segs)*12)
	for i, seg := range segs {
		si := bi.strs.intern(seg.Text)
		resolved[i] = blobSegment{stringIndex: si, textLen: uint32(len(seg.Text)), style: seg.Style}
		key = appendU32(key, si)
		key = appendU32(key, seg.Style.EncodeAttrs())
		key = appendU32(key, seg.Style.fgOr())
		key = appendU32(key, seg.Style.bgOr())
	}
	k := string(key)
	if idx, ok := bi.index[k]; ok {
		return idx
	}
	idx := uint32(len(bi.order))
	bi.order = append(bi.order, resolved)
	bi.index[k] = idx
	return idx
}

func (bi *blobInterner) count() int { return len(bi.order) }

func appendU32(b []byte, v uint32) []byte {
	return append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}
