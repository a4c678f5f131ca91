package lesson

// Store holds an ordered block collection and provides the canonical
// mutations. The flat list is the single source of truth; callers needing the
// legacy nested shape use Nested(). A Store is not safe for concurrent use.
type Store struct {
	blocks []ContentBlock
}

// NewStore wraps an existing block list (copied) in a Store.
func NewStore(blocks ...ContentBlock) *Store {
	s := &Store{blocks: make([]ContentBlock, len(blocks))}
	copy(s.blocks, blocks)
	return s
}

// Blocks returns a copy of the block list in display order.
func (s *Store) Blocks() []ContentBlock {
	out := make([]ContentBlock, len(s.blocks))
	copy(out, s.blocks)
	return out
}

func (s *Store) Len() int { return len(s.blocks) }

// MaxOrder returns the highest order value currently assigned.
// Orders are not gap-free after deletions, so this is not necessarily Len().
func (s *Store) MaxOrder() int {
	var max int
	for _, b := range s.blocks {
		if b.Order > max {
			max = b.Order
		}
	}
	return max
}

// Get returns the block with the given id, or ErrBlockNotFound.
func (s *Store) Get(id string) (ContentBlock, error) {
	for _, b := range s.blocks {
		if b.ID == id {
			return b, nil
		}
	}
	return ContentBlock{}, ErrBlockNotFound
}

// Append adds the block to the end of the list, assigning the next order.
func (s *Store) Append(b ContentBlock) ContentBlock {
	b.Order = s.MaxOrder() + 1
	s.blocks = append(s.blocks, b)
	return b
}

// UpdateByID merges patch fields into the matching block.
// A missing id returns ErrBlockNotFound; the store is left unchanged either
// way, and callers may treat the miss as a tolerated no-op.
func (s *Store) UpdateByID(id string, patch BlockPatch) (ContentBlock, error) {
	for i := range s.blocks {
		if s.blocks[i].ID == id {
			patch.apply(&s.blocks[i])
			return s.blocks[i], nil
		}
	}
	return ContentBlock{}, ErrBlockNotFound
}

// RemoveByID drops the matching block. Remaining blocks keep their id and
// order untouched (orders are display-only and may become gapped).
func (s *Store) RemoveByID(id string) error {
	for i := range s.blocks {
		if s.blocks[i].ID == id {
			s.blocks = append(s.blocks[:i], s.blocks[i+1:]...)
			return nil
		}
	}
	return ErrBlockNotFound
}

// Reorder moves the block with the given id to newIndex (0-based) and
// renumbers every block 1..n so orders match the new display sequence.
func (s *Store) Reorder(id string, newIndex int) error {
	if newIndex < 0 || newIndex >= len(s.blocks) {
		return ErrBadBlockIndex
	}
	oldIndex := -1
	for i := range s.blocks {
		if s.blocks[i].ID == id {
			oldIndex = i
			break
		}
	}
	if oldIndex == -1 {
		return ErrBlockNotFound
	}

	moved := s.blocks[oldIndex]
	s.blocks = append(s.blocks[:oldIndex], s.blocks[oldIndex+1:]...)
	s.blocks = append(s.blocks[:newIndex], append([]ContentBlock{moved}, s.blocks[newIndex:]...)...)

	for i := range s.blocks {
		s.blocks[i].Order = i + 1
	}
	return nil
}

// EditSession is a scoped rich-text editing buffer for one block: acquire the
// buffer, mutate it, then commit or discard. The store is only touched on
// Commit.
type EditSession struct {
	store   *Store
	blockID string
	buffer  string
	done    bool
}

// BeginEdit loads the block's current content into a fresh edit buffer.
func (s *Store) BeginEdit(id string) (*EditSession, error) {
	b, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return &EditSession{store: s, blockID: b.ID, buffer: b.Content}, nil
}

func (e *EditSession) Buffer() string { return e.buffer }

func (e *EditSession) SetBuffer(content string) {
	if !e.done {
		e.buffer = content
	}
}

// Commit writes the buffer back to the block and ends the session.
func (e *EditSession) Commit() (ContentBlock, error) {
	if e.done {
		return ContentBlock{}, ErrBlockNotFound
	}
	e.done = true
	return e.store.UpdateByID(e.blockID, BlockPatch{Content: &e.buffer})
}

// Discard ends the session without mutating the store.
func (e *EditSession) Discard() {
	e.done = true
}
