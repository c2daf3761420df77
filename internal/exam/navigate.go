package exam

// Next moves to the following question, crossing into the next non-empty
// block at a block boundary. At the last question it does nothing.
func (s *Session) Next() error {
	if err := s.requireNavigable(); err != nil {
		return err
	}
	if s.pos.Question+1 < len(s.exam.Blocks[s.pos.Block].Questions) {
		s.pos.Question++
		return nil
	}
	for b := s.pos.Block + 1; b < NumBlocks; b++ {
		if len(s.exam.Blocks[b].Questions) > 0 {
			s.pos = Position{Block: b, Question: 0}
			return nil
		}
	}
	return nil
}

// Prev moves to the preceding question, crossing into the last question
// of the previous non-empty block. At the first question it does nothing.
func (s *Session) Prev() error {
	if err := s.requireNavigable(); err != nil {
		return err
	}
	if s.pos.Question > 0 {
		s.pos.Question--
		return nil
	}
	for b := s.pos.Block - 1; b >= 0; b-- {
		if n := len(s.exam.Blocks[b].Questions); n > 0 {
			s.pos = Position{Block: b, Question: n - 1}
			return nil
		}
	}
	return nil
}

// Jump moves the pointer to (block, question), clamped to the exam. A
// target block without questions leaves the pointer where it is.
func (s *Session) Jump(block, question int) error {
	if err := s.requireNavigable(); err != nil {
		return err
	}
	s.jump(block, question)
	return nil
}

func (s *Session) jump(block, question int) {
	block = clamp(block, 0, NumBlocks-1)
	n := len(s.exam.Blocks[block].Questions)
	if n == 0 {
		return
	}
	s.pos = Position{Block: block, Question: clamp(question, 0, n-1)}
}

func (s *Session) requireNavigable() error {
	if s.exam == nil {
		return ErrNoExam
	}
	if s.phase != PhaseExam && s.phase != PhaseReview {
		return ErrWrongPhase
	}
	return nil
}

// firstPosition returns the first question of the first non-empty block.
func firstPosition(e *Exam) (Position, bool) {
	for b, blk := range e.Blocks {
		if len(blk.Questions) > 0 {
			return Position{Block: b}, true
		}
	}
	return Position{}, false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
