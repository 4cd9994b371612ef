package tetris

// View is a renderable copy of a session's state.
type View struct {
	Cells      Grid
	Active     [4]Point
	ActiveKind Kind
	// Ghost is where the active piece would land on a hard drop.
	Ghost   [4]Point
	Preview []Kind
	Score   int
	Lines   int
	Over    bool
}

// View captures the current state for a renderer.
func (s *Session) View() View {
	ghost := s.current.Shifted(0, s.field.DropDistance(s.current))
	return View{
		Cells:      s.field.Cells(),
		Active:     s.current.Cells(),
		ActiveKind: s.current.Kind,
		Ghost:      ghost.Cells(),
		Preview:    s.queue.Preview(),
		Score:      s.score,
		Lines:      s.lines,
		Over:       s.over,
	}
}
