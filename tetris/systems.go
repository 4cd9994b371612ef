package tetris

// HardDropSystem drops the active piece to its landing row and locks it. A hard drop
// ends the frame: no shifting, rotation or gravity follows it.
type HardDropSystem struct{}

func (*HardDropSystem) Execute(frame *Frame) {
	if !frame.Input.HardDrop {
		return
	}

	s := frame.Session
	rows := s.field.DropDistance(s.current)
	s.current = s.current.Shifted(0, rows)
	s.score += rows * HardDropPoints
	s.lockCurrent()

	frame.Halt()
}

// ShiftSystem moves the active piece sideways with delayed auto-repeat.
type ShiftSystem struct{}

func (*ShiftSystem) Execute(frame *Frame) {
	s := frame.Session

	for range s.left.Step(frame.Input.Left, frame.DeltaTime) {
		s.try(s.current.Shifted(-1, 0))
	}
	for range s.right.Step(frame.Input.Right, frame.DeltaTime) {
		s.try(s.current.Shifted(1, 0))
	}
}

// RotateSystem turns the active piece clockwise when rotate is pressed. There are no
// wall kicks: a rotation that does not fit is dropped.
type RotateSystem struct{}

func (*RotateSystem) Execute(frame *Frame) {
	if !frame.Input.Rotate {
		return
	}
	s := frame.Session
	s.try(s.current.Rotated())
}

// SoftDropSystem moves the active piece down one row per frame while down is held.
// It does not touch the gravity timer.
type SoftDropSystem struct{}

func (*SoftDropSystem) Execute(frame *Frame) {
	if !frame.Input.Down {
		return
	}
	s := frame.Session
	s.try(s.current.Shifted(0, 1))
}

// GravitySystem lowers the active piece once per drop interval and locks it when it
// cannot fall any further.
type GravitySystem struct{}

func (*GravitySystem) Execute(frame *Frame) {
	s := frame.Session

	s.dropTimer += frame.DeltaTime
	if s.dropTimer < s.settings.DropInterval.Seconds() {
		return
	}
	s.dropTimer = 0

	if !s.try(s.current.Shifted(0, 1)) {
		s.lockCurrent()
	}
}
