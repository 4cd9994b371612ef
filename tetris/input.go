package tetris

// Input is the per-frame key snapshot supplied by the host.
//
// Left, Right and Down are level-sensitive: true on every frame the key is held.
// Rotate and HardDrop are edge-sensitive: true only on the frame the key goes down.
type Input struct {
	Left     bool
	Right    bool
	Down     bool
	Rotate   bool
	HardDrop bool
}

// InputSource is polled once per frame by Session.Run.
type InputSource interface {
	Poll() Input
}

// InputFunc adapts a function to InputSource.
type InputFunc func() Input

func (f InputFunc) Poll() Input { return f() }
