package view

import (
	"bytes"
	"io"
	"maps"
)

// clipFrame is a clip being recorded into the output buffer at index buf.
type clipFrame struct {
	name string
	buf  int
	echo bool
}

// stackWriter writes to the innermost output buffer.
type stackWriter struct {
	v *View
}

func (w stackWriter) Write(p []byte) (int, error) {
	if n := len(w.v.out); n > 0 {
		return w.v.out[n-1].Write(p)
	}
	return len(p), nil
}

// Capture runs fn with a writer bound to a fresh output buffer and returns
// what was written. Clips left open by fn are discarded.
func (v *View) Capture(fn func(w io.Writer) error) (string, error) {
	depth := len(v.out)
	v.out = append(v.out, new(bytes.Buffer))
	defer v.unwind(depth)

	if err := fn(stackWriter{v: v}); err != nil {
		return "", err
	}
	return v.out[depth].String(), nil
}

// Depth returns the number of open output buffers.
func (v *View) Depth() int {
	return len(v.out)
}

// BeginClip starts recording output into the named clip. With echo set, the
// recorded text is also written in place when the clip ends.
func (v *View) BeginClip(name string, echo bool) {
	v.out = append(v.out, new(bytes.Buffer))
	v.open = append(v.open, clipFrame{name: name, buf: len(v.out) - 1, echo: echo})
}

// EndClip stops recording the innermost clip and stores its text.
func (v *View) EndClip() error {
	n := len(v.open)
	if n == 0 {
		return ErrNoOpenClip
	}
	frame := v.open[n-1]
	v.open = v.open[:n-1]

	text := v.out[frame.buf].String()
	v.unwind(frame.buf)

	v.clips[frame.name] = text
	if frame.echo {
		_, _ = io.WriteString(stackWriter{v: v}, text)
	}
	return nil
}

// Clip returns the text of a recorded clip.
func (v *View) Clip(name string) string {
	return v.clips[name]
}

// Clips returns a copy of the clip store.
func (v *View) Clips() map[string]string {
	return maps.Clone(v.clips)
}

// unwind closes output buffers and clip frames above depth.
func (v *View) unwind(depth int) {
	if depth < 0 || depth > len(v.out) {
		return
	}
	v.out = v.out[:depth]

	i := len(v.open)
	for i > 0 && v.open[i-1].buf >= depth {
		i--
	}
	v.open = v.open[:i]
}
