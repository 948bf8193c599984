package playing

// Dialog is the NPC conversation box. While open it blocks the world tick.
type Dialog struct {
	speaker string
	lines   []string
	line    int
}

// Open shows lines from speaker. An empty conversation is ignored.
func (d *Dialog) Open(speaker string, lines []string) {
	if len(lines) == 0 {
		return
	}
	d.speaker = speaker
	d.lines = append([]string(nil), lines...)
	d.line = 0
}

// Advance moves to the next line and closes after the last one
func (d *Dialog) Advance() {
	if !d.Blocking() {
		return
	}
	d.line++
	if d.line >= len(d.lines) {
		d.Close()
	}
}

// Close dismisses the dialog
func (d *Dialog) Close() {
	d.speaker, d.lines, d.line = "", nil, 0
}

// Blocking reports whether a conversation is on screen
func (d *Dialog) Blocking() bool { return d.line < len(d.lines) }

// Current returns the speaker and the visible line
func (d *Dialog) Current() (string, string) {
	if !d.Blocking() {
		return "", ""
	}
	return d.speaker, d.lines[d.line]
}
