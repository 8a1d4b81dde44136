package leadscout

import (
	"encoding/json"
	"strings"
)

// LineBuffer reassembles complete lines from a stream of text fragments
// whose boundaries are arbitrary. Fragments may split a line anywhere, even
// mid-rune: concatenation restores the original byte sequence, and '\n'
// never occurs inside a multi-byte UTF-8 rune.
type LineBuffer struct {
	pending strings.Builder
}

// Add appends a fragment and returns the complete lines that formed,
// without their trailing newline. Text after the last newline stays
// buffered until a later Add completes it or Flush drains it.
func (b *LineBuffer) Add(fragment string) []string {
	if fragment == "" {
		return nil
	}
	b.pending.WriteString(fragment)

	buffered := b.pending.String()
	i := strings.LastIndexByte(buffered, '\n')
	if i < 0 {
		return nil
	}

	lines := strings.Split(buffered[:i], "\n")
	b.pending.Reset()
	b.pending.WriteString(buffered[i+1:])
	return lines
}

// Flush returns whatever text remains unterminated and resets the buffer.
// The final record of a stream often arrives without a trailing newline;
// callers pass the flushed text through the same per-line handling.
func (b *LineBuffer) Flush() string {
	rest := b.pending.String()
	b.pending.Reset()
	return rest
}

// Decoder turns a stream of text fragments into Lead records. Records are
// newline-delimited JSON objects; fragments may split a record anywhere.
// Lines that fail to parse or validate are skipped and never interrupt
// decoding of later lines. A Decoder serves exactly one search session and
// is not reused.
type Decoder struct {
	lines   LineBuffer
	skipped int

	// OnSkip, if set, is called for each discarded line with the offending
	// line and the parse or validation error.
	OnSkip func(line string, err error)
}

// NewDecoder returns a Decoder ready for a fresh stream.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed appends a fragment and returns the leads decoded from any lines the
// fragment completed, in order.
func (d *Decoder) Feed(fragment string) []*Lead {
	var leads []*Lead
	for _, line := range d.lines.Add(fragment) {
		if lead := d.decodeLine(line); lead != nil {
			leads = append(leads, lead)
		}
	}
	return leads
}

// Flush decodes any residual unterminated text as a final record. Call it
// exactly once, after the stream has ended cleanly.
func (d *Decoder) Flush() []*Lead {
	rest := d.lines.Flush()
	if lead := d.decodeLine(rest); lead != nil {
		return []*Lead{lead}
	}
	return nil
}

// Skipped reports how many non-blank lines were discarded as malformed.
func (d *Decoder) Skipped() int {
	return d.skipped
}

// decodeLine parses one line into a Lead. Blank lines are ignored;
// malformed lines are counted, reported, and dropped.
func (d *Decoder) decodeLine(line string) *Lead {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	var lead Lead
	if err := json.Unmarshal([]byte(line), &lead); err != nil {
		d.skip(line, err)
		return nil
	}
	if err := lead.Validate(); err != nil {
		d.skip(line, err)
		return nil
	}
	return &lead
}

func (d *Decoder) skip(line string, err error) {
	d.skipped++
	if d.OnSkip != nil {
		d.OnSkip(line, err)
	}
}
