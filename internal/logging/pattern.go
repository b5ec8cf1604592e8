package logging

import (
	"strconv"
	"strings"
	"time"
)

// Entry is one log line before formatting.
type Entry struct {
	Time    time.Time
	Logger  string
	Level   Severity
	Message string
}

// pattern is a compiled line template. Tokens follow the strftime-like
// convention of the config's Pattern field; compiling once keeps the
// per-line cost to appends.
type pattern struct {
	segs []patternSeg
}

type patternSeg struct {
	lit string
	tok byte // 0 for a literal segment
}

func compilePattern(s string) *pattern {
	p := &pattern{}
	var lit strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '%' || i+1 == len(s) {
			lit.WriteByte(s[i])
			continue
		}
		c := s[i+1]
		switch c {
		case 'Y', 'm', 'd', 'H', 'M', 'S', 'e', 'n', 'l', 'v':
			if lit.Len() > 0 {
				p.segs = append(p.segs, patternSeg{lit: lit.String()})
				lit.Reset()
			}
			p.segs = append(p.segs, patternSeg{tok: c})
			i++
		case '%':
			lit.WriteByte('%')
			i++
		default:
			// Unrecognized token: pass through literally.
			lit.WriteByte('%')
		}
	}
	if lit.Len() > 0 {
		p.segs = append(p.segs, patternSeg{lit: lit.String()})
	}
	return p
}

// render appends the formatted line, without trailing newline, to buf.
// levelText lets the console sink substitute a colorized severity name.
func (p *pattern) render(buf []byte, e Entry, levelText string) []byte {
	for _, seg := range p.segs {
		if seg.tok == 0 {
			buf = append(buf, seg.lit...)
			continue
		}
		switch seg.tok {
		case 'Y':
			buf = appendPadded(buf, e.Time.Year(), 4)
		case 'm':
			buf = appendPadded(buf, int(e.Time.Month()), 2)
		case 'd':
			buf = appendPadded(buf, e.Time.Day(), 2)
		case 'H':
			buf = appendPadded(buf, e.Time.Hour(), 2)
		case 'M':
			buf = appendPadded(buf, e.Time.Minute(), 2)
		case 'S':
			buf = appendPadded(buf, e.Time.Second(), 2)
		case 'e':
			buf = appendPadded(buf, e.Time.Nanosecond()/int(time.Millisecond), 3)
		case 'n':
			buf = append(buf, e.Logger...)
		case 'l':
			buf = append(buf, levelText...)
		case 'v':
			buf = append(buf, e.Message...)
		}
	}
	return buf
}

func appendPadded(buf []byte, v, width int) []byte {
	s := strconv.Itoa(v)
	for n := width - len(s); n > 0; n-- {
		buf = append(buf, '0')
	}
	return append(buf, s...)
}
