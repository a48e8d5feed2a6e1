package ansipainter

// TODO: Consider True Color support? See https://gist.github.com/XVilka/8346728
// and https://github.com/chalk/chalk and https://github.com/gookit/color

// Suggested colors (some are unreadable in common cases):
// - Good: cyan, yellow (limited use), bold, green, magenta, red
// - Bad: blue (not visible on cmd.exe), grey (same color as background on
//   Solarized Dark theme from <https://github.com/altercation/solarized>, see
//   issue #160
// TODO: is blue not being visible on cmd.exe (or whatever common Window shell) still true?

import (
	"strconv"
	"strings"
)

// ---- BEGIN code imported from https://github.com/fatih/color

// Attribute defines a single SGR Code
type Attribute int

const escape = "\x1b"

// Base attributes
const (
	Reset Attribute = iota
	Bold
	Faint
	Italic
	Underline
	BlinkSlow
	BlinkRapid
	ReverseVideo
	Concealed
	CrossedOut
)

// Foreground text colors
const (
	FgBlack Attribute = iota + 30
	FgRed
	FgGreen
	FgYellow
	FgBlue
	FgMagenta
	FgCyan
	FgWhite
)

// Foreground Hi-Intensity text colors
const (
	FgHiBlack Attribute = iota + 90
	FgHiRed
	FgHiGreen
	FgHiYellow
	FgHiBlue
	FgHiMagenta
	FgHiCyan
	FgHiWhite
)

// Background text colors
const (
	BgBlack Attribute = iota + 40
	BgRed
	BgGreen
	BgYellow
	BgBlue
	BgMagenta
	BgCyan
	BgWhite
)

// Background Hi-Intensity text colors
const (
	BgHiBlack Attribute = iota + 100
	BgHiRed
	BgHiGreen
	BgHiYellow
	BgHiBlue
	BgHiMagenta
	BgHiCyan
	BgHiWhite
)

// ---- END code imported from github.com/fatih/color

const sgrReset = escape + "[0m" // Reset == 0

// ANSIPainter handles writing ANSI coloring escape codes to a strings.Builder.
// It is a mapping of rendered-query "role" to ANSI escape attribute code.
//
// TODO: can 'role' be an enum?
type ANSIPainter struct {
	// Mapping JQL2 rendering role to ANSI Select Graphic Rendition (SGR).
	// https://en.wikipedia.org/wiki/ANSI_escape_code#SGR_(Select_Graphic_Rendition)_parameters
	// e.g. {"keyword": "\x1b[36m"} maps the "keyword" role to cyan (36).
	sgrFromRole map[string]string
	painting    bool
}

// Paint ... TODO:doc
func (p *ANSIPainter) Paint(b *strings.Builder, role string) {
	sgr, ok := p.sgrFromRole[role]
	if ok {
		b.WriteString(sgr)
		p.painting = true
	} else {
		p.painting = false
	}
}

// Reset ... TODO:doc
func (p *ANSIPainter) Reset(b *strings.Builder) {
	// Skipped if the previous Paint wrote no code (p.painting is false).
	if p.painting {
		b.WriteString(sgrReset)
	}
}

// New creates a new ANSIPainter from a mapping of roles (parts of a rendered
// JQL2 query) to an array of ANSI attributes (colors and styles).
func New(attrsFromRole map[string][]Attribute) *ANSIPainter {
	p := ANSIPainter{}
	p.sgrFromRole = make(map[string]string)
	for role, attrs := range attrsFromRole {
		sgr := escape + "["
		for i, attr := range attrs {
			if i > 0 {
				sgr += ";"
			}
			sgr += strconv.Itoa(int(attr))
		}
		sgr += "m"
		p.sgrFromRole[role] = sgr
	}
	return &p
}

// NoColorPainter is a painter that emits no ANSI codes.
var NoColorPainter = New(nil)

// DefaultPainter implements the stock default color scheme for `jql2`'s
// canonicalized-query output. It also defines an "errorCaret" role, but
// `jql2` prints syntax-error diagnostics unpainted.
// TODO: test on windows
var DefaultPainter = New(map[string][]Attribute{
	"keyword":       {FgCyan},
	"identifier":    {FgHiBlue},
	"bracketedName": {Bold, FgHiBlue},
	"literal":       {FgGreen},
	"bindVariable":  {Italic, FgYellow},
	"operator":      {FgMagenta},
	"errorCaret":    {Bold, FgRed},
})

// MonochromePainter uses styles only (bold keywords, underlined bracketed
// names, a bold error caret) and no color, for terminals that support SGR
// but not color. Other roles are left unstyled.
var MonochromePainter = New(map[string][]Attribute{
	"keyword":       {Bold},
	"bracketedName": {Underline},
	"errorCaret":    {Bold},
})

// PainterFromName maps known painter name to an ANSIPainter.
var PainterFromName = map[string]*ANSIPainter{
	"default":    DefaultPainter,
	"monochrome": MonochromePainter,
	"none":       NoColorPainter,
}
