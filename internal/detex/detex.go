// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package detex converts the LaTeX markup that appears in arXiv titles and
// abstracts into plain Unicode text. It covers the constructs common in
// metadata (inline math, symbol macros, accents, styled text); it is not a
// general TeX interpreter.
package detex

import (
	"strings"
	"unicode"
)

// symbols maps argument-less macros to their Unicode equivalents.
var symbols = map[string]string{
	// Greek letters.
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ",
	"epsilon": "ε", "varepsilon": "ε", "zeta": "ζ", "eta": "η",
	"theta": "θ", "vartheta": "ϑ", "iota": "ι", "kappa": "κ",
	"lambda": "λ", "mu": "μ", "nu": "ν", "xi": "ξ",
	"pi": "π", "rho": "ρ", "sigma": "σ", "tau": "τ",
	"upsilon": "υ", "phi": "φ", "varphi": "φ", "chi": "χ",
	"psi": "ψ", "omega": "ω",
	"Gamma": "Γ", "Delta": "Δ", "Theta": "Θ", "Lambda": "Λ",
	"Xi": "Ξ", "Pi": "Π", "Sigma": "Σ", "Upsilon": "Υ",
	"Phi": "Φ", "Psi": "Ψ", "Omega": "Ω",

	// Operators and relations.
	"times": "×", "cdot": "·", "pm": "±", "mp": "∓",
	"leq": "≤", "geq": "≥", "le": "≤", "ge": "≥",
	"neq": "≠", "approx": "≈", "sim": "∼", "simeq": "≃",
	"propto": "∝", "infty": "∞", "partial": "∂", "nabla": "∇",
	"rightarrow": "→", "leftarrow": "←", "to": "→",
	"Rightarrow": "⇒", "Leftarrow": "⇐",
	"sum": "∑", "prod": "∏", "int": "∫", "sqrt": "√",
	"circ": "∘", "degree": "°", "odot": "⊙", "oplus": "⊕",
	"ell": "ℓ", "hbar": "ℏ", "prime": "′", "star": "⋆",
	"lesssim": "≲", "gtrsim": "≳", "ll": "≪", "gg": "≫",
	"in": "∈", "subset": "⊂", "cup": "∪", "cap": "∩",

	// Spacing and text macros.
	"quad": " ", "qquad": "  ", ",": " ", ";": " ", " ": " ",
	"ldots": "…", "dots": "…", "cdots": "⋯",
	"%": "%", "&": "&", "#": "#", "_": "_", "$": "$",
	"{": "{", "}": "}", "textbackslash": "\\",
}

// accents maps accent macros to the combining character appended to the
// argument's first rune.
var accents = map[string]rune{
	"'":  '́', // acute
	"`":  '̀', // grave
	"^":  '̂', // circumflex
	"\"": '̈', // diaeresis
	"~":  '̃', // tilde
	"=":  '̄', // macron
	".":  '̇', // dot above
	"c":  '̧', // cedilla
	"v":  '̌', // caron
	"u":  '̆', // breve
	"H":  '̋', // double acute
	"r":  '̊', // ring above
}

// wrappers lists macros whose braced argument is kept verbatim.
var wrappers = map[string]bool{
	"textbf": true, "textit": true, "textrm": true, "textsc": true,
	"texttt": true, "textsf": true, "textsl": true, "text": true,
	"emph": true, "mathrm": true, "mathbf": true, "mathit": true,
	"mathcal": true, "mathbb": true, "mathsf": true, "mathfrak": true,
	"boldsymbol": true, "bm": true, "mbox": true, "hbox": true,
	"textsuperscript": true, "textsubscript": true,
	"underline": true, "overline": true, "tilde": true, "hat": true,
	"bar": true, "vec": true, "dot": true, "ensuremath": true,
}

// superscripts and subscripts map digits and common letters to their
// Unicode super/subscript forms, used for ^{...} and _{...}.
var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'+': '⁺', '-': '⁻', 'n': 'ⁿ', 'i': 'ⁱ',
}

var subscripts = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄',
	'5': '₅', '6': '₆', '7': '₇', '8': '₈', '9': '₉',
	'+': '₊', '-': '₋',
	'a': 'ₐ', 'e': 'ₑ', 'i': 'ᵢ', 'm': 'ₘ', 'n': 'ₙ',
	'o': 'ₒ', 'x': 'ₓ',
}

// Format renders LaTeX-marked text as plain Unicode. When conversion
// degenerates (non-empty input collapsing to nothing, as happens with
// pathological markup) the original string is returned instead.
func Format(input string) string {
	out := Convert(input)
	if strings.TrimSpace(out) == "" && strings.TrimSpace(input) != "" {
		return input
	}
	return out
}

// Convert renders LaTeX-marked text as plain Unicode. Unknown macros keep
// their argument (or drop to their bare name); math delimiters are removed.
func Convert(input string) string {
	var b strings.Builder
	r := []rune(input)
	i := 0

	for i < len(r) {
		switch r[i] {
		case '\\':
			i = convertMacro(r, i, &b)
		case '$':
			// Inline ($) and display ($$) math delimiters vanish.
			i++
			if i < len(r) && r[i] == '$' {
				i++
			}
		case '^', '_':
			i = convertScript(r, i, &b)
		case '{', '}':
			i++
		case '~':
			b.WriteRune(' ')
			i++
		case '%':
			// Comment: skip to end of line.
			for i < len(r) && r[i] != '\n' {
				i++
			}
		default:
			b.WriteRune(r[i])
			i++
		}
	}

	return b.String()
}

// convertMacro handles a backslash sequence starting at i and returns the
// index after it, writing the rendering to b.
func convertMacro(r []rune, i int, b *strings.Builder) int {
	i++ // consume the backslash
	if i >= len(r) {
		return i
	}

	// Single-character macros: escapes and accents.
	if !unicode.IsLetter(r[i]) {
		name := string(r[i])
		i++
		if comb, ok := accents[name]; ok {
			if arg, next, ok := bracedArg(r, i); ok {
				writeAccented(b, arg, comb)
				return next
			}
			if i < len(r) && r[i] != ' ' {
				writeAccented(b, string(r[i]), comb)
				return i + 1
			}
			return i
		}
		if repl, ok := symbols[name]; ok {
			b.WriteString(repl)
		}
		return i
	}

	start := i
	for i < len(r) && unicode.IsLetter(r[i]) {
		i++
	}
	name := string(r[start:i])

	if repl, ok := symbols[name]; ok {
		b.WriteString(repl)
		return i
	}
	if comb, ok := accents[name]; ok {
		if arg, next, ok := bracedArg(r, i); ok {
			writeAccented(b, arg, comb)
			return next
		}
		return i
	}
	if wrappers[name] {
		if arg, next, ok := bracedArg(r, i); ok {
			b.WriteString(Convert(arg))
			return next
		}
		return i
	}

	// Unknown macro: keep its argument when present. Otherwise drop the
	// macro and, per the TeX rule, the space that follows its name.
	if arg, next, ok := bracedArg(r, i); ok {
		b.WriteString(Convert(arg))
		return next
	}
	if i < len(r) && r[i] == ' ' {
		i++
	}
	return i
}

// convertScript handles ^ and _ scripts at i and returns the index after.
// Characters without a Unicode script form are kept as-is.
func convertScript(r []rune, i int, b *strings.Builder) int {
	table := superscripts
	if r[i] == '_' {
		table = subscripts
	}
	i++

	var arg string
	if s, next, ok := bracedArg(r, i); ok {
		arg = s
		i = next
	} else if i < len(r) {
		arg = string(r[i])
		i++
	}

	for _, c := range Convert(arg) {
		if mapped, ok := table[c]; ok {
			b.WriteRune(mapped)
		} else {
			b.WriteRune(c)
		}
	}
	return i
}

// bracedArg reads a {...} group at i, tolerating spaces before the brace
// and handling nesting. It returns the group contents, the index after the
// closing brace, and whether a group was present. When no group follows,
// the returned index is the original i.
func bracedArg(r []rune, i int) (string, int, bool) {
	start := i
	for start < len(r) && r[start] == ' ' {
		start++
	}
	if start >= len(r) || r[start] != '{' {
		return "", i, false
	}
	depth := 0
	for j := start; j < len(r); j++ {
		switch r[j] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return string(r[start+1 : j]), j + 1, true
			}
		}
	}
	// Unbalanced group: treat the rest as the argument.
	return string(r[start+1:]), len(r), true
}

// writeAccented writes arg with the combining character attached to its
// first rune.
func writeAccented(b *strings.Builder, arg string, comb rune) {
	first := true
	for _, c := range Convert(arg) {
		b.WriteRune(c)
		if first {
			b.WriteRune(comb)
			first = false
		}
	}
}
