// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package detex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "Galaxy formation at high redshift", "Galaxy formation at high redshift"},
		{"greek letters", `$\alpha$ Centauri and $\Omega_m$`, "α Centauri and Ωₘ"},
		{"inline math stripped", `A $z \sim 2$ survey`, "A z ∼ 2 survey"},
		{"display math stripped", `$$E = mc^2$$`, "E = mc²"},
		{"superscript digits", `10^{42} erg`, "10⁴² erg"},
		{"subscript digits", `H_2O and M_{200}`, "H₂O and M₂₀₀"},
		{"styled text unwrapped", `\textbf{bold} and \emph{emphasis}`, "bold and emphasis"},
		{"nested wrappers", `\textit{\textbf{nested}}`, "nested"},
		// Accented output uses combining characters.
		{"accents", `Schr\"{o}dinger and \'{e}tude`, "Schrödinger and étude"},
		{"accent without braces", `na\"ive`, "naïve"},
		{"escaped specials", `50\% of A\&B`, "50% of A&B"},
		{"tilde is space", "van~der~Waals", "van der Waals"},
		{"relation symbols", `$M \leq 10$ and $L \geq 5$`, "M ≤ 10 and L ≥ 5"},
		{"unknown macro keeps argument", `\unknowncmd{kept}`, "kept"},
		{"unknown macro without argument dropped", `before \unknowncmd after`, "before after"},
		{"comment stripped", "visible % hidden comment", "visible "},
		{"braces vanish", "{grouped} text", "grouped text"},
		{"empty input", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Convert(tt.input))
		})
	}
}

func TestConvertUnbalancedGroup(t *testing.T) {
	// An unterminated group consumes the rest of the input but must not
	// lose the text.
	assert.Equal(t, "rest of title", Convert(`\textbf{rest of title`))
}

func TestFormatFallsBackOnDegenerateOutput(t *testing.T) {
	// Input made entirely of an unknown argument-less macro would collapse
	// to nothing; Format keeps the original.
	input := `\baddata`
	assert.Equal(t, input, Format(input))
}

func TestFormatPassesThroughNormalConversion(t *testing.T) {
	assert.Equal(t, "α decay", Format(`$\alpha$ decay`))
}
