package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInteractorID(t *testing.T) {
	tests := []struct {
		name   string
		alias  string
		want   string
		wantOK bool
	}{
		{"swiss-prot after other scheme", "uniprot:P12345|swiss-prot:P12345", "P12345", true},
		{"single token", "swiss-prot:Q9Y6K9", "Q9Y6K9", true},
		{"stops at separator", "swiss-prot:P04637|refseq:NP_000537", "P04637", true},
		{"stops at colon", "swiss-prot:P04637:extra", "P04637", true},
		{"first token wins", "swiss-prot:A0A024|swiss-prot:B1B2B3", "A0A024", true},
		{"underscore kept", "swiss-prot:CDC28_YEAST", "CDC28_YEAST", true},
		{"empty value skipped", "swiss-prot:|swiss-prot:P11111", "P11111", true},
		{"no namespace token", "uniprot:P12345|entrez gene/locuslink:7157", "", false},
		{"case sensitive", "Swiss-Prot:P12345", "", false},
		{"empty value only", "swiss-prot:", "", false},
		{"empty string", "", "", false},
		{"dash placeholder", "-", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := InteractorID(tt.alias)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInteractorID_Idempotent(t *testing.T) {
	first, ok := InteractorID("uniprot:P12345|swiss-prot:P12345")
	assert.True(t, ok)

	second, ok := InteractorID(DefaultNamespace + ":" + first)
	assert.True(t, ok)
	assert.Equal(t, first, second)
}

func TestExtractor_CustomNamespace(t *testing.T) {
	ex := NewExtractor("uniprot/swiss-prot")
	assert.Equal(t, "uniprot/swiss-prot", ex.Namespace())

	got, ok := ex.InteractorID("intact:EBI-1|uniprot/swiss-prot:P38398")
	assert.True(t, ok)
	assert.Equal(t, "P38398", got)

	_, ok = ex.InteractorID("swiss-prot:P38398")
	assert.False(t, ok, "marker must match literally")

	// zero value falls back to the default namespace
	var zero Extractor
	got, ok = zero.InteractorID("swiss-prot:P38398")
	assert.True(t, ok)
	assert.Equal(t, "P38398", got)
}

func TestInteractionLabel(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"physical association", `psi-mi:"MI:0915"(physical association)`, "physical association", true},
		{"colocalization", `psi-mi:"MI:0403"(colocalization)`, "colocalization", true},
		{"stops at first boundary", `psi-mi:"MI:0407"(direct interaction (in vitro))`, "direct interaction ", true},
		{"leading quote stripped", `psi-mi:"MI:0000"("quoted label)`, "quoted label", true},
		{"no quoted paren", `psi-mi:MI:0915(physical association)`, "", false},
		{"no closing paren", `psi-mi:"MI:0915"(physical association`, "", false},
		{"empty parens", `psi-mi:"MI:0915"()`, "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := InteractionLabel(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsPhysicalAssociation(t *testing.T) {
	assert.True(t, IsPhysicalAssociation("physical association"))
	assert.False(t, IsPhysicalAssociation("Physical association"))
	assert.False(t, IsPhysicalAssociation("physical association "))
	assert.False(t, IsPhysicalAssociation("association"))
}
