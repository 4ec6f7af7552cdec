// Package extract pulls normalized identifiers and interaction labels out of the
// free-text columns of a PSI-MITAB interaction export.
//
// Alias columns look like `entrez gene/locuslink:SPAC20G8.08c|uniprot:P12345|swiss-prot:P12345`,
// interaction type columns look like `psi-mi:"MI:0915"(physical association)`.
// All functions are total: malformed input yields ok == false, never a panic.
package extract

import (
	"regexp"
	"strings"
)

// DefaultNamespace is the cross-reference scheme whose accessions identify interactors.
const DefaultNamespace = "swiss-prot"

// PhysicalAssociation is the normalized label of the positive class.
const PhysicalAssociation = "physical association"

// A label is the text after `"(` up to the first following parenthesis.
// The lazy quantifier stops at the first boundary, not the last.
var labelPattern = regexp.MustCompile(`"\((.+?)[()]`)

// Extractor resolves interactor identifiers for a single controlled namespace.
type Extractor struct {
	namespace string
	idPattern *regexp.Regexp
}

// NewExtractor returns an Extractor for the given scheme marker. The marker is
// matched literally and case-sensitively.
func NewExtractor(namespace string) Extractor {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return Extractor{
		namespace: namespace,
		// word characters only, so '|' and ':' never leak into the value
		idPattern: regexp.MustCompile(regexp.QuoteMeta(namespace+":") + `([\p{L}\p{N}_]+)`),
	}
}

// Namespace returns the scheme marker this extractor matches.
func (e Extractor) Namespace() string {
	return e.namespace
}

// InteractorID returns the value of the first namespace token in alias.
func (e Extractor) InteractorID(alias string) (string, bool) {
	if e.idPattern == nil {
		return NewExtractor(e.namespace).InteractorID(alias)
	}
	m := e.idPattern.FindStringSubmatch(alias)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// InteractionLabel returns the parenthesized free-text label of an interaction
// type string.
func (e Extractor) InteractionLabel(text string) (string, bool) {
	return InteractionLabel(text)
}

var defaultExtractor = NewExtractor(DefaultNamespace)

// InteractorID extracts the swiss-prot accession from an alias string.
func InteractorID(alias string) (string, bool) {
	return defaultExtractor.InteractorID(alias)
}

// InteractionLabel extracts the label from a `psi-mi:"XX:NNNN"(label)` string.
// Leading quote characters are stripped from the result.
func InteractionLabel(text string) (string, bool) {
	m := labelPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimLeft(m[1], `"`), true
}

// IsPhysicalAssociation reports whether label is exactly the physical association label.
func IsPhysicalAssociation(label string) bool {
	return label == PhysicalAssociation
}
