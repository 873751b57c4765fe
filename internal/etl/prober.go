package etl

import (
	"context"
	"regexp"
	"strings"

	"github.com/macseguridad/flota-backend/internal/records"
	"github.com/macseguridad/flota-backend/pkg/doctree"
	"github.com/macseguridad/flota-backend/pkg/enums"
	"github.com/macseguridad/flota-backend/pkg/logger"
)

// OS metadata droppings that must never surface as unclassified documents.
var junkFiles = map[string]struct{}{
	"thumbs.db":   {},
	"desktop.ini": {},
	".ds_store":   {},
}

// Prober probes the digital-document tree for each vehicle's expected files.
// It only records names and existence; file bytes stay where they are.
type Prober struct {
	tree doctree.Tree
	// rootName prefixes the store paths written into the records, always with
	// forward slashes regardless of host OS.
	rootName string
	logg     *logger.Logger
}

func NewProber(tree doctree.Tree, rootName string, logg *logger.Logger) *Prober {
	return &Prober{tree: tree, rootName: strings.ReplaceAll(rootName, "\\", "/"), logg: logg}
}

// Probe scans the vehicle's directory (named after its plate) for the three
// well-known document patterns, then sweeps up the leftovers as unclassified
// entries. Each well-known probe yields exactly one entry, found or not; an
// absent directory yields the three not-found entries and nothing else.
func (p *Prober) Probe(ctx context.Context, plate string) []records.DigitalDocument {
	var names []string
	if p.tree.Exists(plate) {
		listed, err := p.tree.ListDir(plate)
		if err != nil {
			p.logg.Warn(p.logg.WithPlate(ctx, plate), "could not scan document directory")
		} else {
			names = listed
		}
	}

	matched := make(map[string]bool, len(names))
	docs := make([]records.DigitalDocument, 0, len(enums.WellKnownDigitalDocs))
	for _, docType := range enums.WellKnownDigitalDocs {
		pattern := p.patternFor(docType, plate)
		name, found := firstMatch(names, pattern, matched)
		if !found {
			docs = append(docs, records.DigitalDocument{Type: docType})
			continue
		}
		matched[strings.ToLower(name)] = true
		docs = append(docs, p.foundDoc(docType, plate, name))
	}

	for _, name := range names {
		lower := strings.ToLower(name)
		if matched[lower] {
			continue
		}
		if _, junk := junkFiles[lower]; junk {
			continue
		}
		matched[lower] = true
		docs = append(docs, p.foundDoc(enums.DigitalDocOtros, plate, name))
	}
	return docs
}

func (p *Prober) patternFor(docType enums.DigitalDocType, plate string) string {
	switch docType {
	case enums.DigitalDocTitulo:
		return "*TITULO AUTOMOTOR*.pdf"
	case enums.DigitalDocPoliza:
		return "Poliza*.pdf"
	case enums.DigitalDocCedulaVerde:
		return plate + "*.jpg"
	default:
		return ""
	}
}

func (p *Prober) foundDoc(docType enums.DigitalDocType, plate, name string) records.DigitalDocument {
	path := p.rootName + "/" + plate + "/" + name
	return records.DigitalDocument{
		Type:         docType,
		Filename:     &name,
		ExpectedPath: &path,
		Exists:       true,
	}
}

// firstMatch returns the first unclaimed directory entry matching the glob,
// case-insensitively.
func firstMatch(names []string, pattern string, claimed map[string]bool) (string, bool) {
	re := globToRegexp(pattern)
	for _, name := range names {
		if claimed[strings.ToLower(name)] {
			continue
		}
		if re.MatchString(name) {
			return name, true
		}
	}
	return "", false
}

// globToRegexp converts a single-level glob ("Poliza*.pdf") into an anchored,
// case-insensitive regexp. Only * and ? carry meaning; everything else is
// matched literally.
func globToRegexp(pattern string) *regexp.Regexp {
	escaped := regexp.QuoteMeta(pattern)
	escaped = strings.ReplaceAll(escaped, `\*`, `.*`)
	escaped = strings.ReplaceAll(escaped, `\?`, `.`)
	return regexp.MustCompile(`(?i)^` + escaped + `$`)
}
