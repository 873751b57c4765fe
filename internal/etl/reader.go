package etl

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/macseguridad/flota-backend/pkg/etlerrors"
	"github.com/macseguridad/flota-backend/pkg/logger"
	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Identity-column name variants normalized to PATENTE before mapping.
var plateHeaderAliases = map[string]string{
	"PATENTE_": "PATENTE",
	"PATENTES": "PATENTE",
	"DOMINIO":  "PATENTE",
	"DOMINIO_": "PATENTE",
}

// Reader loads delimited source files into frames, tolerating mixed
// encodings, sniffed delimiters and malformed rows.
type Reader struct {
	logg *logger.Logger
}

func NewReader(logg *logger.Logger) *Reader {
	return &Reader{logg: logg}
}

// Read loads path into a frame. A missing or undecodable file yields an empty
// frame and a warning, never an error: individual sources are optional and the
// pipeline degrades per file.
func (r *Reader) Read(ctx context.Context, path string, sum *Summary) Frame {
	ctx = r.logg.WithSource(ctx, path)

	raw, err := os.ReadFile(path)
	if err != nil {
		sum.RecordMissing(path)
		r.logg.Warn(ctx, etlerrors.Wrap(etlerrors.CodeSourceMissing, err, "source file not found").Error())
		return Frame{}
	}

	text := decodeBytes(raw)
	frame, skipped := parseDelimited(text)
	if frame.Empty() {
		sum.RecordMissing(path)
		r.logg.Warn(ctx, etlerrors.New(etlerrors.CodeSourceMissing, "source file empty after read").Error())
		return Frame{}
	}

	sum.RecordSource(path, len(frame.Rows), skipped)
	if skipped > 0 {
		r.logg.Warn(r.logg.WithField(ctx, "skipped_rows", skipped), "malformed rows skipped")
	}
	return frame
}

// decodeBytes strips a UTF-8 BOM and falls back to Latin-1 when the bytes are
// not valid UTF-8. Legacy exports mix both encodings.
func decodeBytes(raw []byte) string {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

// sniffDelimiter picks the candidate occurring most often in the header line.
func sniffDelimiter(header string) rune {
	best, bestCount := ',', 0
	for _, candidate := range []rune{',', ';', '\t', '|'} {
		if n := strings.Count(header, string(candidate)); n > bestCount {
			best, bestCount = candidate, n
		}
	}
	return best
}

func parseDelimited(text string) (Frame, int) {
	firstLine := text
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		firstLine = text[:idx]
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = sniffDelimiter(firstLine)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return Frame{}, 0
	}

	columns := make([]string, len(header))
	for i, col := range header {
		columns[i] = CleanHeader(col)
	}
	for i, col := range columns {
		if alias, ok := plateHeaderAliases[col]; ok {
			columns[i] = alias
		}
	}

	var rows []Row
	skipped := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		if len(record) > len(columns) {
			skipped++
			continue
		}
		row := make(Row, len(columns))
		empty := true
		for i, col := range columns {
			value := ""
			if i < len(record) {
				value = strings.TrimSpace(record[i])
			}
			if value != "" {
				empty = false
			}
			row[col] = value
		}
		if empty {
			continue
		}
		rows = append(rows, row)
	}

	return Frame{Columns: columns, Rows: rows}, skipped
}

// CleanHeader canonicalizes a raw column header: BOM artifacts and mojibake
// repaired, uppercased, non-alphanumeric runs collapsed to a single
// underscore.
func CleanHeader(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.TrimPrefix(s, "Ï»¿")
	s = repairMojibake(s)
	s = strings.ToUpper(strings.TrimSpace(s))

	var b strings.Builder
	pendingSep := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}

// repairMojibake undoes UTF-8 text that was decoded as Latin-1 ("AÃ±o"): if
// reinterpreting the code points as Latin-1 bytes yields valid multi-byte
// UTF-8, keep the reinterpretation.
func repairMojibake(s string) string {
	buf := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			return s
		}
		buf = append(buf, byte(r))
	}
	if len(buf) == len(s) {
		// all single-byte runes, nothing to repair
		return s
	}
	if utf8.Valid(buf) {
		return string(buf)
	}
	return s
}
