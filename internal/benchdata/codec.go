// Package benchdata reads and writes the data.js document consumed by the
// benchmark chart page.
package benchdata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"

	"github.com/DjordjeVuckovic/bench-history/internal/apperr"
	"github.com/DjordjeVuckovic/bench-history/internal/domain"
	jsoniter "github.com/json-iterator/go"
)

const (
	GlobalVar = "window.BENCHMARK_DATA"
	FileName  = "data.js"

	indent = "  "
)

var jsonAPI = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

var assignPrefix = regexp.MustCompile(`^[A-Za-z_$][\w$.]*\s*=$`)

// Decode reads either the JS assignment form or a bare JSON object.
// Empty input yields an empty document.
func Decode(r io.Reader) (*domain.BenchmarkData, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read benchmark data: %w", err)
	}

	body, err := stripAssignment(raw)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return domain.NewBenchmarkData(""), nil
	}

	var d domain.BenchmarkData
	if err := jsonAPI.Unmarshal(body, &d); err != nil {
		return nil, apperr.NewValidationWrap("invalid benchmark data JSON", err)
	}
	if d.Entries == nil {
		d.Entries = make(map[string][]domain.CommitRun)
	}
	if d.LastUpdate < 0 {
		return nil, apperr.NewValidation(fmt.Sprintf("lastUpdate must not be negative, got %d", d.LastUpdate))
	}
	for suite, runs := range d.Entries {
		for i, run := range runs {
			if err := run.Validate(); err != nil {
				return nil, fmt.Errorf("suite %q run %d: %w", suite, i, err)
			}
		}
	}

	return &d, nil
}

func stripAssignment(raw []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}

	start := bytes.IndexByte(trimmed, '{')
	if start < 0 {
		return nil, apperr.NewValidation("benchmark data has no JSON object")
	}
	if start > 0 {
		prefix := bytes.TrimSpace(trimmed[:start])
		if !assignPrefix.Match(prefix) {
			return nil, apperr.NewValidation(fmt.Sprintf("unexpected content before JSON object: %q", prefix))
		}
	}

	body := bytes.TrimSpace(bytes.TrimRight(trimmed[start:], "; \t\r\n"))
	return body, nil
}

// Encode writes the document as a JS assignment with a two-space indented
// body, the layout the chart page and previously published files use.
func Encode(w io.Writer, d *domain.BenchmarkData) error {
	body, err := marshalIndent(d)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.Grow(len(GlobalVar) + 3 + len(body))
	buf.WriteString(GlobalVar)
	buf.WriteString(" = ")
	buf.Write(body)

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write benchmark data: %w", err)
	}
	return nil
}

// EncodeJSON writes the bare JSON document.
func EncodeJSON(w io.Writer, d *domain.BenchmarkData) error {
	body, err := marshalIndent(d)
	if err != nil {
		return err
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("write benchmark data: %w", err)
	}
	return nil
}

func marshalIndent(d *domain.BenchmarkData) ([]byte, error) {
	if d.Entries == nil {
		d = &domain.BenchmarkData{LastUpdate: d.LastUpdate, RepoURL: d.RepoURL, Entries: map[string][]domain.CommitRun{}}
	}
	compact, err := jsonAPI.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal benchmark data: %w", err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", indent); err != nil {
		return nil, fmt.Errorf("indent benchmark data: %w", err)
	}
	return out.Bytes(), nil
}

func Marshal(d *domain.BenchmarkData) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Unmarshal(data []byte) (*domain.BenchmarkData, error) {
	return Decode(bytes.NewReader(data))
}
