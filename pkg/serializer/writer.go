package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/cdda-json-browser/pkg/store"
)

// Format represents the output format type
type Format string

const (
	// FormatJSON outputs data in JSON format
	FormatJSON Format = "json"
	// FormatYAML outputs data in YAML format
	FormatYAML Format = "yaml"
	// FormatTable outputs data in table format
	FormatTable Format = "table"
	// FormatText outputs data as "field: value" lines
	FormatText Format = "text"
)

const (
	defaultValueKey = "value"
	emptyOutput     = "<empty>"
	textIndent      = "  "
)

func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable, FormatText:
		return false
	default:
		return true
	}
}

// SupportedFormats returns a list of all supported output formats
// for serialization.
func SupportedFormats() []string {
	return []string{
		string(FormatText),
		string(FormatJSON),
		string(FormatYAML),
		string(FormatTable),
	}
}

// FormatFromPath determines the serialization format based on file extension.
//   - .json → FormatJSON
//   - .yaml, .yml → FormatYAML
//   - .table → FormatTable
//   - .txt → FormatText
//
// Returns def for unknown extensions. Matching is case-insensitive.
func FormatFromPath(filePath string, def Format) Format {
	lowerPath := strings.ToLower(filePath)
	switch {
	case strings.HasSuffix(lowerPath, ".json"):
		return FormatJSON
	case strings.HasSuffix(lowerPath, ".yaml"), strings.HasSuffix(lowerPath, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lowerPath, ".table"):
		return FormatTable
	case strings.HasSuffix(lowerPath, ".txt"):
		return FormatText
	default:
		return def
	}
}

// Fields is implemented by values whose fields have a display order,
// such as *store.Record. Table and text output keep that order.
type Fields interface {
	Range(fn func(key string, value any) bool)
}

// Writer handles serialization of browser output to various formats.
// Close must be called to release file handles when using NewFileWriterOrStdout.
type Writer struct {
	format Format
	output io.Writer
	closer io.Closer
}

// NewWriter creates a new Writer with the specified format and output destination.
// If output is nil, os.Stdout will be used.
// If format is unknown, defaults to JSON format.
func NewWriter(format Format, output io.Writer) *Writer {
	if output == nil {
		output = os.Stdout
	}
	if format.IsUnknown() {
		slog.Warn("unknown format, defaulting to JSON", "format", format)
		format = FormatJSON
	}
	return &Writer{
		format: format,
		output: output,
	}
}

// NewFileWriterOrStdout creates a new Writer that outputs to the specified file path in the given format.
// If the file cannot be created or path is empty, it falls back to stdout.
// Remember to call Close() on the returned Writer to ensure the file is properly closed.
func NewFileWriterOrStdout(format Format, path string) *Writer {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return NewStdoutWriter(format)
	}

	file, err := os.Create(trimmed)
	if err != nil {
		slog.Error("failed to create output file", "error", err, "path", trimmed)
		return NewStdoutWriter(format)
	}

	w := NewWriter(format, file)
	w.closer = file
	return w
}

// NewStdoutWriter creates a new Writer that outputs to stdout in the specified format.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

// Format returns the effective output format.
func (w *Writer) Format() Format {
	return w.format
}

// Close releases any resources associated with the Writer.
// It's safe to call Close multiple times or on stdout-based writers.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	err := w.closer.Close()
	w.closer = nil
	return err
}

// Serialize writes data in the configured format.
// Context is provided for consistency with the Serializer interface,
// but is not actively used for file/stdout writes (which are fast and blocking).
func (w *Writer) Serialize(ctx context.Context, data any) error {
	switch w.format {
	case FormatJSON:
		return w.serializeJSON(data)
	case FormatYAML:
		return w.serializeYAML(data)
	case FormatTable:
		return w.serializeTable(data)
	case FormatText:
		return w.serializeText(data)
	default:
		return fmt.Errorf("unsupported format: %s", w.format)
	}
}

func (w *Writer) serializeJSON(data any) error {
	encoder := json.NewEncoder(w.output)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to serialize to JSON: %w", err)
	}
	return nil
}

func (w *Writer) serializeYAML(data any) error {
	encoder := yaml.NewEncoder(w.output)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to serialize to YAML: %w", err)
	}
	return encoder.Close()
}

// row is one FIELD/VALUE pair of table or text output.
type row struct {
	key   string
	value string
}

// rows lays data out as ordered rows. Ordered values keep their own field
// order; anything else is flattened by reflection and sorted by key.
func rows(data any) []row {
	if f, ok := data.(Fields); ok && !isNil(data) {
		var out []row
		f.Range(func(key string, value any) bool {
			out = append(out, row{key: key, value: store.FormatValue(value)})
			return true
		})
		return out
	}

	flat := make(map[string]any)
	flattenValue(flat, reflect.ValueOf(data), "")
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]row, 0, len(keys))
	for _, k := range keys {
		out = append(out, row{key: k, value: fmt.Sprintf("%v", flat[k])})
	}
	return out
}

func (w *Writer) serializeTable(data any) error {
	rs := rows(data)
	if len(rs) == 0 {
		fmt.Fprintln(w.output, emptyOutput)
		return nil
	}

	tw := tabwriter.NewWriter(w.output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	fmt.Fprintln(tw, "-----\t-----")
	for _, r := range rs {
		lines := strings.Split(r.value, "\n")
		fmt.Fprintf(tw, "%s\t%s\n", r.key, lines[0])
		for _, cont := range lines[1:] {
			fmt.Fprintf(tw, "\t%s\n", cont)
		}
	}
	return tw.Flush()
}

// serializeText prints plain lines. Strings and string lists are printed
// as is; anything else as "field: value" rows with multi-line values
// indented under their field.
func (w *Writer) serializeText(data any) error {
	switch t := data.(type) {
	case string:
		_, err := fmt.Fprintln(w.output, t)
		return err
	case []string:
		if len(t) == 0 {
			_, err := fmt.Fprintln(w.output, emptyOutput)
			return err
		}
		_, err := fmt.Fprintln(w.output, strings.Join(t, "\n"))
		return err
	}

	rs := rows(data)
	if len(rs) == 0 {
		_, err := fmt.Fprintln(w.output, emptyOutput)
		return err
	}

	var b strings.Builder
	for _, r := range rs {
		if !strings.Contains(r.value, "\n") {
			fmt.Fprintf(&b, "%s: %s\n", r.key, r.value)
			continue
		}
		fmt.Fprintf(&b, "%s:\n", r.key)
		for _, line := range strings.Split(r.value, "\n") {
			fmt.Fprintf(&b, "%s%s\n", textIndent, line)
		}
	}
	_, err := io.WriteString(w.output, b.String())
	return err
}

func isNil(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func flattenValue(out map[string]any, val reflect.Value, prefix string) {
	if !val.IsValid() {
		return
	}

	for val.Kind() == reflect.Pointer || val.Kind() == reflect.Interface {
		if val.IsNil() {
			if prefix != "" {
				out[prefix] = nil
			}
			return
		}
		val = val.Elem()
	}

	//nolint:exhaustive // We handle the common cases explicitly; all others go to default
	switch val.Kind() {
	case reflect.Struct:
		typ := val.Type()
		for i := 0; i < val.NumField(); i++ {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			key := joinKey(prefix, field.Name)
			flattenValue(out, val.Field(i), key)
		}
	case reflect.Map:
		for _, mapKey := range val.MapKeys() {
			key := joinKey(prefix, fmt.Sprintf("%v", mapKey.Interface()))
			flattenValue(out, val.MapIndex(mapKey), key)
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < val.Len(); i++ {
			key := joinKey(prefix, fmt.Sprintf("[%d]", i))
			flattenValue(out, val.Index(i), key)
		}
	default:
		if prefix == "" {
			prefix = defaultValueKey
		}
		out[prefix] = val.Interface()
	}
}

func joinKey(prefix, suffix string) string {
	if prefix == "" {
		return suffix
	}
	if suffix == "" {
		return prefix
	}
	return prefix + "." + suffix
}
