package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/allot/pkg"
)

// Format identifies a document encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
	FormatTOML
)

// DefaultIndent is the indent width of encoded documents.
const DefaultIndent = 2

var formatName = map[Format]string{
	FormatYAML: "yaml",
	FormatJSON: "json",
	FormatTOML: "toml",
}

func (f Format) String() string {
	if s, ok := formatName[f]; ok {
		return s
	}

	return fmt.Sprintf("Format(%d)", int(f))
}

// Formats returns the names of every supported format.
func Formats() []string {
	return []string{"yaml", "json", "toml"}
}

// ParseFormat returns the format named s, ignoring case. "yml" is accepted
// for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	default:
		return 0, pkg.ErrInvalidFormat.Wrapf(
			"%q (valid formats: %s)", s, strings.Join(Formats(), ", "))
	}
}

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, pkg.ErrInvalidFormat.Wrapf("%q has no file extension", path)
	}

	return ParseFormat(ext)
}

// Encode writes data to w as a flat document with sorted keys.
func (f Format) Encode(ctx context.Context, w io.Writer, data map[string]string) error {
	if data == nil {
		data = map[string]string{}
	}

	var (
		buf bytes.Buffer
		err error
	)

	switch f {
	case FormatYAML:
		var b []byte

		b, err = yaml.MarshalContext(ctx, data, yaml.Indent(DefaultIndent))
		buf.Write(b)

	case FormatJSON:
		var b []byte

		b, err = json.MarshalIndent(data, "", strings.Repeat(" ", DefaultIndent))
		buf.Write(b)
		buf.WriteByte('\n')

	case FormatTOML:
		enc := toml.NewEncoder(&buf)
		enc.Indent = strings.Repeat(" ", DefaultIndent)
		err = enc.Encode(data)

	default:
		return pkg.ErrInvalidFormat.Wrapf("%s", f)
	}

	if err != nil {
		return pkg.ErrEncode.Wrap(err)
	}

	_, err = buf.WriteTo(w)

	return err
}

// Decode reads a flat document from r. Scalar values of any type are
// converted to their textual form; nested tables and lists are rejected.
func (f Format) Decode(r io.Reader) (map[string]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, pkg.ErrDecode.Wrap(err)
	}

	raw := make(map[string]any)

	if len(bytes.TrimSpace(b)) > 0 {
		switch f {
		case FormatYAML:
			err = yaml.Unmarshal(b, &raw)

		case FormatJSON:
			dec := json.NewDecoder(bytes.NewReader(b))
			dec.UseNumber()
			err = dec.Decode(&raw)

		case FormatTOML:
			_, err = toml.Decode(string(b), &raw)

		default:
			return nil, pkg.ErrInvalidFormat.Wrapf("%s", f)
		}

		if err != nil {
			return nil, pkg.ErrDecode.Wrap(err)
		}
	}

	data := make(map[string]string, len(raw))

	for _, key := range slices.Sorted(maps.Keys(raw)) {
		switch v := raw[key].(type) {
		case nil:
			continue
		case string:
			data[key] = v
		case map[string]any, map[any]any, []any:
			return nil, pkg.ErrDecode.Wrapf("%s: value of %q is not a scalar", f, key)
		default:
			data[key] = fmt.Sprint(v)
		}
	}

	return data, nil
}
