package catalog

import (
	"bytes"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-character-api/internal/errors"
)

// Decode reads a catalog document. Unknown fields are rejected so typos in
// hand-edited files surface at startup.
func Decode(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		if err == io.EOF {
			return &c, nil
		}
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode catalog")
	}
	return &c, nil
}

// LoadFile decodes the catalog file at path
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- operator supplied path
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read catalog %s", path)
	}
	return Decode(bytes.NewReader(data))
}

// Encode writes a catalog document
func Encode(w io.Writer, c *Catalog) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return errors.Wrap(err, "failed to encode catalog")
	}
	return enc.Close()
}
