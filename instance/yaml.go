package instance

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// document is the YAML shape of an instance.
type document struct {
	Producers  []Producer  `yaml:"producers"`
	Regions    []Region    `yaml:"regions"`
	Requesters []Requester `yaml:"requesters"`
}

// DecodeYAML reads a YAML document with producers, regions and requesters
// lists and validates it with New. Unknown keys are rejected.
//
// An empty document decodes to the empty instance.
func DecodeYAML(r io.Reader) (*Instance, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: yaml: %v", ErrMalformed, err)
	}

	return New(doc.Producers, doc.Regions, doc.Requesters)
}

// EncodeYAML writes the instance as a YAML document accepted by DecodeYAML.
func (in *Instance) EncodeYAML(w io.Writer) error {
	doc := document{
		Producers:  in.Producers(),
		Regions:    in.Regions(),
		Requesters: in.Requesters(),
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("instance: encode yaml: %w", err)
	}

	return enc.Close()
}
