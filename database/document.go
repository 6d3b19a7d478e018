package database

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Document is the whole content of the backing file. Top level arrays of
// objects are collections, any other value is kept verbatim as opaque.
type Document struct {
	Collections map[string]*Collection
	Opaque      map[string]jsontext.Value
}

// lenient accepts what hand edited files usually contain: repeated names,
// the last one wins, and invalid UTF-8, mangled to U+FFFD.
var lenient = json.JoinOptions(
	jsontext.AllowDuplicateNames(true),
	jsontext.AllowInvalidUTF8(true),
)

func newDocument() *Document {
	return &Document{
		Collections: map[string]*Collection{},
		Opaque:      map[string]jsontext.Value{},
	}
}

func decodeDocument(data []byte) (*Document, error) {

	raw := map[string]jsontext.Value{}
	err := json.Unmarshal(data, &raw, lenient)
	if err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	doc := newDocument()
	for name, value := range raw {
		records, ok := decodeRecords(value)
		if !ok {
			doc.Opaque[name] = value
			continue
		}
		doc.Collections[name] = newCollection(name, records)
	}

	return doc, nil
}

func decodeRecords(value jsontext.Value) ([]Record, bool) {
	if value.Kind() != '[' {
		return nil, false
	}
	records := []Record{}
	err := json.Unmarshal(value, &records, lenient)
	if err != nil {
		return nil, false
	}
	for _, record := range records {
		if record == nil {
			return nil, false
		}
	}
	return records, true
}

// encode renders the document with two space indentation and sorted keys.
func (d *Document) encode() ([]byte, error) {

	out := make(map[string]any, len(d.Collections)+len(d.Opaque))
	for name, value := range d.Opaque {
		out[name] = value
	}
	for name, c := range d.Collections {
		out[name] = c.Records
	}

	data, err := json.Marshal(out,
		lenient,
		json.Deterministic(true),
		jsontext.WithIndent("  "),
	)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	return append(data, '\n'), nil
}
