package defaults

import (
	"bytes"
	"encoding/base64"
	"strings"

	"github.com/arthur-debert/macstage/pkg/errors"
	"github.com/arthur-debert/macstage/pkg/filesystem"
	"gopkg.in/yaml.v3"
)

// DocumentHeader is the first line of every preference document
const DocumentHeader = "---\n"

// Group holds the captured entries of one domain
type Group struct {
	Domain  string
	Entries []Entry
}

// Document is an ordered sequence of domain groups
type Document struct {
	Groups []Group
}

// Append adds a group at the end of the document. A domain that is already
// present is ignored and Append reports false.
func (d *Document) Append(domain string, entries []Entry) bool {
	for _, g := range d.Groups {
		if g.Domain == domain {
			return false
		}
	}
	d.Groups = append(d.Groups, Group{Domain: domain, Entries: entries})
	return true
}

// Lookup returns the group for domain
func (d *Document) Lookup(domain string) (Group, bool) {
	for _, g := range d.Groups {
		if g.Domain == domain {
			return g, true
		}
	}
	return Group{}, false
}

// EntryCount is the number of entries across all groups
func (d *Document) EntryCount() int {
	n := 0
	for _, g := range d.Groups {
		n += len(g.Entries)
	}
	return n
}

// Encode renders the document. Groups and entries keep their order; an
// empty group renders as a bare "<domain>:" line.
func Encode(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(DocumentHeader)
	if doc == nil || len(doc.Groups) == 0 {
		return buf.Bytes(), nil
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, g := range doc.Groups {
		root.Content = append(root.Content, scalar(g.Domain))
		if len(g.Entries) == 0 {
			root.Content = append(root.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null"})
			continue
		}
		group := &yaml.Node{Kind: yaml.MappingNode}
		for _, e := range g.Entries {
			group.Content = append(group.Content, scalar(e.Key), scalar(e.Value))
		}
		root.Content = append(root.Content, group)
	}

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return nil, errors.Wrap(err, errors.ErrDocumentWrite, "failed to encode preference document")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrDocumentWrite, "failed to encode preference document")
	}
	return buf.Bytes(), nil
}

// scalar leaves the style to the emitter unless the text cannot survive
// as a plain scalar on one line
func scalar(value string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Value: value}
	if value == "" || strings.ContainsAny(value, "\n\r\t") {
		n.Style = yaml.DoubleQuotedStyle
	}
	return n
}

// Decode parses a document produced by Encode
func Decode(data []byte) (*Document, error) {
	doc := &Document{}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, errors.Wrap(err, errors.ErrDocumentRead, "failed to parse preference document")
	}
	if node.Kind == 0 || len(node.Content) == 0 {
		return doc, nil
	}

	root := node.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return doc, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrDocumentRead, "preference document is not a mapping of domains")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		domain, body := root.Content[i], root.Content[i+1]
		name, err := text(domain)
		if err != nil {
			return nil, err
		}
		group := Group{Domain: name}
		switch body.Kind {
		case yaml.MappingNode:
			for j := 0; j+1 < len(body.Content); j += 2 {
				key, err := text(body.Content[j])
				if err != nil {
					return nil, err
				}
				value, err := text(body.Content[j+1])
				if err != nil {
					return nil, err
				}
				group.Entries = append(group.Entries, Entry{Key: key, Value: value})
			}
		case yaml.ScalarNode:
			if body.Tag != "!!null" {
				return nil, errors.New(errors.ErrDocumentRead, "domain body must be a mapping").
					WithDetail("domain", domain.Value)
			}
		default:
			return nil, errors.New(errors.ErrDocumentRead, "domain body must be a mapping").
				WithDetail("domain", domain.Value)
		}
		doc.Groups = append(doc.Groups, group)
	}
	return doc, nil
}

// text returns the string a scalar stands for. The encoder emits text that
// is not valid UTF-8 as base64 tagged !!binary.
func text(n *yaml.Node) (string, error) {
	if n.ShortTag() != "!!binary" {
		return n.Value, nil
	}
	data, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(n.Value), ""))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrDocumentRead, "invalid binary scalar").WithDetail("value", n.Value)
	}
	return string(data), nil
}

// WriteDocument replaces the file at path with the encoded document
func WriteDocument(fsys filesystem.FS, path string, doc *Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if err := fsys.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, errors.ErrDocumentWrite, "failed to write preference document").
			WithDetail("path", path)
	}
	return nil
}

// ReadDocument loads a document written by WriteDocument
func ReadDocument(fsys filesystem.FS, path string) (*Document, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrDocumentRead, "failed to read preference document").
			WithDetail("path", path)
	}
	return Decode(data)
}
