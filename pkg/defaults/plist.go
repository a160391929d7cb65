package defaults

import (
	"github.com/arthur-debert/macstage/pkg/errors"
	"github.com/beevik/etree"
)

// plistKeys returns the keys of the top-level dictionary of an XML property
// list, in document order. Duplicate keys are kept; callers decide.
func plistKeys(data []byte) ([]string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrStoreParse, "invalid property list")
	}

	root := doc.SelectElement("plist")
	if root == nil {
		return nil, errors.New(errors.ErrStoreParse, "property list has no <plist> element")
	}

	dict := root.SelectElement("dict")
	if dict == nil {
		// an empty domain exports as <plist/> or with a non-dict root
		return nil, nil
	}

	var keys []string
	for _, child := range dict.ChildElements() {
		if child.Tag == "key" {
			keys = append(keys, child.Text())
		}
	}
	return keys, nil
}
