package question

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ReadList flattens a list file of the form {"group": ["slug", ...], ...}
// into one slug list, keeping file order and dropping repeats.
// The file is JSON; it is decoded as YAML to keep key order.
func ReadList(data []byte) ([]string, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("question list: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("question list: top level must be an object")
	}

	seen := make(map[string]struct{})
	var out []string
	for i := 1; i < len(doc.Content); i += 2 {
		group := doc.Content[i-1].Value
		var slugs []string
		if err := doc.Content[i].Decode(&slugs); err != nil {
			return nil, fmt.Errorf("question list: group %q: %w", group, err)
		}
		for _, slug := range slugs {
			if _, dup := seen[slug]; dup {
				continue
			}
			seen[slug] = struct{}{}
			out = append(out, slug)
		}
	}
	return out, nil
}
