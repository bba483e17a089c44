package anchor

// Registry assigns anchors to questions for one document. Headings always
// consume a fresh anchor; plain links reuse the first anchor already given
// to the same key and never consume one.
type Registry struct {
	slugger *Slugger
	first   map[string]string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{slugger: NewSlugger(), first: make(map[string]string)}
}

// Heading returns a new unique anchor for a heading rendered for key.
func (r *Registry) Heading(key, title string) string {
	a := r.slugger.Slug(title)
	if _, ok := r.first[key]; !ok {
		r.first[key] = a
	}
	return a
}

// Link returns the anchor of key's first heading. A key without a heading
// gets the bare slug of title, which is left free for a later heading.
func (r *Registry) Link(key, title string) string {
	if a, ok := r.first[key]; ok {
		return a
	}
	return Slugify(title)
}
