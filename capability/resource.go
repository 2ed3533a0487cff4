package capability

import "strings"

// Link represents a hypermedia link.
type Link struct {
	Href string `yaml:"href" json:"href"`
}

// Resource is a read-only snapshot of the invitation links, keyed by relation name.
type Resource struct {
	Links map[string]*Link `yaml:"links" json:"_links"`
}

// NewResource creates a resource snapshot from relation/href pairs.
func NewResource(hrefs map[string]string) *Resource {
	ret := &Resource{Links: make(map[string]*Link, len(hrefs))}
	for rel, href := range hrefs {
		ret.Links[rel] = &Link{Href: href}
	}
	return ret
}

// Href returns the trimmed href for the relation, or an empty string.
func (r *Resource) Href(rel string) string {
	if r == nil || r.Links == nil {
		return ""
	}
	link := r.Links[rel]
	if link == nil {
		return ""
	}
	return strings.TrimSpace(link.Href)
}
