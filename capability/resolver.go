package capability

import (
	"strings"
	"sync/atomic"

	"github.com/viant/afs/url"
)

// Resolver looks up capability links on the current resource snapshot.
// Snapshot reads do not block; Update swaps the snapshot atomically.
type Resolver struct {
	baseURL  string
	resource atomic.Pointer[Resource]
}

// Supports reports whether c has a non-blank link on the current snapshot.
func (r *Resolver) Supports(c Capability) bool {
	_, ok := r.Link(c)
	return ok
}

// Link returns the absolute link target for c.
func (r *Resolver) Link(c Capability) (string, bool) {
	rel, ok := c.Rel()
	if !ok {
		return "", false
	}
	href := r.resource.Load().Href(rel)
	if href == "" {
		return "", false
	}
	return absoluteURL(r.baseURL, href), true
}

// Update replaces the resource snapshot.
func (r *Resolver) Update(resource *Resource) {
	r.resource.Store(resource)
}

// Resource returns the current snapshot (nil when none was set).
func (r *Resolver) Resource() *Resource {
	return r.resource.Load()
}

// absoluteURL resolves href against baseURL: absolute hrefs are kept, host
// relative hrefs ("/x") attach to the base host, other hrefs join the base path.
func absoluteURL(baseURL, href string) string {
	if strings.Contains(href, "://") || baseURL == "" {
		return href
	}
	if strings.HasPrefix(href, "/") {
		host, _ := url.Base(baseURL, "https")
		return url.Join(host, href)
	}
	return url.Join(baseURL, href)
}

// NewResolver creates a resolver over the supplied snapshot; resource may be nil.
func NewResolver(baseURL string, resource *Resource) *Resolver {
	ret := &Resolver{baseURL: baseURL}
	if resource != nil {
		ret.resource.Store(resource)
	}
	return ret
}
