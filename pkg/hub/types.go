package hub

import "context"

// Link represents a named relation on a resource.
type Link struct {
	Rel  string `json:"rel"  yaml:"rel"`
	Href string `json:"href" yaml:"href"`
}

// Meta is the _meta block carried by every Hub resource. It holds the
// resource's canonical href and its relation links.
type Meta struct {
	Allow []string `json:"allow,omitempty" yaml:"allow,omitempty"`
	Href  string   `json:"href,omitempty"  yaml:"href,omitempty"`
	Links []Link   `json:"links,omitempty" yaml:"links,omitempty"`
}

// Link returns the href of the first link with the given relation.
func (m *Meta) Link(rel string) (string, bool) {
	if m == nil {
		return "", false
	}

	for _, link := range m.Links {
		if link.Rel == rel {
			return link.Href, true
		}
	}

	return "", false
}

// PagedResponse is the collection envelope returned by list endpoints.
type PagedResponse[T any] struct {
	TotalCount int   `json:"totalCount"      yaml:"totalCount"`
	Items      []T   `json:"items"           yaml:"items"`
	Meta       *Meta `json:"_meta,omitempty" yaml:"_meta,omitempty"`
}

// PagedClient is the interface pagination helpers use to fetch pages.
type PagedClient[T any] interface {
	ListWithPath(ctx context.Context, path string, params *QueryParams) (*PagedResponse[T], error)
}
