package directory

// PageLink kinds.
const (
	LinkPage     = "page"
	LinkEllipsis = "ellipsis"
)

type PageLink struct {
	Kind   string `json:"kind"`
	Value  int    `json:"value,omitempty"`
	Active bool   `json:"isActive,omitempty"`
}

// PageLinks is the rendered pagination strip: an ordered run of page numbers
// and ellipses plus the prev/next control states.
type PageLinks struct {
	Links       []PageLink `json:"links"`
	PrevEnabled bool       `json:"prevEnabled"`
	NextEnabled bool       `json:"nextEnabled"`
}

// BuildPageLinks produces the link strip for the given current page: page 1
// and the last page are pinned outside a three-page window around the
// current page, with ellipses marking the gaps.
func BuildPageLinks(current, total int) PageLinks {
	links := []PageLink{}

	if current > 2 {
		links = append(links, PageLink{Kind: LinkPage, Value: 1, Active: current == 1})
	}
	if current > 3 {
		links = append(links, PageLink{Kind: LinkEllipsis})
	}

	for p := current - 1; p <= current+1; p++ {
		if p < 1 || p > total {
			continue
		}
		links = append(links, PageLink{Kind: LinkPage, Value: p, Active: p == current})
	}

	if current < total-2 {
		links = append(links, PageLink{Kind: LinkEllipsis})
	}
	if current < total-1 {
		links = append(links, PageLink{Kind: LinkPage, Value: total, Active: current == total})
	}

	return PageLinks{
		Links:       links,
		PrevEnabled: current > 1,
		NextEnabled: current < total,
	}
}
