package model

type Target struct {
	URL    string `json:"url"`
	Domain string `json:"domain"`
}

type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

type Image struct {
	Alt string `json:"alt"`
	Src string `json:"src"`
}

// HeadingLevels lists the heading tags collected into PageMetadata.Headings, in render order.
var HeadingLevels = []string{"h1", "h2", "h3"}

// PageMetadata is the structured view of a fetched page. Nil optional fields
// mean the markup was absent.
type PageMetadata struct {
	Title       *string             `json:"title,omitempty"`
	Description *string             `json:"description,omitempty"`
	Keywords    *string             `json:"keywords,omitempty"`
	Headings    map[string][]string `json:"headings"`
	Paragraphs  []string            `json:"paragraphs"`
	Links       []Link              `json:"links"`
	Images      []Image             `json:"images"`
}

// NewPageMetadata returns an empty PageMetadata with every heading level present.
func NewPageMetadata() *PageMetadata {
	headings := make(map[string][]string, len(HeadingLevels))
	for _, level := range HeadingLevels {
		headings[level] = []string{}
	}
	return &PageMetadata{
		Headings:   headings,
		Paragraphs: []string{},
		Links:      []Link{},
		Images:     []Image{},
	}
}
