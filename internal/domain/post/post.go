package post

// Post is a single ranked search hit. Posts are created and embedded outside this
// service; here they are read-only.
type Post struct {
	id         string
	title      string
	text       string
	similarity float64
}

// New creates a post search hit.
func New(id, title, text string, similarity float64) Post {
	return Post{id: id, title: title, text: text, similarity: similarity}
}

// ID returns the post identifier.
func (p *Post) ID() string { return p.id }

// Title returns the post title.
func (p *Post) Title() string { return p.title }

// Text returns the post body.
func (p *Post) Text() string { return p.text }

// Similarity returns the closeness to the query in [0,1], higher is closer.
func (p *Post) Similarity() float64 { return p.similarity }
