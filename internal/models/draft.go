package models

import "time"

// Draft is a work-in-progress blog post.
type Draft struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Summary   string     `json:"summary"`
	Keywords  []string   `json:"keywords"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Clone returns a deep copy of d so the stored collection never shares the
// keyword slice or timestamp with the caller.
func (d Draft) Clone() Draft {
	c := d
	if d.Keywords != nil {
		c.Keywords = make([]string, len(d.Keywords))
		copy(c.Keywords, d.Keywords)
	}
	if d.UpdatedAt != nil {
		t := *d.UpdatedAt
		c.UpdatedAt = &t
	}
	return c
}
