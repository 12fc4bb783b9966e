package post

import "testing"

func TestNew(t *testing.T) {
	p := New("42", "On peace", "Peace is within.", 0.873)

	if p.ID() != "42" {
		t.Errorf("ID() = %q", p.ID())
	}
	if p.Title() != "On peace" {
		t.Errorf("Title() = %q", p.Title())
	}
	if p.Text() != "Peace is within." {
		t.Errorf("Text() = %q", p.Text())
	}
	if p.Similarity() != 0.873 {
		t.Errorf("Similarity() = %f", p.Similarity())
	}
}

func TestNew_ZeroValues(t *testing.T) {
	p := New("", "", "", 0)
	if p.ID() != "" || p.Title() != "" || p.Text() != "" {
		t.Errorf("expected empty fields, got %+v", p)
	}
	if p.Similarity() != 0 {
		t.Errorf("Similarity() = %f, want 0", p.Similarity())
	}
}
