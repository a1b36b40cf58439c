package pagination

import "testing"

func TestValidate(t *testing.T) {
	cases := []struct {
		name        string
		in          PaginationParams
		wantPage    int
		wantPerPage int
	}{
		{"defaults applied", PaginationParams{Page: 0, PerPage: 0}, 1, 15},
		{"negative page", PaginationParams{Page: -3, PerPage: 20}, 1, 20},
		{"per page capped", PaginationParams{Page: 2, PerPage: 500}, 2, 100},
		{"valid unchanged", PaginationParams{Page: 3, PerPage: 25}, 3, 25},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := c.in
			p.Validate()
			if p.Page != c.wantPage || p.PerPage != c.wantPerPage {
				t.Errorf("got page=%d per_page=%d, want page=%d per_page=%d",
					p.Page, p.PerPage, c.wantPage, c.wantPerPage)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := PaginationParams{Page: 3, PerPage: 15}
	if got := p.Offset(); got != 30 {
		t.Errorf("Offset = %d, want 30", got)
	}
}

func TestNewPagination(t *testing.T) {
	pg := NewPagination(2, 15, 31)
	if pg.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", pg.TotalPages)
	}
	if !pg.HasNext || !pg.HasPrev {
		t.Errorf("middle page should have next and prev, got next=%v prev=%v", pg.HasNext, pg.HasPrev)
	}

	last := NewPagination(3, 15, 31)
	if last.HasNext {
		t.Error("last page should not have next")
	}
}
