package pagination

import "testing"

func TestNormalize(t *testing.T) {
	got := Normalize(Params{Page: 0, PageSize: 0}, 30, 100)
	if got.Page != 1 || got.PageSize != 30 {
		t.Fatalf("expected defaults page=1 size=30, got %+v", got)
	}

	got = Normalize(Params{Page: 3, PageSize: 500}, 30, 100)
	if got.Page != 3 || got.PageSize != 100 {
		t.Fatalf("expected capped size 100, got %+v", got)
	}
}

func TestOffset(t *testing.T) {
	if off := (Params{Page: 1, PageSize: 30}).Offset(); off != 0 {
		t.Fatalf("page 1 should have offset 0, got %d", off)
	}
	if off := (Params{Page: 4, PageSize: 10}).Offset(); off != 30 {
		t.Fatalf("expected offset 30, got %d", off)
	}
}

func TestBuild(t *testing.T) {
	page := Build(Params{Page: 2, PageSize: 30}, 61)
	if page.TotalPages != 3 {
		t.Fatalf("expected 3 total pages, got %d", page.TotalPages)
	}
	if page.CurrentPage != 2 || page.TotalCount != 61 {
		t.Fatalf("unexpected page metadata %+v", page)
	}

	empty := Build(Params{Page: 1, PageSize: 10}, 0)
	if empty.TotalPages != 0 {
		t.Fatalf("expected 0 pages for empty set, got %d", empty.TotalPages)
	}
}
