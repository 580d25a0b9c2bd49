package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	rec := httptest.NewRecorder()
	return FromContext(e.NewContext(req, rec))
}

func TestFromContext_Defaults(t *testing.T) {
	p := paramsFor(t, "")
	if p.Limit != DefaultLimit || p.Offset != 0 {
		t.Errorf("defaults = %+v", p)
	}
}

func TestFromContext_Explicit(t *testing.T) {
	p := paramsFor(t, "limit=5&offset=10")
	if p.Limit != 5 || p.Offset != 10 {
		t.Errorf("got %+v", p)
	}
}

func TestFromContext_ClampsLimit(t *testing.T) {
	p := paramsFor(t, "limit=5000")
	if p.Limit != MaxLimit {
		t.Errorf("limit = %d, want %d", p.Limit, MaxLimit)
	}
	p = paramsFor(t, "limit=-3")
	if p.Limit != DefaultLimit {
		t.Errorf("negative limit = %d, want default", p.Limit)
	}
}

func TestWindow(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, total := Window(items, Params{Limit: 2, Offset: 0})
	if total != 5 || len(page) != 2 || page[0] != 1 {
		t.Errorf("first page = %v, total %d", page, total)
	}

	page, total = Window(items, Params{Limit: 2, Offset: 4})
	if total != 5 || len(page) != 1 || page[0] != 5 {
		t.Errorf("last page = %v", page)
	}

	page, _ = Window(items, Params{Limit: 2, Offset: 10})
	if len(page) != 0 {
		t.Errorf("out-of-range page = %v", page)
	}
}

func TestNewResponse_HasMore(t *testing.T) {
	r := NewResponse([]int{1, 2}, 5, 2, 0)
	if !r.HasMore {
		t.Error("expected has_more")
	}
	r = NewResponse([]int{5}, 5, 2, 4)
	if r.HasMore {
		t.Error("expected no more pages")
	}
}
