package audit

import "testing"

func TestFilter_Normalize(t *testing.T) {
	cases := []struct {
		in        Filter
		page, lim int
	}{
		{Filter{}, 1, DefaultPageSize},
		{Filter{Page: -3, Limit: 500}, 1, DefaultPageSize},
		{Filter{Page: 4, Limit: 20}, 4, 20},
		{Filter{Page: 2, Limit: MaxPageSize}, 2, MaxPageSize},
	}

	for _, tc := range cases {
		f := tc.in
		f.normalize()
		if f.Page != tc.page || f.Limit != tc.lim {
			t.Fatalf("%+v: expected page=%d limit=%d, got page=%d limit=%d", tc.in, tc.page, tc.lim, f.Page, f.Limit)
		}
	}
}
