package wsproto

import (
	"fmt"
	"net/url"
	"strconv"
)

// RequestFromQuery reads a RenderRequest from URL query parameters:
// preset, x, y, zoom, size, scheme, iterations, parallel and smooth.
// Missing parameters keep their zero value; parallel defaults to true and a
// missing iterations leaves Iterations nil.
func RequestFromQuery(q url.Values) (RenderRequest, error) {
	rr := RenderRequest{
		Preset:   q.Get("preset"),
		Scheme:   q.Get("scheme"),
		Parallel: true,
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"x", &rr.CenterX},
		{"y", &rr.CenterY},
		{"zoom", &rr.Zoom},
	}
	for _, f := range floats {
		if s := q.Get(f.key); s != "" {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return RenderRequest{}, fmt.Errorf("query %s: %w", f.key, err)
			}
			*f.dst = v
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"size", &rr.Size},
	}
	for _, i := range ints {
		if s := q.Get(i.key); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return RenderRequest{}, fmt.Errorf("query %s: %w", i.key, err)
			}
			*i.dst = v
		}
	}

	if s := q.Get("iterations"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return RenderRequest{}, fmt.Errorf("query iterations: %w", err)
		}
		rr.Iterations = &v
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"parallel", &rr.Parallel},
		{"smooth", &rr.Smooth},
	}
	for _, b := range bools {
		if s := q.Get(b.key); s != "" {
			v, err := strconv.ParseBool(s)
			if err != nil {
				return RenderRequest{}, fmt.Errorf("query %s: %w", b.key, err)
			}
			*b.dst = v
		}
	}

	return rr, nil
}
