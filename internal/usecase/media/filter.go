package usecase_media

import (
	"sort"

	"github.com/filmnest/core/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortRatingDesc SortKey = "rating_desc"
	SortRatingAsc  SortKey = "rating_asc"
	SortTitleAsc   SortKey = "title_asc"
	SortTitleDesc  SortKey = "title_desc"
)

func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(s) {
	case SortRatingDesc, SortRatingAsc, SortTitleAsc, SortTitleDesc:
		return SortKey(s), true
	}
	return "", false
}

// FilterConfig holds conjunctive predicates applied over an in-memory media
// slice. An empty genre set means no genre restriction. Range bounds are
// inclusive; callers are expected to pass min <= max.
type FilterConfig struct {
	Genres    []string
	YearMin   int
	YearMax   int
	RatingMin float64
	RatingMax float64
}

// DefaultFilterConfig passes every record.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		YearMin:   0,
		YearMax:   9999,
		RatingMin: 0,
		RatingMax: 10,
	}
}

func (c FilterConfig) matches(m *model.Media) bool {
	if len(c.Genres) > 0 {
		found := false
		for _, g := range c.Genres {
			if m.Genre == g {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if m.ReleaseYear < c.YearMin || m.ReleaseYear > c.YearMax {
		return false
	}

	r := m.RatingOrZero()
	return r >= c.RatingMin && r <= c.RatingMax
}

// Refine filters and sorts a media slice into a new slice. The source is
// never mutated; re-running Refine with the same arguments yields the same
// result. Missing ratings order as 0, titles compare locale-aware.
func Refine(media []*model.Media, cfg FilterConfig, key SortKey) []*model.Media {
	out := make([]*model.Media, 0, len(media))
	for _, m := range media {
		if cfg.matches(m) {
			out = append(out, m)
		}
	}

	c := collate.New(language.Und)
	sort.SliceStable(out, func(i, j int) bool {
		switch key {
		case SortRatingAsc:
			return out[i].RatingOrZero() < out[j].RatingOrZero()
		case SortRatingDesc:
			return out[i].RatingOrZero() > out[j].RatingOrZero()
		case SortTitleDesc:
			return c.CompareString(out[i].Title, out[j].Title) > 0
		default: // SortTitleAsc
			return c.CompareString(out[i].Title, out[j].Title) < 0
		}
	})

	return out
}
