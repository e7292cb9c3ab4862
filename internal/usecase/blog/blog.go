package usecase_blog

import (
	"errors"

	"github.com/filmnest/core/internal/model"
)

var ErrPostNotFound = errors.New("post not found")

// Usecase serves the editorial blog catalog. Posts are a fixed seed list
// maintained with the code, grouped into the three front-page sections.
type Usecase struct {
	posts []model.BlogPost
}

func New() *Usecase {
	return &Usecase{posts: seedPosts()}
}

func (u *Usecase) List() []model.BlogPost {
	out := make([]model.BlogPost, len(u.posts))
	copy(out, u.posts)
	return out
}

func (u *Usecase) ListByCategory(c model.BlogCategory) []model.BlogPost {
	out := make([]model.BlogPost, 0)
	for _, p := range u.posts {
		if p.Category == c {
			out = append(out, p)
		}
	}
	return out
}

func (u *Usecase) GetByID(id int64) (model.BlogPost, error) {
	for _, p := range u.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return model.BlogPost{}, ErrPostNotFound
}

func seedPosts() []model.BlogPost {
	return []model.BlogPost{
		{ID: 1, Title: "Inception Review", Image: "inception-review.jpg", Category: model.BlogReview, Date: "2023-10-15", Author: "John Doe",
			Body: "A heist story folded through four layers of dreams, and somehow the emotional core survives every fold."},
		{ID: 2, Title: "Dark Knight Review", Image: "dark-knight-review.jpg", Category: model.BlogReview, Date: "2023-08-20", Author: "Jane Smith",
			Body: "Still the benchmark for the comic-book crime drama, fifteen years on."},
		{ID: 3, Title: "Interstellar: A Deep Dive", Image: "interstellar-review.jpg", Category: model.BlogReview, Date: "2023-06-05", Author: "Chris Nolan",
			Body: "On relativity, cornfields and why the quietest scenes carry the loudest ideas."},
		{ID: 4, Title: "New Film Releases in 2024", Image: "new-releases-2024.jpg", Category: model.BlogAnnouncement, Date: "2024-01-05", Author: "Admin",
			Body: "The catalog grows this quarter with the year's most anticipated premieres."},
		{ID: 5, Title: "FilmNest Updates Coming Soon", Image: "updates-coming.jpg", Category: model.BlogAnnouncement, Date: "2023-12-15", Author: "Team",
			Body: "Watchlist improvements and a refreshed review experience are on the way."},
		{ID: 6, Title: "Interview with the Director of Inception", Image: "inception-director.jpg", Category: model.BlogInterview, Date: "2023-09-10", Author: "Emma Watson",
			Body: "We sat down to talk about practical effects and the famous rotating corridor."},
		{ID: 7, Title: "Stranger Things Cast Interview", Image: "stranger-things-interview.jpg", Category: model.BlogInterview, Date: "2023-07-20", Author: "David Harbour",
			Body: "The cast on growing up in Hawkins and what the final season means to them."},
	}
}
