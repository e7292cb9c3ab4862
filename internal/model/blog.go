package model

type BlogCategory string

const (
	BlogReview       BlogCategory = "Review"
	BlogAnnouncement BlogCategory = "Announcement"
	BlogInterview    BlogCategory = "Interview"
)

type BlogPost struct {
	ID       int64
	Title    string
	Image    string
	Category BlogCategory
	Date     string
	Author   string
	Body     string
}
