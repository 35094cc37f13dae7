package comment

import "github.com/VitaminP8/blogspace/models"

// Thread is a root comment with its direct replies.
type Thread struct {
	Comment *models.Comment
	Replies []*models.Comment
}

// BuildThreads partitions a flat, creation-ordered comment list into root
// comments and one level of replies. The schema permits deeper nesting, but
// anything below the first reply level is never surfaced.
func BuildThreads(comments []*models.Comment) []*Thread {
	var threads []*Thread
	for _, c := range comments {
		if c.ParentID == nil {
			threads = append(threads, &Thread{Comment: c})
		}
	}
	for _, t := range threads {
		for _, c := range comments {
			if c.ParentID != nil && *c.ParentID == t.Comment.ID {
				t.Replies = append(t.Replies, c)
			}
		}
	}
	return threads
}
