package like

import "context"

// LikeStorage is the data-access contract for post likes. There is no
// uniqueness constraint on (post, user): adding a like twice without an
// intervening remove stores two rows and the count reflects both.
type LikeStorage interface {
	AddLike(ctx context.Context, postID uint) error
	RemoveLike(ctx context.Context, postID uint) error
	GetLikeCount(ctx context.Context, postID uint) (int, error)
	HasUserLiked(ctx context.Context, postID, userID uint) (bool, error)
}
