package repositories

import "errors"

var (
	ErrPlanNotFound      = errors.New("plan not found")
	ErrAlreadyLiked      = errors.New("plan already liked by this user")
	ErrLikeNotFound      = errors.New("like not found")
	ErrAlreadyBookmarked = errors.New("plan already bookmarked by this user")
	ErrBookmarkNotFound  = errors.New("bookmark not found")
)
