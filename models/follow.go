package models

import "time"

// Follow is a directed edge between two users. The (follower, followee) pair
// is unique; the composite index is the defense against concurrent double
// follows.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"index;uniqueIndex:idx_follower_followee;not null" json:"follower_id"`
	FolloweeID uint      `gorm:"uniqueIndex:idx_follower_followee;not null" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}
