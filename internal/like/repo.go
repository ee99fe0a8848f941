package like

import (
	"time"

	"gorm.io/gorm/clause"

	"github.com/tguillot/plume/internal/database"
)

// TogglePost flips userID's like on postID. Unlike is a delete keyed on the
// composite primary key; like is an insert guarded by ON CONFLICT DO
// NOTHING. Concurrent duplicate requests cannot create double rows.
func TogglePost(userID, postID uint) error {
	res := database.DB.
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&PostLike{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	return database.DB.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&PostLike{UserID: userID, PostID: postID, CreatedAt: time.Now()}).Error
}

// ToggleComment flips userID's like on commentID.
func ToggleComment(userID, commentID uint) error {
	res := database.DB.
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&CommentLike{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	return database.DB.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&CommentLike{UserID: userID, CommentID: commentID, CreatedAt: time.Now()}).Error
}

// PostStatus reports the like count for a post and whether userID liked it.
// A zero userID means an anonymous viewer.
func PostStatus(postID, userID uint) Status {
	var st Status
	database.DB.Model(&PostLike{}).Where("post_id = ?", postID).Count(&st.Count)

	if userID != 0 {
		var n int64
		database.DB.Model(&PostLike{}).
			Where("user_id = ? AND post_id = ?", userID, postID).
			Count(&n)
		st.IsLiked = n > 0
	}
	return st
}

func CommentStatus(commentID, userID uint) Status {
	var st Status
	database.DB.Model(&CommentLike{}).Where("comment_id = ?", commentID).Count(&st.Count)

	if userID != 0 {
		var n int64
		database.DB.Model(&CommentLike{}).
			Where("user_id = ? AND comment_id = ?", userID, commentID).
			Count(&n)
		st.IsLiked = n > 0
	}
	return st
}
