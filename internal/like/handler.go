package like

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tguillot/plume/internal/database"
	"github.com/tguillot/plume/internal/logs"
)

// TogglePostLike GET /like/:id
func TogglePostLike(c *gin.Context) {
	userID := c.GetUint("user_id")

	postID, err := parseID(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return
	}

	var postCount int64
	if err := database.DB.Table("posts").Where("id = ?", postID).Count(&postCount).Error; err != nil {
		logs.LogJSON("ERROR", "Database error", map[string]interface{}{
			"error":   err.Error(),
			"route":   c.FullPath(),
			"user_id": userID,
			"post_id": postID,
		})
		c.HTML(http.StatusInternalServerError, "500.html", nil)
		return
	}
	if postCount == 0 {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return
	}

	if err := TogglePost(userID, postID); err != nil {
		logs.LogJSON("ERROR", "Error toggling post like", map[string]interface{}{
			"error":   err.Error(),
			"route":   c.FullPath(),
			"user_id": userID,
			"post_id": postID,
		})
		c.HTML(http.StatusInternalServerError, "500.html", nil)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", postID))
}

// ToggleCommentLike POST /like_comment/:id
func ToggleCommentLike(c *gin.Context) {
	userID := c.GetUint("user_id")

	commentID, err := parseID(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return
	}

	// The parent post id doubles as the existence check.
	var postID uint
	row := database.DB.Table("comments").Select("post_id").Where("id = ?", commentID).Row()
	if err := row.Scan(&postID); err != nil {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return
	}

	if err := ToggleComment(userID, commentID); err != nil {
		logs.LogJSON("ERROR", "Error toggling comment like", map[string]interface{}{
			"error":      err.Error(),
			"route":      c.FullPath(),
			"user_id":    userID,
			"comment_id": commentID,
		})
		c.HTML(http.StatusInternalServerError, "500.html", nil)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", postID))
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
