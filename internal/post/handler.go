package post

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tguillot/plume/internal/database"
	"github.com/tguillot/plume/internal/forms"
	"github.com/tguillot/plume/internal/like"
	"github.com/tguillot/plume/internal/logs"
	"github.com/tguillot/plume/internal/session"
)

// CommentView pairs a comment with its like state for the viewer.
type CommentView struct {
	Comment Comment
	Likes   like.Status
}

// Home GET /
func Home(c *gin.Context) {
	var posts []Post
	if err := database.DB.Preload("User").Order("created_at DESC").Find(&posts).Error; err != nil {
		logs.LogJSON("ERROR", "Error retrieving posts", map[string]interface{}{
			"error": err.Error(),
			"route": c.FullPath(),
		})
		c.HTML(http.StatusInternalServerError, "500.html", nil)
		return
	}

	userID, loggedIn := session.UserID(c)
	flashes := session.Flashes(c)
	c.HTML(http.StatusOK, "home.html", gin.H{
		"Posts":    posts,
		"Flashes":  flashes,
		"UserID":   userID,
		"LoggedIn": loggedIn,
	})
}

// ShowCreate GET /create
func ShowCreate(c *gin.Context) {
	c.HTML(http.StatusOK, "create_post.html", createData(c, nil))
}

// Create POST /create
func Create(c *gin.Context) {
	userID := c.GetUint("user_id")

	var form forms.Post
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "create_post.html", createData(c, forms.Errors(err)))
		return
	}

	newPost := Post{
		CreatedAt: time.Now(),
		Title:     form.Title,
		Content:   form.Content,
		UserID:    userID,
	}
	if err := database.DB.Create(&newPost).Error; err != nil {
		logs.LogJSON("ERROR", "Error creating post", map[string]interface{}{
			"error":   err.Error(),
			"route":   c.FullPath(),
			"user_id": userID,
		})
		c.HTML(http.StatusInternalServerError, "500.html", nil)
		return
	}

	session.Flash(c, "success", "Post created successfully")
	c.Redirect(http.StatusFound, "/")
}

// Detail GET /post/:id
func Detail(c *gin.Context) {
	userID := c.GetUint("user_id")

	postID, err := parseID(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return
	}

	var p Post
	if err := database.DB.Preload("User").First(&p, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.HTML(http.StatusNotFound, "404.html", nil)
			return
		}
		logs.LogJSON("ERROR", "Error retrieving post", map[string]interface{}{
			"error":   err.Error(),
			"route":   c.FullPath(),
			"post_id": postID,
		})
		c.HTML(http.StatusInternalServerError, "500.html", nil)
		return
	}

	// Insertion order, the schema's default.
	var comments []Comment
	if err := database.DB.Preload("User").
		Where("post_id = ?", p.ID).
		Order("id ASC").
		Find(&comments).Error; err != nil {
		logs.LogJSON("ERROR", "Error retrieving comments", map[string]interface{}{
			"error":   err.Error(),
			"route":   c.FullPath(),
			"post_id": postID,
		})
		c.HTML(http.StatusInternalServerError, "500.html", nil)
		return
	}

	views := make([]CommentView, 0, len(comments))
	for _, cm := range comments {
		views = append(views, CommentView{
			Comment: cm,
			Likes:   like.CommentStatus(cm.ID, userID),
		})
	}

	flashes := session.Flashes(c)
	c.HTML(http.StatusOK, "post_detail.html", gin.H{
		"Post":      p,
		"PostLikes": like.PostStatus(p.ID, userID),
		"Comments":  views,
		"UserID":    userID,
		"Flashes":   flashes,
	})
}

// AddComment POST /post/:id
func AddComment(c *gin.Context) {
	userID := c.GetUint("user_id")

	postID, err := parseID(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return
	}

	var p Post
	if err := database.DB.First(&p, postID).Error; err != nil {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return
	}

	// Empty bodies are ignored, the redirect still happens.
	content := strings.TrimSpace(c.PostForm("comment"))
	if content != "" {
		comment := Comment{
			CreatedAt: time.Now(),
			Content:   content,
			UserID:    userID,
			PostID:    p.ID,
		}
		if err := database.DB.Create(&comment).Error; err != nil {
			logs.LogJSON("ERROR", "Error creating comment", map[string]interface{}{
				"error":   err.Error(),
				"route":   c.FullPath(),
				"user_id": userID,
				"post_id": postID,
			})
			c.HTML(http.StatusInternalServerError, "500.html", nil)
			return
		}
		session.Flash(c, "success", "Comment added!")
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", postID))
}

// DeleteComment POST /delete_comment/:id
func DeleteComment(c *gin.Context) {
	userID := c.GetUint("user_id")

	commentID, err := parseID(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return
	}

	var comment Comment
	if err := database.DB.First(&comment, commentID).Error; err != nil {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return
	}

	if comment.UserID != userID {
		session.Flash(c, "danger", "You cannot delete this comment.")
		c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", comment.PostID))
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", comment.ID).Delete(&like.CommentLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&comment).Error
	})
	if err != nil {
		logs.LogJSON("ERROR", "Error deleting comment", map[string]interface{}{
			"error":      err.Error(),
			"route":      c.FullPath(),
			"user_id":    userID,
			"comment_id": commentID,
		})
		c.HTML(http.StatusInternalServerError, "500.html", nil)
		return
	}

	session.Flash(c, "success", "Comment deleted!")
	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", comment.PostID))
}

// DeletePost POST /delete_post/:id
//
// The cascade is explicit: comments, their likes and the post's own likes
// go in the same transaction as the post.
func DeletePost(c *gin.Context) {
	userID := c.GetUint("user_id")

	postID, err := parseID(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return
	}

	var p Post
	if err := database.DB.First(&p, postID).Error; err != nil {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return
	}

	if p.UserID != userID {
		session.Flash(c, "danger", "You cannot delete this post.")
		c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", p.ID))
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var commentIDs []uint
		if err := tx.Model(&Comment{}).Where("post_id = ?", p.ID).Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("comment_id IN ?", commentIDs).Delete(&like.CommentLike{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("post_id = ?", p.ID).Delete(&like.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", p.ID).Delete(&Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&p).Error
	})
	if err != nil {
		logs.LogJSON("ERROR", "Error deleting post", map[string]interface{}{
			"error":   err.Error(),
			"route":   c.FullPath(),
			"user_id": userID,
			"post_id": postID,
		})
		c.HTML(http.StatusInternalServerError, "500.html", nil)
		return
	}

	session.Flash(c, "success", "Post deleted!")
	c.Redirect(http.StatusFound, "/")
}

func createData(c *gin.Context, errs []string) gin.H {
	return gin.H{
		"Flashes": session.Flashes(c),
		"Errors":  errs,
		"Title":   c.PostForm("title"),
		"Content": c.PostForm("content"),
	}
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
