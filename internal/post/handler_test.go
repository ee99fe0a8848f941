package post_test

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tguillot/plume/internal/auth"
	"github.com/tguillot/plume/internal/config"
	"github.com/tguillot/plume/internal/database"
	"github.com/tguillot/plume/internal/like"
	"github.com/tguillot/plume/internal/post"
	"github.com/tguillot/plume/internal/router"
	"github.com/tguillot/plume/internal/user"
)

const testPassword = "pa55word"

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&user.User{},
		&post.Post{},
		&post.Comment{},
		&like.PostLike{},
		&like.CommentLike{},
	))

	originalDB := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = originalDB })

	cfg := &config.Config{
		SessionSecret: "test-secret",
		TemplateGlob:  "../../web/templates/*.html",
	}
	srv := httptest.NewServer(router.New(cfg))
	t.Cleanup(srv.Close)
	return srv
}

func createUser(t *testing.T, username string) user.User {
	t.Helper()
	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)
	u := user.User{CreatedAt: time.Now(), Username: username, Password: hash}
	require.NoError(t, database.DB.Create(&u).Error)
	return u
}

func login(t *testing.T, srv *httptest.Server, username string) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	resp, err := client.PostForm(srv.URL+"/login", url.Values{
		"username": {username},
		"password": {testPassword},
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return client
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestHomeListsNewestFirst(t *testing.T) {
	srv := setupServer(t)
	u := createUser(t, "alice")

	base := time.Now().Add(-time.Hour)
	p1 := post.Post{CreatedAt: base, Title: "First post", Content: "one", UserID: u.ID}
	p2 := post.Post{CreatedAt: base.Add(time.Minute), Title: "Second post", Content: "two", UserID: u.ID}
	require.NoError(t, database.DB.Create(&p1).Error)
	require.NoError(t, database.DB.Create(&p2).Error)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	first := strings.Index(body, "Second post")
	second := strings.Index(body, "First post")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)
}

func TestCreatePost(t *testing.T) {
	srv := setupServer(t)
	createUser(t, "alice")
	client := login(t, srv, "alice")

	resp, err := client.PostForm(srv.URL+"/create", url.Values{
		"title":   {"Hello"},
		"content": {"My first post"},
	})
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, "/", resp.Request.URL.Path)
	assert.Contains(t, body, "Post created successfully")
	assert.Contains(t, body, "Hello")

	var count int64
	database.DB.Model(&post.Post{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreatePostMissingTitle(t *testing.T) {
	srv := setupServer(t)
	createUser(t, "alice")
	client := login(t, srv, "alice")

	resp, err := client.PostForm(srv.URL+"/create", url.Values{
		"content": {"body without a title"},
	})
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "Title is required.")

	var count int64
	database.DB.Model(&post.Post{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestDetailNotFound(t *testing.T) {
	srv := setupServer(t)
	createUser(t, "alice")
	client := login(t, srv, "alice")

	resp, err := client.Get(srv.URL + "/post/9999")
	require.NoError(t, err)
	readBody(t, resp)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAddComment(t *testing.T) {
	srv := setupServer(t)
	u := createUser(t, "alice")
	client := login(t, srv, "alice")

	p := post.Post{CreatedAt: time.Now(), Title: "A post", Content: "text", UserID: u.ID}
	require.NoError(t, database.DB.Create(&p).Error)

	resp, err := client.PostForm(srv.URL+"/post/1", url.Values{
		"comment": {"Nice write-up"},
	})
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Contains(t, body, "Comment added!")
	assert.Contains(t, body, "Nice write-up")

	var count int64
	database.DB.Model(&post.Comment{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestEmptyCommentIgnored(t *testing.T) {
	srv := setupServer(t)
	u := createUser(t, "alice")
	client := login(t, srv, "alice")

	p := post.Post{CreatedAt: time.Now(), Title: "A post", Content: "text", UserID: u.ID}
	require.NoError(t, database.DB.Create(&p).Error)

	resp, err := client.PostForm(srv.URL+"/post/1", url.Values{
		"comment": {"   "},
	})
	require.NoError(t, err)
	readBody(t, resp)

	// Still lands back on the detail page, nothing persisted.
	assert.Equal(t, "/post/1", resp.Request.URL.Path)

	var count int64
	database.DB.Model(&post.Comment{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestDeleteCommentAuthorization(t *testing.T) {
	srv := setupServer(t)
	alice := createUser(t, "alice")
	createUser(t, "bob")

	p := post.Post{CreatedAt: time.Now(), Title: "A post", Content: "text", UserID: alice.ID}
	require.NoError(t, database.DB.Create(&p).Error)
	cm := post.Comment{CreatedAt: time.Now(), Content: "mine", UserID: alice.ID, PostID: p.ID}
	require.NoError(t, database.DB.Create(&cm).Error)

	bob := login(t, srv, "bob")
	resp, err := bob.Post(srv.URL+"/delete_comment/1", "application/x-www-form-urlencoded", nil)
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Contains(t, body, "You cannot delete this comment.")
	var count int64
	database.DB.Model(&post.Comment{}).Count(&count)
	assert.EqualValues(t, 1, count)

	owner := login(t, srv, "alice")
	resp, err = owner.Post(srv.URL+"/delete_comment/1", "application/x-www-form-urlencoded", nil)
	require.NoError(t, err)
	body = readBody(t, resp)

	assert.Contains(t, body, "Comment deleted!")
	database.DB.Model(&post.Comment{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestDeletePostCascades(t *testing.T) {
	srv := setupServer(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")

	p := post.Post{CreatedAt: time.Now(), Title: "A post", Content: "text", UserID: alice.ID}
	require.NoError(t, database.DB.Create(&p).Error)
	cm := post.Comment{CreatedAt: time.Now(), Content: "hi", UserID: bob.ID, PostID: p.ID}
	require.NoError(t, database.DB.Create(&cm).Error)
	require.NoError(t, database.DB.Create(&like.PostLike{UserID: bob.ID, PostID: p.ID, CreatedAt: time.Now()}).Error)
	require.NoError(t, database.DB.Create(&like.CommentLike{UserID: alice.ID, CommentID: cm.ID, CreatedAt: time.Now()}).Error)

	client := login(t, srv, "alice")
	resp, err := client.Post(srv.URL+"/delete_post/1", "application/x-www-form-urlencoded", nil)
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, "/", resp.Request.URL.Path)
	assert.Contains(t, body, "Post deleted!")

	var posts, comments, postLikes, commentLikes int64
	database.DB.Model(&post.Post{}).Count(&posts)
	database.DB.Model(&post.Comment{}).Count(&comments)
	database.DB.Model(&like.PostLike{}).Count(&postLikes)
	database.DB.Model(&like.CommentLike{}).Count(&commentLikes)
	assert.EqualValues(t, 0, posts)
	assert.EqualValues(t, 0, comments)
	assert.EqualValues(t, 0, postLikes)
	assert.EqualValues(t, 0, commentLikes)
}

func TestDeletePostNonAuthorDenied(t *testing.T) {
	srv := setupServer(t)
	alice := createUser(t, "alice")
	createUser(t, "bob")

	p := post.Post{CreatedAt: time.Now(), Title: "A post", Content: "text", UserID: alice.ID}
	require.NoError(t, database.DB.Create(&p).Error)

	client := login(t, srv, "bob")
	resp, err := client.Post(srv.URL+"/delete_post/1", "application/x-www-form-urlencoded", nil)
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Contains(t, body, "You cannot delete this post.")
	var count int64
	database.DB.Model(&post.Post{}).Count(&count)
	assert.EqualValues(t, 1, count)
}
