package handlers

import (
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"yatube/cache"
	"yatube/config"
	"yatube/db"
	"yatube/models"
	"yatube/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.TEMPLATES_GLOB = "../templates/*.tmpl"
	m.Run()
}

func newServer(t *testing.T) (*httptest.Server, *cache.RenderCache) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.Instance = gdb
	models.Init()
	config.MEDIA_BUCKET_DIR = t.TempDir()
	storage.Init()
	pageCache := cache.New()
	ts := httptest.NewServer(NewRouter(pageCache))
	t.Cleanup(ts.Close)
	return ts, pageCache
}

type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func newClient(t *testing.T, ts *httptest.Server) *client {
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &client{
		t:    t,
		base: ts.URL,
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (c *client) get(path string) *http.Response {
	resp, err := c.http.Get(c.base + path)
	if err != nil {
		c.t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

func (c *client) postForm(path string, values url.Values) *http.Response {
	resp, err := c.http.PostForm(c.base+path, values)
	if err != nil {
		c.t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func (c *client) login(username string) {
	resp := c.postForm("/auth/login/", url.Values{
		"username": {username},
		"password": {"password"},
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		c.t.Fatalf("login as %s: status %d", username, resp.StatusCode)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(data)
}

func mustUser(t *testing.T, username string) models.User {
	u, err := models.UserCreate(username, "", "password")
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func mustPost(t *testing.T, authorID uint64, text string, groupID *uint64) models.Post {
	p, err := models.PostCreate(authorID, text, groupID, "", "")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	return p
}

func postCount(t *testing.T) int64 {
	var count int64
	if err := db.Instance.Model(&models.Post{}).Count(&count).Error; err != nil {
		t.Fatalf("count posts: %v", err)
	}
	return count
}

func assertRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("status = %d, want 302", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != location {
		t.Fatalf("Location = %q, want %q", got, location)
	}
}

func TestAnonymousCreateRedirectsToLogin(t *testing.T) {
	ts, _ := newServer(t)
	anon := newClient(t, ts)

	assertRedirect(t, anon.get("/create/"), "/auth/login/?next=/create/")

	before := postCount(t)
	resp := anon.postForm("/create/", url.Values{"text": {"should not exist"}})
	assertRedirect(t, resp, "/auth/login/?next=/create/")
	if got := postCount(t); got != before {
		t.Fatalf("post count changed from %d to %d", before, got)
	}
}

func TestAnonymousEditRedirectsToLogin(t *testing.T) {
	ts, _ := newServer(t)
	author := mustUser(t, "author")
	post := mustPost(t, author.ID, "a post", nil)
	anon := newClient(t, ts)
	path := fmt.Sprintf("/posts/%d/edit/", post.ID)
	assertRedirect(t, anon.get(path), "/auth/login/?next="+path)
}

func TestNonOwnerEditRedirectsToDetail(t *testing.T) {
	ts, _ := newServer(t)
	author := mustUser(t, "author")
	mustUser(t, "intruder")
	group := models.Group{Slug: "go", Title: "Go"}
	db.Instance.Create(&group)
	post := mustPost(t, author.ID, "original text", &group.ID)

	intruder := newClient(t, ts)
	intruder.login("intruder")
	editPath := fmt.Sprintf("/posts/%d/edit/", post.ID)
	detailPath := fmt.Sprintf("/posts/%d/", post.ID)

	assertRedirect(t, intruder.get(editPath), detailPath)
	assertRedirect(t, intruder.postForm(editPath, url.Values{"text": {"hijacked"}}), detailPath)

	reloaded, err := models.PostByID(post.ID)
	if err != nil {
		t.Fatalf("reload post: %v", err)
	}
	if reloaded.Text != "original text" {
		t.Fatalf("text changed to %q", reloaded.Text)
	}
	if reloaded.GroupID == nil || *reloaded.GroupID != group.ID {
		t.Fatal("group changed")
	}
}

func TestOwnerEditUpdatesPost(t *testing.T) {
	ts, _ := newServer(t)
	author := mustUser(t, "author")
	post := mustPost(t, author.ID, "original text", nil)

	owner := newClient(t, ts)
	owner.login("author")
	editPath := fmt.Sprintf("/posts/%d/edit/", post.ID)
	detailPath := fmt.Sprintf("/posts/%d/", post.ID)

	resp := owner.get(editPath)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("edit form status = %d", resp.StatusCode)
	}
	if !strings.Contains(readBody(t, resp), "original text") {
		t.Fatal("edit form must show the current text")
	}

	assertRedirect(t, owner.postForm(editPath, url.Values{"text": {"edited text"}}), detailPath)
	reloaded, _ := models.PostByID(post.ID)
	if reloaded.Text != "edited text" {
		t.Fatalf("text = %q, want edited", reloaded.Text)
	}
}

func TestCreatePostAndGroupListing(t *testing.T) {
	ts, _ := newServer(t)
	mustUser(t, "leo")
	group := models.Group{Slug: "slug1", Title: "g1"}
	db.Instance.Create(&group)

	author := newClient(t, ts)
	author.login("leo")

	// Empty text re-renders the form with the input error, nothing stored
	resp := author.postForm("/create/", url.Values{"text": {"   "}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(readBody(t, resp), "Text is required") {
		t.Fatal("expected the validation message")
	}
	if postCount(t) != 0 {
		t.Fatal("no post must be stored on validation failure")
	}

	resp = author.postForm("/create/", url.Values{
		"text":  {"hello"},
		"group": {fmt.Sprint(group.ID)},
	})
	assertRedirect(t, resp, "/profile/leo/")
	if postCount(t) != 1 {
		t.Fatal("expected exactly one post")
	}

	page := newClient(t, ts).get("/group/slug1/")
	if page.StatusCode != http.StatusOK {
		t.Fatalf("group page status = %d", page.StatusCode)
	}
	body := readBody(t, page)
	for _, want := range []string{"hello", "leo", "g1"} {
		if !strings.Contains(body, want) {
			t.Fatalf("group page missing %q", want)
		}
	}
}

func TestIndexCacheStaleness(t *testing.T) {
	ts, pageCache := newServer(t)
	author := mustUser(t, "author")
	mustPost(t, author.ID, "permanent entry", nil)
	anon := newClient(t, ts)

	ephemeral := mustPost(t, author.ID, "ephemeral entry", nil)
	before := readBody(t, anon.get("/"))
	if !strings.Contains(before, "ephemeral entry") {
		t.Fatal("fresh render must show the new post")
	}

	if err := ephemeral.Delete(); err != nil {
		t.Fatalf("delete post: %v", err)
	}
	after := readBody(t, anon.get("/"))
	if before != after {
		t.Fatal("a delete inside the TTL window must not be visible")
	}

	pageCache.Clear()
	cleared := readBody(t, anon.get("/"))
	if cleared == before {
		t.Fatal("response after Clear must reflect the delete")
	}
	if strings.Contains(cleared, "ephemeral entry") {
		t.Fatal("deleted post still visible after Clear")
	}
	if !strings.Contains(cleared, "permanent entry") {
		t.Fatal("surviving post missing after Clear")
	}
}

func TestFollowFlow(t *testing.T) {
	ts, _ := newServer(t)
	author := mustUser(t, "author")
	mustUser(t, "follower")
	mustUser(t, "stranger")

	follower := newClient(t, ts)
	follower.login("follower")
	stranger := newClient(t, ts)
	stranger.login("stranger")

	followCount := func() int64 {
		var count int64
		db.Instance.Model(&models.Follow{}).Count(&count)
		return count
	}

	assertRedirect(t, follower.get("/profile/author/follow/"), "/profile/author/")
	if followCount() != 1 {
		t.Fatalf("follow count = %d, want 1", followCount())
	}
	// Following twice leaves exactly one relation
	assertRedirect(t, follower.get("/profile/author/follow/"), "/profile/author/")
	if followCount() != 1 {
		t.Fatalf("follow count after repeat = %d, want 1", followCount())
	}

	mustPost(t, author.ID, "for my readers", nil)

	followBody := readBody(t, follower.get("/follow/"))
	if !strings.Contains(followBody, "for my readers") {
		t.Fatal("follower's feed must include the followed author's post")
	}
	strangerBody := readBody(t, stranger.get("/follow/"))
	if strings.Contains(strangerBody, "for my readers") {
		t.Fatal("stranger's feed must not include the post")
	}

	assertRedirect(t, follower.get("/profile/author/unfollow/"), "/profile/author/")
	if followCount() != 0 {
		t.Fatalf("follow count after unfollow = %d, want 0", followCount())
	}
	// Unfollowing again is a quiet no-op
	assertRedirect(t, follower.get("/profile/author/unfollow/"), "/profile/author/")
	if followCount() != 0 {
		t.Fatalf("follow count = %d, want 0", followCount())
	}
}

func TestCommentFlow(t *testing.T) {
	ts, _ := newServer(t)
	author := mustUser(t, "author")
	mustUser(t, "reader")
	post := mustPost(t, author.ID, "worth discussing", nil)
	commentPath := fmt.Sprintf("/posts/%d/comment/", post.ID)
	detailPath := fmt.Sprintf("/posts/%d/", post.ID)

	anon := newClient(t, ts)
	assertRedirect(t, anon.postForm(commentPath, url.Values{"text": {"nope"}}),
		"/auth/login/?next="+commentPath)

	reader := newClient(t, ts)
	reader.login("reader")

	resp := reader.postForm(commentPath, url.Values{"text": {"  "}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(readBody(t, resp), "Text is required") {
		t.Fatal("expected the validation message")
	}
	if got := post.CommentCount(); got != 0 {
		t.Fatalf("comment count = %d, want 0", got)
	}

	assertRedirect(t, reader.postForm(commentPath, url.Values{"text": {"great read"}}), detailPath)
	if got := post.CommentCount(); got != 1 {
		t.Fatalf("comment count = %d, want 1", got)
	}
	if !strings.Contains(readBody(t, reader.get(detailPath)), "great read") {
		t.Fatal("detail page must show the comment")
	}
}

func TestNotFoundPages(t *testing.T) {
	ts, _ := newServer(t)
	anon := newClient(t, ts)
	for _, path := range []string{"/group/ghost/", "/profile/ghost/", "/posts/424242/"} {
		resp := anon.get(path)
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("GET %s: status = %d, want 404", path, resp.StatusCode)
		}
	}
}

func TestIndexPagination(t *testing.T) {
	ts, _ := newServer(t)
	author := mustUser(t, "author")
	for i := 0; i < 13; i++ {
		mustPost(t, author.ID, fmt.Sprintf("entry-%02d", i), nil)
	}
	anon := newClient(t, ts)

	first := readBody(t, anon.get("/"))
	if !strings.Contains(first, "entry-12") {
		t.Fatal("page 1 must hold the newest post")
	}
	if strings.Contains(first, "entry-00") {
		t.Fatal("page 1 must not hold the oldest post")
	}
	if !strings.Contains(first, "page 1 of 2") {
		t.Fatal("page 1 must show its paginator")
	}

	second := readBody(t, anon.get("/?page=2"))
	if !strings.Contains(second, "entry-00") {
		t.Fatal("page 2 must hold the oldest post")
	}
	if strings.Contains(second, "entry-12") {
		t.Fatal("page 2 must not hold the newest post")
	}

	overflow := readBody(t, anon.get("/?page=99"))
	if !strings.Contains(overflow, "entry-00") {
		t.Fatal("overflow page must clamp to the last page")
	}
}

func TestLoginHonoursNext(t *testing.T) {
	ts, _ := newServer(t)
	mustUser(t, "someone")
	c := newClient(t, ts)
	resp := c.postForm("/auth/login/?next=/create/", url.Values{
		"username": {"someone"},
		"password": {"password"},
	})
	assertRedirect(t, resp, "/create/")

	// A bad password re-renders the form instead of redirecting
	bad := c.postForm("/auth/login/", url.Values{
		"username": {"someone"},
		"password": {"wrong"},
	})
	if bad.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", bad.StatusCode)
	}
	if !strings.Contains(readBody(t, bad), "Wrong username or password") {
		t.Fatal("expected the login error")
	}
}
