package stub

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"skillsport/internal/api"
)

// Server is the stub backend. Create one with NewServer and mount its
// Handler, or serve it directly with http.ListenAndServe.
type Server struct {
	store *memStore
}

// NewServer creates a stub with empty state.
func NewServer() *Server {
	return &Server{store: newMemStore()}
}

// Handler builds the echo router with all routes registered.
func (s *Server) Handler() http.Handler {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	e.POST("/api/auth/register", s.register)
	e.POST("/api/auth/login", s.login)

	// Status images live at the server root, outside the API prefix.
	e.GET("/status/:file", s.storyImage)

	authed := e.Group("/api", s.requireAuth)
	authed.GET("/users/profile", s.profile)

	authed.GET("/story/getAllStatus", s.listStories)
	authed.POST("/story/createStory", s.createStory)
	authed.PATCH("/story/updateStory", s.updateStory)
	authed.DELETE("/story/deleteStory", s.deleteStory)

	authed.GET("/posts", s.listPosts)
	authed.POST("/posts", s.createPost)
	authed.POST("/likecomment/toggle-like/:postId", s.toggleLike)
	authed.POST("/likecomment/comment/:postId", s.addComment)
	authed.GET("/likecomment/comments/:postId", s.listComments)
	authed.GET("/likecomment/notifications", s.notifications)
	authed.PUT("/likecomment/notifications/:id/read", s.markRead)
	authed.PUT("/likecomment/notifications/read-all", s.markAllRead)

	authed.GET("/communities", s.listCommunities)
	authed.POST("/communities", s.createCommunity)
	authed.GET("/communities/:id", s.getCommunity)
	authed.POST("/communities/:id/join", s.joinCommunity)
	authed.POST("/communities/:id/leave", s.leaveCommunity)
	authed.GET("/communities/:id/posts", s.listCommunityPosts)
	authed.POST("/communities/:id/posts", s.createCommunityPost)
	authed.POST("/communities/:id/posts/:postId/like", s.likeCommunityPost)

	authed.GET("/learningplans", s.listPlans)
	authed.POST("/learningplans", s.createPlan)
	authed.GET("/learningplans/:id", s.getPlan)
	authed.PUT("/learningplans/:id", s.updatePlan)
	authed.DELETE("/learningplans/:id", s.deletePlan)

	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Not found"})
	})
	return e
}

// requireAuth resolves the bearer token into a user and stashes it on the
// request context.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Missing token"})
		}
		u, err := s.store.userForToken(token)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid token"})
		}
		c.Set("user", u)
		return next(c)
	}
}

func currentUser(c echo.Context) user {
	u, _ := c.Get("user").(user)
	return u
}

func (s *Server) register(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "All fields are required"})
	}
	if err := s.store.register(req.Username, req.Email, req.Password); err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"message": err.Error()})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "User registered successfully"})
}

func (s *Server) login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	u, token, err := s.store.login(req.Email, req.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": err.Error()})
	}
	return c.JSON(http.StatusOK, api.AuthResponse{
		Token:   token,
		Message: "Welcome back, " + u.Username + "!",
		UserID:  u.ID,
	})
}

func (s *Server) profile(c echo.Context) error {
	u := currentUser(c)
	return c.JSON(http.StatusOK, api.Profile{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	})
}

func (s *Server) listStories(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.listStories())
}

func (s *Server) createStory(c echo.Context) error {
	description := c.FormValue("description")
	userID := c.FormValue("userid")
	uname := c.FormValue("uname")
	if description == "" || uname == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "description and uname are required"})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "image is required"})
	}
	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not read image"})
	}
	defer src.Close()
	image, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not read image"})
	}

	item := s.store.createStory(description, userID, uname, image)
	return c.JSON(http.StatusCreated, item)
}

func (s *Server) updateStory(c echo.Context) error {
	var req struct {
		ID          string `json:"id"`
		Description string `json:"description"`
		Uname       string `json:"uname"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if err := s.store.updateStory(req.ID, req.Description, req.Uname); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Status updated"})
}

func (s *Server) deleteStory(c echo.Context) error {
	id := c.QueryParam("id")
	uname := c.QueryParam("uname")
	if err := s.store.deleteStory(id, uname); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Status deleted"})
}

func (s *Server) storyImage(c echo.Context) error {
	id := strings.TrimSuffix(c.Param("file"), ".jpg")
	image, err := s.store.storyImage(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Not found"})
	}
	return c.Blob(http.StatusOK, "image/jpeg", image)
}

func (s *Server) listPosts(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.listPosts(currentUser(c).ID))
}

func (s *Server) createPost(c echo.Context) error {
	var post api.Post
	if err := c.Bind(&post); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	post.UserEmail = currentUser(c).Email
	return c.JSON(http.StatusCreated, s.store.createPost(post))
}

func (s *Server) toggleLike(c echo.Context) error {
	if err := s.store.toggleLike(c.Param("postId"), currentUser(c).ID); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Like toggled"})
}

func (s *Server) addComment(c echo.Context) error {
	var req struct {
		Comment string `json:"comment"`
	}
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Comment) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "comment is required"})
	}
	u := currentUser(c)
	if err := s.store.addComment(c.Param("postId"), u.ID, u.Username, req.Comment); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Comment added"})
}

func (s *Server) listComments(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.comments(c.Param("postId")))
}

func (s *Server) notifications(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.notifications(currentUser(c).ID))
}

func (s *Server) markRead(c echo.Context) error {
	if err := s.store.markRead(currentUser(c).ID, c.Param("id")); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Marked read"})
}

func (s *Server) markAllRead(c echo.Context) error {
	s.store.markAllRead(currentUser(c).ID)
	return c.JSON(http.StatusOK, echo.Map{"message": "All marked read"})
}

func (s *Server) listPlans(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.listPlans())
}

func (s *Server) getPlan(c echo.Context) error {
	plan, err := s.store.getPlan(c.Param("id"))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, plan)
}

func (s *Server) createPlan(c echo.Context) error {
	var plan api.LearningPlan
	if err := c.Bind(&plan); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	plan.UserEmail = currentUser(c).Email
	return c.JSON(http.StatusCreated, s.store.createPlan(plan))
}

func (s *Server) updatePlan(c echo.Context) error {
	var plan api.LearningPlan
	if err := c.Bind(&plan); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if err := s.store.updatePlan(c.Param("id"), plan); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Plan updated"})
}

func (s *Server) deletePlan(c echo.Context) error {
	if err := s.store.deletePlan(c.Param("id")); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Plan deleted"})
}

func (s *Server) listCommunities(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.listCommunities())
}

func (s *Server) getCommunity(c echo.Context) error {
	community, err := s.store.getCommunity(c.Param("id"))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, community)
}

func (s *Server) createCommunity(c echo.Context) error {
	var community api.Community
	if err := c.Bind(&community); err != nil || community.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name is required"})
	}
	return c.JSON(http.StatusCreated, s.store.createCommunity(community))
}

// memberName resolves the userName query param, defaulting to the session
// user's display name when absent.
func memberName(c echo.Context) string {
	if name := c.QueryParam("userName"); name != "" {
		return name
	}
	return currentUser(c).Username
}

func (s *Server) joinCommunity(c echo.Context) error {
	community, err := s.store.joinCommunity(c.Param("id"), memberName(c))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, community)
}

func (s *Server) leaveCommunity(c echo.Context) error {
	community, err := s.store.leaveCommunity(c.Param("id"), memberName(c))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, community)
}

func (s *Server) listCommunityPosts(c echo.Context) error {
	posts, err := s.store.listCommunityPosts(c.Param("id"))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, posts)
}

func (s *Server) createCommunityPost(c echo.Context) error {
	var post api.CommunityPost
	if err := c.Bind(&post); err != nil || strings.TrimSpace(post.Content) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "content is required"})
	}
	if post.Author == "" {
		post.Author = currentUser(c).Username
	}
	created, err := s.store.createCommunityPost(c.Param("id"), post)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) likeCommunityPost(c echo.Context) error {
	err := s.store.likeCommunityPost(c.Param("id"), c.Param("postId"), memberName(c))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post liked"})
}

func storeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
	case errors.Is(err, errNotOwner):
		return c.JSON(http.StatusForbidden, echo.Map{"message": err.Error()})
	case errors.Is(err, errAlreadyMember), errors.Is(err, errNotMember), errors.Is(err, errAlreadyLiked):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": err.Error()})
	}
}
