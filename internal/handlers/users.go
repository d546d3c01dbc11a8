package handlers

import (
	"errors"
	"net/http"

	book_tracker "book_tracker"
	"book_tracker/internal/models"
	"book_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// Client-facing messages.
const (
	msgUserNotFound   = "Can't find this user"
	msgWrongPassword  = "Wrong password!"
	msgLookupNotFound = "Cannot find a user with this id!"
	msgNotLoggedIn    = "You need to be logged in!"
	msgUserVanished   = "Couldn't find user with this id!"
	msgInvalidBodyPfx = "invalid body: "
)

// registerRequest and SaveBookRequest carry the same rules as the GraphQL
// addUser and saveBook inputs.
type registerRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=72"`
}

// loginRequest accepts either a username or an email.
type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// SaveBookRequest is the book payload of PUT /api/users/books.
type SaveBookRequest struct {
	BookID      string   `json:"bookId" binding:"required" example:"zyTCAlFPjgYC"`
	Authors     []string `json:"authors" binding:"dive,required" example:"Frank Herbert"`
	Description string   `json:"description"`
	Title       string   `json:"title" binding:"required" example:"Dune"`
	Image       string   `json:"image" binding:"omitempty,url"`
	Link        string   `json:"link" binding:"omitempty,url"`
}

func (r SaveBookRequest) toModel() models.SavedBook {
	return models.SavedBook{
		BookID:      r.BookID,
		Authors:     r.Authors,
		Description: r.Description,
		Title:       r.Title,
		Image:       r.Image,
		Link:        r.Link,
	}
}

// failureText maps business failures to status and message for one route.
type failureText struct {
	notFoundStatus int
	notFound       string
	notLoggedIn    string
}

// respondError writes the client-facing failure for err. Internal errors are
// handed to errorReporter.
func (h *Handler) respondError(c *gin.Context, logKey string, err error, ft failureText) {
	switch service.KindOf(err) {
	case service.KindNotFound:
		h.log.Infow(logKey, "err", err)
		status := ft.notFoundStatus
		if status == 0 {
			status = http.StatusBadRequest
		}
		jsonMessage(c, status, ft.notFound)
	case service.KindAuthentication:
		h.log.Infow(logKey, "err", err)
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			jsonMessage(c, http.StatusBadRequest, msgWrongPassword)
		default:
			jsonMessage(c, http.StatusUnauthorized, ft.notLoggedIn)
		}
	case service.KindValidation:
		h.log.Infow(logKey, "err", err)
		jsonMessage(c, http.StatusBadRequest, err.Error())
	default:
		_ = c.Error(err)
	}
}

func jsonMessage(c *gin.Context, status int, msg string) {
	c.JSON(status, book_tracker.MessageResponse{Message: msg})
}

func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.log.Infow("users_bad_request_body", "path", c.FullPath(), "err", err)
		jsonMessage(c, http.StatusBadRequest, msgInvalidBodyPfx+err.Error())
		return false
	}
	return true
}

func authResponse(res *service.AuthResult) book_tracker.AuthResponse {
	return book_tracker.AuthResponse{Token: res.Token, User: book_tracker.NewUserResponse(res.User)}
}

// @Summary      Register
// @Description  Creates an account and returns a token for it
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account"
// @Success      200   {object}  book_tracker.AuthResponse
// @Failure      400   {object}  book_tracker.MessageResponse
// @Failure      500   {object}  book_tracker.MessageResponse
// @Router       /api/users [post]
func (h *Handler) createUser(c *gin.Context) {
	var req registerRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	res, err := h.services.Register(c.Request.Context(), service.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(c, "users_register_failed", err, failureText{})
		return
	}

	c.JSON(http.StatusOK, authResponse(res))
}

// @Summary      Log in
// @Description  Looks the account up by username or email
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  book_tracker.AuthResponse
// @Failure      400   {object}  book_tracker.MessageResponse
// @Failure      500   {object}  book_tracker.MessageResponse
// @Router       /api/users/login [post]
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	res, err := h.services.Login(c.Request.Context(), service.LoginParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(c, "users_login_failed", err, failureText{notFound: msgUserNotFound})
		return
	}

	c.JSON(http.StatusOK, authResponse(res))
}

// @Summary      Get a user
// @Description  The caller's own account when a token is sent, otherwise the user named in the path
// @Tags         users
// @Produce      json
// @Param        username  path      string  true   "Username"
// @Param        id        query     string  false  "User id"
// @Success      200       {object}  book_tracker.UserResponse
// @Failure      400       {object}  book_tracker.MessageResponse
// @Failure      500       {object}  book_tracker.MessageResponse
// @Router       /api/users/{username} [get]
// @Router       /api/users/me [get]
// @Security     BearerAuth
func (h *Handler) getSingleUser(c *gin.Context) {
	u, err := h.services.GetUser(c.Request.Context(), service.UserLookup{
		ID:       c.Query("id"),
		Username: c.Param("username"),
	})
	if err != nil {
		h.respondError(c, "users_lookup_failed", err, failureText{notFound: msgLookupNotFound})
		return
	}

	c.JSON(http.StatusOK, book_tracker.NewUserResponse(u))
}

// @Summary      Save a book
// @Description  Adds the book to the caller's list; saving it again changes nothing
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        body  body      SaveBookRequest  true  "Book"
// @Success      200   {object}  book_tracker.UserResponse
// @Failure      400   {object}  book_tracker.MessageResponse
// @Failure      401   {object}  book_tracker.MessageResponse
// @Failure      404   {object}  book_tracker.MessageResponse
// @Failure      500   {object}  book_tracker.MessageResponse
// @Router       /api/users/books [put]
// @Security     BearerAuth
func (h *Handler) saveBook(c *gin.Context) {
	if _, ok := identityFrom(c); !ok {
		jsonMessage(c, http.StatusUnauthorized, msgNotLoggedIn)
		return
	}

	var req SaveBookRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	u, err := h.services.SaveBook(c.Request.Context(), req.toModel())
	if err != nil {
		h.respondError(c, "books_save_failed", err, failureText{
			notFoundStatus: http.StatusNotFound,
			notFound:       msgUserVanished,
			notLoggedIn:    msgNotLoggedIn,
		})
		return
	}

	c.JSON(http.StatusOK, book_tracker.NewUserResponse(u))
}

// @Summary      Remove a book
// @Description  Removing a book that is not saved returns the unchanged user
// @Tags         books
// @Produce      json
// @Param        bookId  path      string  true  "Book id"
// @Success      200     {object}  book_tracker.UserResponse
// @Failure      401     {object}  book_tracker.MessageResponse
// @Failure      404     {object}  book_tracker.MessageResponse
// @Failure      500     {object}  book_tracker.MessageResponse
// @Router       /api/users/books/{bookId} [delete]
// @Security     BearerAuth
func (h *Handler) deleteBook(c *gin.Context) {
	u, err := h.services.RemoveBook(c.Request.Context(), c.Param("bookId"))
	if err != nil {
		h.respondError(c, "books_remove_failed", err, failureText{
			notFoundStatus: http.StatusNotFound,
			notFound:       msgUserVanished,
			notLoggedIn:    msgNotLoggedIn,
		})
		return
	}

	c.JSON(http.StatusOK, book_tracker.NewUserResponse(u))
}
