package handlers

import (
	"net/http"
	"strings"
	"time"

	book_tracker "book_tracker"
	"book_tracker/internal/auth"
	"book_tracker/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	identityCtx  = "identity"
	requestIDCtx = "requestId"

	requestIDHeader = "X-Request-ID"
	tokenQueryParam = "token"

	errInternal = "Something went wrong"
)

// requestLogger tags the request with an id and writes one access-log line.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()

	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(requestIDCtx, id)
	c.Header(requestIDHeader, id)

	c.Next()

	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency", time.Since(start),
		"request_id", id,
	)
}

// errorReporter logs errors attached with c.Error and answers 500 if the
// handler has not written a response yet.
func (h *Handler) errorReporter(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 {
		return
	}
	h.log.Errorw("http_request_failed",
		"path", c.Request.URL.Path,
		"request_id", c.GetString(requestIDCtx),
		"err", c.Errors.String(),
	)
	if !c.Writer.Written() {
		c.JSON(http.StatusInternalServerError, book_tracker.MessageResponse{Message: errInternal})
	}
}

// identityMiddleware never rejects a request. A valid token attaches its
// claim to the gin context and to the request context; anything else leaves
// the request anonymous.
func (h *Handler) identityMiddleware(c *gin.Context) {
	raw := bearerToken(c)
	if raw == "" {
		c.Next()
		return
	}

	claim, err := h.services.ParseToken(raw)
	if err != nil {
		h.log.Debugw("auth_token_rejected", "err", err, "request_id", c.GetString(requestIDCtx))
		c.Next()
		return
	}

	c.Set(identityCtx, claim)
	c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), claim))
	c.Next()
}

// bearerToken reads "Authorization: Bearer <t>", then the token query parameter.
func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.Fields(header)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	return strings.TrimSpace(c.Query(tokenQueryParam))
}

func identityFrom(c *gin.Context) (*models.IdentityClaim, bool) {
	v, ok := c.Get(identityCtx)
	if !ok {
		return nil, false
	}
	claim, ok := v.(*models.IdentityClaim)
	return claim, ok && claim != nil
}
