package graph

import (
	"context"
	"encoding/json"
	"net/http"

	"book_tracker/internal/logger"
	"book_tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
)

// Handler executes GraphQL requests against the book tracker schema.
type Handler struct {
	schema graphql.Schema
	log    *logger.Logger
}

type request struct {
	Query         string                 `json:"query" form:"query"`
	OperationName string                 `json:"operationName" form:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// NewHandler builds the schema; it panics if the static schema is invalid.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	r := &Resolver{services: services, log: log, validate: newValidator()}
	schema, err := newSchema(r)
	if err != nil {
		panic("graph: invalid schema: " + err.Error())
	}
	return &Handler{schema: schema, log: log}
}

// Serve handles GET (query string) and POST (JSON body) requests.
func (h *Handler) Serve(c *gin.Context) {
	var req request
	if c.Request.Method == http.MethodGet {
		req.Query = c.Query("query")
		req.OperationName = c.Query("operationName")
		if raw := c.Query("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "variables must be a JSON object"})
				return
			}
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid GraphQL request body"})
		return
	}

	if req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "query is required"})
		return
	}

	// GET must not change state; a link carrying ?token= could otherwise do it
	if c.Request.Method == http.MethodGet && isMutation(req.Query, req.OperationName) {
		c.Header("Allow", http.MethodPost)
		c.JSON(http.StatusMethodNotAllowed, gin.H{"message": "mutations must be sent with POST"})
		return
	}

	result := h.Execute(c.Request.Context(), req.Query, req.OperationName, req.Variables)
	c.JSON(http.StatusOK, result)
}

// Execute runs a single operation. ctx must carry the caller's identity, if any.
func (h *Handler) Execute(ctx context.Context, query, operation string, variables map[string]interface{}) *graphql.Result {
	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  query,
		VariableValues: variables,
		OperationName:  operation,
		Context:        ctx,
	})
	if len(result.Errors) > 0 {
		h.log.Debugw("graphql_errors", "operation", operation, "errors", result.Errors)
	}
	return result
}

// isMutation reports whether the operation that would run is a mutation.
// Unparsable documents report false and fail later in Execute.
func isMutation(query, operation string) bool {
	doc, err := parser.Parse(parser.ParseParams{Source: query})
	if err != nil {
		return false
	}
	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		if operation != "" && (op.Name == nil || op.Name.Value != operation) {
			continue
		}
		if op.Operation == ast.OperationTypeMutation {
			return true
		}
	}
	return false
}
