package graph

import (
	"book_tracker/internal/logger"
	"book_tracker/internal/models"
	"book_tracker/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/graphql-go/graphql"
)

const (
	opMe         = "me"
	opLogin      = "login"
	opAddUser    = "addUser"
	opSaveBook   = "saveBook"
	opRemoveBook = "removeBook"
)

// Resolver adapts GraphQL fields to the service layer. The caller's
// identity travels on p.Context, placed there by the HTTP middleware.
type Resolver struct {
	services *service.Service
	log      *logger.Logger
	validate *validator.Validate
}

func (r *Resolver) me(p graphql.ResolveParams) (interface{}, error) {
	u, err := r.services.Me(p.Context)
	if err != nil {
		return nil, r.toGraphQLError(opMe, err, meMessages)
	}
	return userPayload(u), nil
}

func (r *Resolver) login(p graphql.ResolveParams) (interface{}, error) {
	var in loginInput
	if err := r.decodeArgs(p.Args, &in); err != nil {
		return nil, err
	}

	res, err := r.services.Login(p.Context, service.LoginParams{Email: in.Email, Password: in.Password})
	if err != nil {
		return nil, r.toGraphQLError(opLogin, err, loginMessages)
	}
	return authPayload(res), nil
}

func (r *Resolver) addUser(p graphql.ResolveParams) (interface{}, error) {
	var in addUserInput
	if err := r.decodeArgs(p.Args, &in); err != nil {
		return nil, err
	}

	res, err := r.services.Register(p.Context, service.RegisterParams{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		return nil, r.toGraphQLError(opAddUser, err, messages{})
	}
	return authPayload(res), nil
}

func (r *Resolver) saveBook(p graphql.ResolveParams) (interface{}, error) {
	var in saveBookInput
	if err := r.decodeArgs(p.Args, &in); err != nil {
		return nil, err
	}

	u, err := r.services.SaveBook(p.Context, in.toModel())
	if err != nil {
		return nil, r.toGraphQLError(opSaveBook, err, libraryMessages)
	}
	return userPayload(u), nil
}

func (r *Resolver) removeBook(p graphql.ResolveParams) (interface{}, error) {
	var in removeBookInput
	if err := r.decodeArgs(p.Args, &in); err != nil {
		return nil, err
	}

	u, err := r.services.RemoveBook(p.Context, in.BookID)
	if err != nil {
		return nil, r.toGraphQLError(opRemoveBook, err, libraryMessages)
	}
	return userPayload(u), nil
}

func userPayload(u *models.User) map[string]interface{} {
	books := make([]interface{}, 0, len(u.SavedBooks))
	for _, b := range u.SavedBooks {
		books = append(books, map[string]interface{}{
			"bookId":      b.BookID,
			"authors":     b.Authors,
			"description": b.Description,
			"title":       b.Title,
			"image":       b.Image,
			"link":        b.Link,
		})
	}
	return map[string]interface{}{
		"_id":        u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"bookCount":  u.BookCount(),
		"savedBooks": books,
	}
}

func authPayload(res *service.AuthResult) map[string]interface{} {
	return map[string]interface{}{
		"token": res.Token,
		"user":  userPayload(res.User),
	}
}
