package graph

import (
	"github.com/graphql-go/graphql"
)

var bookType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Book",
	Fields: graphql.Fields{
		"bookId":      &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"authors":     &graphql.Field{Type: graphql.NewList(graphql.String)},
		"description": &graphql.Field{Type: graphql.String},
		"title":       &graphql.Field{Type: graphql.String},
		"image":       &graphql.Field{Type: graphql.String},
		"link":        &graphql.Field{Type: graphql.String},
	},
})

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"_id":        &graphql.Field{Type: graphql.ID},
		"username":   &graphql.Field{Type: graphql.String},
		"email":      &graphql.Field{Type: graphql.String},
		"bookCount":  &graphql.Field{Type: graphql.Int},
		"savedBooks": &graphql.Field{Type: graphql.NewList(bookType)},
	},
})

var authType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Auth",
	Fields: graphql.Fields{
		"token": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"user":  &graphql.Field{Type: userType},
	},
})

func nonNullString() *graphql.ArgumentConfig {
	return &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)}
}

// newSchema wires the resolvers into the Query and Mutation roots.
func newSchema(r *Resolver) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{Type: userType, Resolve: r.me},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			opLogin: &graphql.Field{
				Type: authType,
				Args: graphql.FieldConfigArgument{
					"email":    nonNullString(),
					"password": nonNullString(),
				},
				Resolve: r.login,
			},
			opAddUser: &graphql.Field{
				Type: authType,
				Args: graphql.FieldConfigArgument{
					"username": nonNullString(),
					"email":    nonNullString(),
					"password": nonNullString(),
				},
				Resolve: r.addUser,
			},
			opSaveBook: &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"authors":     &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
					"title":       nonNullString(),
					"bookId":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"image":       &graphql.ArgumentConfig{Type: graphql.String},
					"link":        &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.saveBook,
			},
			opRemoveBook: &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"bookId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.removeBook,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}
