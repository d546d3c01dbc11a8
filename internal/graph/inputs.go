package graph

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"book_tracker/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

type loginInput struct {
	Email    string `mapstructure:"email" validate:"required"`
	Password string `mapstructure:"password" validate:"required"`
}

type addUserInput struct {
	Username string `mapstructure:"username" validate:"required,max=64"`
	Email    string `mapstructure:"email" validate:"required,email"`
	Password string `mapstructure:"password" validate:"required,max=72"`
}

type saveBookInput struct {
	BookID      string   `mapstructure:"bookId" validate:"required"`
	Authors     []string `mapstructure:"authors" validate:"dive,required"`
	Description string   `mapstructure:"description"`
	Title       string   `mapstructure:"title" validate:"required"`
	Image       string   `mapstructure:"image" validate:"omitempty,url"`
	Link        string   `mapstructure:"link" validate:"omitempty,url"`
}

func (in saveBookInput) toModel() models.SavedBook {
	return models.SavedBook{
		BookID:      in.BookID,
		Authors:     in.Authors,
		Description: in.Description,
		Title:       in.Title,
		Image:       in.Image,
		Link:        in.Link,
	}
}

type removeBookInput struct {
	BookID string `mapstructure:"bookId" validate:"required"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	// report argument names, not Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
	})
	return v
}

// decodeArgs copies resolver arguments into dst and validates it. Any
// failure is a BAD_USER_INPUT error.
func (r *Resolver) decodeArgs(args map[string]interface{}, dst interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      dst,
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(args); err != nil {
		return badInput(fmt.Sprintf("invalid arguments: %v", err))
	}

	if err := r.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			parts := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				parts = append(parts, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
			}
			return badInput("invalid arguments: " + strings.Join(parts, ", "))
		}
		return badInput(err.Error())
	}
	return nil
}
