package repository

import (
	"context"
	"errors"
	"fmt"

	"book_tracker/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// UsersCollection is the collection holding one document per account.
const UsersCollection = "users"

type bookDocument struct {
	BookID      string   `bson:"bookId"`
	Authors     []string `bson:"authors"`
	Description string   `bson:"description"`
	Title       string   `bson:"title"`
	Image       string   `bson:"image,omitempty"`
	Link        string   `bson:"link,omitempty"`
}

type userDocument struct {
	ID         bson.ObjectID  `bson:"_id,omitempty"`
	Username   string         `bson:"username"`
	Email      string         `bson:"email"`
	Password   string         `bson:"password"`
	SavedBooks []bookDocument `bson:"savedBooks"`
}

type UserMongo struct {
	coll *mongo.Collection
}

func NewUserMongo(coll *mongo.Collection) *UserMongo {
	return &UserMongo{coll: coll}
}

var _ UserStore = (*UserMongo)(nil)

func toBookDocument(b models.SavedBook) bookDocument {
	authors := b.Authors
	if authors == nil {
		authors = []string{}
	}
	return bookDocument{
		BookID:      b.BookID,
		Authors:     authors,
		Description: b.Description,
		Title:       b.Title,
		Image:       b.Image,
		Link:        b.Link,
	}
}

func (d *userDocument) toModel() *models.User {
	u := &models.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.Password,
		SavedBooks:   make([]models.SavedBook, 0, len(d.SavedBooks)),
	}
	for _, b := range d.SavedBooks {
		u.SavedBooks = append(u.SavedBooks, models.SavedBook{
			BookID:      b.BookID,
			Authors:     b.Authors,
			Description: b.Description,
			Title:       b.Title,
			Image:       b.Image,
			Link:        b.Link,
		})
	}
	return u
}

// loginFilter matches on whichever of username or email is set.
func loginFilter(username, email string) bson.D {
	var or bson.A
	if username != "" {
		or = append(or, bson.D{{Key: "username", Value: username}})
	}
	if email != "" {
		or = append(or, bson.D{{Key: "email", Value: email}})
	}
	return bson.D{{Key: "$or", Value: or}}
}

// addBookFilter only matches the user while bookID is absent from the list,
// so the $push below is a set insert in a single document update.
func addBookFilter(id bson.ObjectID, bookID string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "savedBooks.bookId", Value: bson.D{{Key: "$ne", Value: bookID}}},
	}
}

func addBookUpdate(book models.SavedBook) bson.D {
	return bson.D{{Key: "$push", Value: bson.D{{Key: "savedBooks", Value: toBookDocument(book)}}}}
}

func removeBookUpdate(bookID string) bson.D {
	return bson.D{{Key: "$pull", Value: bson.D{
		{Key: "savedBooks", Value: bson.D{{Key: "bookId", Value: bookID}}},
	}}}
}

// Create inserts a new user document and assigns its ID.
func (r *UserMongo) Create(ctx context.Context, u *models.User) error {
	doc := userDocument{
		ID:         bson.NewObjectID(),
		Username:   u.Username,
		Email:      u.Email,
		Password:   u.PasswordHash,
		SavedBooks: []bookDocument{},
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	u.ID = doc.ID.Hex()
	if u.SavedBooks == nil {
		u.SavedBooks = []models.SavedBook{}
	}
	return nil
}

func (r *UserMongo) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		// not an id we could have issued
		return nil, nil
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (r *UserMongo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.D{{Key: "username", Value: username}})
}

func (r *UserMongo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *UserMongo) FindByLogin(ctx context.Context, username, email string) (*models.User, error) {
	if username == "" && email == "" {
		return nil, nil
	}
	return r.findOne(ctx, loginFilter(username, email))
}

// AddBook pushes book unless its id is already saved. When the guarded
// update matches nothing the current document decides: it either already
// holds the book or does not exist.
func (r *UserMongo) AddBook(ctx context.Context, userID string, book models.SavedBook) (*models.User, error) {
	oid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, nil
	}
	u, err := r.findOneAndUpdate(ctx, addBookFilter(oid, book.BookID), addBookUpdate(book))
	if err != nil || u != nil {
		return u, err
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (r *UserMongo) RemoveBook(ctx context.Context, userID, bookID string) (*models.User, error) {
	oid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, nil
	}
	return r.findOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, removeBookUpdate(bookID))
}

func (r *UserMongo) findOne(ctx context.Context, filter bson.D) (*models.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toModel(), nil
}

func (r *UserMongo) findOneAndUpdate(ctx context.Context, filter, update bson.D) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDocument
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return doc.toModel(), nil
}
