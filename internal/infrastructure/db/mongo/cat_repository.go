package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sssf/cats-api/internal/core/domain"
)

const catsCollection = "cats"

// CatRepository implements ports.CatRepository using MongoDB. Owner names
// are joined from the users collection on read.
type CatRepository struct {
	coll *mongo.Collection
	ids  sequence
}

func NewCatRepository(db *mongo.Database) *CatRepository {
	return &CatRepository{coll: db.Collection(catsCollection), ids: newSequence(db, catsCollection)}
}

type mongoCat struct {
	ID        int64        `bson:"_id"`
	Name      string       `bson:"cat_name"`
	Weight    float64      `bson:"weight"`
	Owner     int64        `bson:"owner"`
	OwnerName string       `bson:"owner_name,omitempty"`
	Filename  string       `bson:"filename"`
	Birthdate string       `bson:"birthdate,omitempty"`
	Coords    domain.Point `bson:"coords"`
}

func (c mongoCat) toDomain() domain.Cat {
	return domain.Cat{
		ID:        c.ID,
		Name:      c.Name,
		Weight:    c.Weight,
		Owner:     domain.Owner{ID: c.Owner, Name: c.OwnerName},
		Filename:  c.Filename,
		Birthdate: c.Birthdate,
		Coords:    c.Coords,
	}
}

// withOwner builds the aggregation that resolves owner names without
// pulling any other user field.
func withOwner(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         usersCollection,
			"localField":   "owner",
			"foreignField": "_id",
			"as":           "owner_doc",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"owner_name": bson.M{"$first": "$owner_doc.user_name"},
		}}},
		{{Key: "$project", Value: bson.M{"owner_doc": 0}}},
	}
}

func (r *CatRepository) find(ctx context.Context, match bson.M) ([]domain.Cat, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Aggregate(ctx, withOwner(match))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []mongoCat
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	cats := make([]domain.Cat, 0, len(docs))
	for _, d := range docs {
		cats = append(cats, d.toDomain())
	}
	return cats, nil
}

func (r *CatRepository) List(ctx context.Context) ([]domain.Cat, error) {
	cats, err := r.find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list cats: %w", err)
	}
	return cats, nil
}

func (r *CatRepository) FindByID(ctx context.Context, id int64) (*domain.Cat, error) {
	cats, err := r.find(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("find cat: %w", err)
	}
	if len(cats) == 0 {
		return nil, domain.ErrCatNotFound
	}
	return &cats[0], nil
}

func (r *CatRepository) Create(ctx context.Context, cat domain.Cat) (*domain.Cat, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.next(ctx)
	if err != nil {
		return nil, err
	}

	doc := mongoCat{
		ID:        id,
		Name:      cat.Name,
		Weight:    cat.Weight,
		Owner:     cat.Owner.ID,
		Filename:  cat.Filename,
		Birthdate: cat.Birthdate,
		Coords:    cat.Coords,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert cat: %w", err)
	}

	created := doc.toDomain()
	return &created, nil
}

func (r *CatRepository) Update(ctx context.Context, id int64, patch domain.CatPatch) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	if patch.Name != nil {
		set["cat_name"] = *patch.Name
	}
	if patch.Weight != nil {
		set["weight"] = *patch.Weight
	}
	if patch.OwnerID != nil {
		set["owner"] = *patch.OwnerID
	}
	if patch.Filename != nil {
		set["filename"] = *patch.Filename
	}
	if patch.Birthdate != nil {
		set["birthdate"] = *patch.Birthdate
	}
	if patch.Coords != nil {
		set["coords"] = *patch.Coords
	}
	if len(set) == 0 {
		return domain.ErrNoChanges
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update cat: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCatNotFound
	}
	return nil
}

func (r *CatRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete cat: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCatNotFound
	}
	return nil
}
