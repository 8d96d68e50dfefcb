package domain

// Point is a geographic coordinate pair.
type Point struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// Owner is the summary of the identity that owns a cat, as rendered on reads.
type Owner struct {
	ID   int64  `json:"user_id"`
	Name string `json:"user_name"`
}

// Cat is the mutable resource guarded by ownership.
type Cat struct {
	ID        int64   `json:"cat_id"`
	Name      string  `json:"cat_name"`
	Weight    float64 `json:"weight"`
	Owner     Owner   `json:"owner"`
	Filename  string  `json:"filename"`
	Birthdate string  `json:"birthdate,omitempty"`
	Coords    Point   `json:"coords"`
}

// Target returns the ownership view of the cat used by Authorize.
func (c Cat) Target() *Target {
	return &Target{ID: c.ID, OwnerID: c.Owner.ID}
}

// CatPatch carries the optional fields of a cat update.
type CatPatch struct {
	Name      *string
	Weight    *float64
	OwnerID   *int64
	Filename  *string
	Birthdate *string
	Coords    *Point
}

// Empty reports whether the patch changes nothing.
func (p CatPatch) Empty() bool {
	return p.Name == nil && p.Weight == nil && p.OwnerID == nil &&
		p.Filename == nil && p.Birthdate == nil && p.Coords == nil
}
