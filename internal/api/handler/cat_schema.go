package handler

import (
	"github.com/sssf/cats-api/internal/core/domain"
	"github.com/sssf/cats-api/internal/core/ports"
)

type pointRequest struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// createCatRequest carries a new cat. Owner is honoured only when the
// authorization policy allows the caller to create on that owner's behalf.
type createCatRequest struct {
	CatName   string        `json:"cat_name"  validate:"required"`
	Weight    float64       `json:"weight"    validate:"gt=0"`
	Owner     int64         `json:"owner"     validate:"omitempty,gt=0"`
	Filename  string        `json:"filename"`
	Birthdate string        `json:"birthdate" validate:"omitempty,datetime=2006-01-02"`
	Coords    *pointRequest `json:"coords"`
}

func (r createCatRequest) toInput() ports.CreateCatInput {
	in := ports.CreateCatInput{
		Name:      r.CatName,
		Weight:    r.Weight,
		OwnerID:   r.Owner,
		Filename:  r.Filename,
		Birthdate: r.Birthdate,
	}
	if r.Coords != nil {
		in.Coords = domain.Point{Lat: r.Coords.Lat, Lng: r.Coords.Lng}
	}
	return in
}

type updateCatRequest struct {
	CatName   *string       `json:"cat_name"  validate:"omitempty,min=1"`
	Weight    *float64      `json:"weight"    validate:"omitempty,gt=0"`
	Owner     *int64        `json:"owner"     validate:"omitempty,gt=0"`
	Filename  *string       `json:"filename"`
	Birthdate *string       `json:"birthdate" validate:"omitempty,datetime=2006-01-02"`
	Coords    *pointRequest `json:"coords"`
}

func (r updateCatRequest) toPatch() domain.CatPatch {
	patch := domain.CatPatch{
		Name:      r.CatName,
		Weight:    r.Weight,
		OwnerID:   r.Owner,
		Filename:  r.Filename,
		Birthdate: r.Birthdate,
	}
	if r.Coords != nil {
		patch.Coords = &domain.Point{Lat: r.Coords.Lat, Lng: r.Coords.Lng}
	}
	return patch
}
