// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package upload

import "time"

// ImageType classifies what an uploaded image is used for.
type ImageType string

const (
	TypeBanner   ImageType = "banner"
	TypeOffer    ImageType = "offer"
	TypeProduct  ImageType = "product"
	TypeOrder    ImageType = "order"
	TypeEmployee ImageType = "employee"
	TypeProfile  ImageType = "profile"
)

// Valid reports whether t is a known image type.
func (t ImageType) Valid() bool {
	switch t {
	case TypeBanner, TypeOffer, TypeProduct, TypeOrder, TypeEmployee, TypeProfile:
		return true
	}
	return false
}

// Image is the catalog record of a file uploaded through POST /upload.
type Image struct {
	ID         string    `json:"id"`
	ImageURL   string    `json:"imageUrl"`
	Type       ImageType `json:"type"`
	UploadedBy string    `json:"uploadedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}
