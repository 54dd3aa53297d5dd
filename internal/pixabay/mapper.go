package pixabay

import "github.com/pixelfall/galleria/internal/domain"

// MapHits converts search API hits to domain images
func MapHits(hits []Hit) []domain.Image {
	images := make([]domain.Image, 0, len(hits))
	for _, h := range hits {
		images = append(images, MapHit(h))
	}
	return images
}

// MapHit converts a single hit to a domain image
func MapHit(h Hit) domain.Image {
	return domain.Image{
		ID:            h.ID,
		PageURL:       h.PageURL,
		Type:          h.Type,
		Tags:          h.Tags,
		PreviewURL:    h.PreviewURL,
		WebFormatURL:  h.WebformatURL,
		LargeImageURL: h.LargeImageURL,
		ImageWidth:    h.ImageWidth,
		ImageHeight:   h.ImageHeight,
		Views:         h.Views,
		Downloads:     h.Downloads,
		Likes:         h.Likes,
		Comments:      h.Comments,
		User:          h.User,
		UserImageURL:  h.UserImageURL,
	}
}
