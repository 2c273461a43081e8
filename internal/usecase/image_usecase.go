package usecase

import (
	"context"
	"net/http"

	"candidate-voting-backend/internal/domain"
	"candidate-voting-backend/pkg/apperror"
	"candidate-voting-backend/pkg/imaging"
	"candidate-voting-backend/pkg/storage"
)

type imageUsecase struct {
	store        storage.ImageStore
	maxDimension int
	quality      int
}

func NewImageUsecase(store storage.ImageStore) domain.ImageUsecase {
	return &imageUsecase{
		store:        store,
		maxDimension: imaging.DefaultMaxDimension,
		quality:      imaging.DefaultQuality,
	}
}

// Upload validates the portrait, downscales it to JPEG and stores it.
func (u *imageUsecase) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if _, err := imaging.Validate(filename, data); err != nil {
		return "", apperror.New(http.StatusBadRequest, "Invalid image: "+err.Error(), err)
	}

	compressed, err := imaging.Compress(data, u.maxDimension, u.quality)
	if err != nil {
		return "", apperror.New(http.StatusBadRequest, "Image could not be processed", err)
	}

	url, err := u.store.Save(ctx, compressed, "image/jpeg")
	if err != nil {
		return "", apperror.Internal(err)
	}
	return url, nil
}
