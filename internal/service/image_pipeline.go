package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"time"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/chubrika/wineo-back/internal/apperr"
	"github.com/chubrika/wineo-back/internal/core/storage"
	"github.com/chubrika/wineo-back/pkg/utils"
)

const (
	MaxUploadSlots = 20
	uploadSlotTTL  = 15 * time.Minute

	thumbSize = 400
	imageSize = 800
)

// UploadSlot pairs a temporary object key with its presigned PUT URL.
type UploadSlot struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
}

// ImagePipeline stages raw uploads under a per-user temp prefix and, on
// commit, resizes them into the listing's final keys. Processing is a
// sequential loop; a mid-loop failure leaves earlier images committed and
// later temp objects untouched. An external bucket lifecycle policy
// reaps orphaned temp objects.
type ImagePipeline struct {
	store *storage.Client
	log   *zap.Logger
}

func NewImagePipeline(store *storage.Client, log *zap.Logger) *ImagePipeline {
	return &ImagePipeline{store: store, log: log}
}

func TempKey(userID string) string  { return fmt.Sprintf("tmp/%s/%s", userID, utils.NewID()) }
func ThumbKey(listingID string) string {
	return fmt.Sprintf("listings/%s/thumbnail.jpg", listingID)
}
func ImageKey(listingID string, n int) string {
	return fmt.Sprintf("listings/%s/image-%d.jpg", listingID, n)
}

// AllocateSlots returns up to MaxUploadSlots presigned write-only slots
// under the caller's temp prefix, each valid for 15 minutes.
func (p *ImagePipeline) AllocateSlots(ctx context.Context, userID string, count int) ([]UploadSlot, error) {
	if count <= 0 {
		return nil, apperr.BadRequest("count must be positive")
	}
	if count > MaxUploadSlots {
		return nil, apperr.BadRequest(fmt.Sprintf("at most %d upload slots per request", MaxUploadSlots))
	}
	slots := make([]UploadSlot, 0, count)
	for i := 0; i < count; i++ {
		key := TempKey(userID)
		u, err := p.store.PresignPut(ctx, key, uploadSlotTTL)
		if err != nil {
			return nil, apperr.Internal("presign upload failed", err)
		}
		slots = append(slots, UploadSlot{Key: key, UploadURL: u})
	}
	return slots, nil
}

// Commit processes tempKeys in order: the first becomes both the 400×400
// thumbnail and image-1, the rest become image-2, image-3, … All outputs
// are 800×800 crop-cover except the thumbnail. Each temp object is
// deleted right after its outputs are stored. Returns the public image
// URLs and the thumbnail URL.
func (p *ImagePipeline) Commit(ctx context.Context, listingID string, tempKeys []string) ([]string, string, error) {
	var urls []string
	var thumbURL string
	for i, key := range tempKeys {
		img, err := p.fetch(ctx, key)
		if err != nil {
			return urls, thumbURL, err
		}
		if i == 0 {
			if err := p.storeResized(ctx, img, ThumbKey(listingID), thumbSize); err != nil {
				return urls, thumbURL, err
			}
			thumbURL = p.store.PublicURL(ThumbKey(listingID))
		}
		outKey := ImageKey(listingID, i+1)
		if err := p.storeResized(ctx, img, outKey, imageSize); err != nil {
			return urls, thumbURL, err
		}
		urls = append(urls, p.store.PublicURL(outKey))
		if err := p.store.Remove(ctx, key); err != nil {
			// Output already committed; leave the temp object to the
			// lifecycle reaper and keep going.
			p.log.Warn("remove temp upload failed", zap.String("key", key), zap.Error(err))
		}
	}
	return urls, thumbURL, nil
}

// Append processes additional images for an existing listing, writing
// image-{startIndex+1}, image-{startIndex+2}, … without touching the
// thumbnail.
func (p *ImagePipeline) Append(ctx context.Context, listingID string, tempKeys []string, startIndex int) ([]string, error) {
	var urls []string
	for i, key := range tempKeys {
		img, err := p.fetch(ctx, key)
		if err != nil {
			return urls, err
		}
		outKey := ImageKey(listingID, startIndex+i+1)
		if err := p.storeResized(ctx, img, outKey, imageSize); err != nil {
			return urls, err
		}
		urls = append(urls, p.store.PublicURL(outKey))
		if err := p.store.Remove(ctx, key); err != nil {
			p.log.Warn("remove temp upload failed", zap.String("key", key), zap.Error(err))
		}
	}
	return urls, nil
}

func (p *ImagePipeline) fetch(ctx context.Context, key string) (image.Image, error) {
	raw, err := p.store.Get(ctx, key)
	if err != nil {
		return nil, apperr.Internal("fetch uploaded image failed", err)
	}
	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, apperr.BadRequest("uploaded object is not a valid image")
	}
	return img, nil
}

func (p *ImagePipeline) storeResized(ctx context.Context, img image.Image, key string, size int) error {
	resized := imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return apperr.Internal("encode image failed", err)
	}
	if err := p.store.Put(ctx, key, buf.Bytes(), "image/jpeg"); err != nil {
		return apperr.Internal("store image failed", err)
	}
	return nil
}
