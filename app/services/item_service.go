package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/orderdesk/delivery/app/models"
	"github.com/orderdesk/delivery/app/repositories"
	"github.com/orderdesk/delivery/pkg/logger"
	"github.com/orderdesk/delivery/pkg/metrics"
	"github.com/orderdesk/delivery/pkg/storage"
	"github.com/orderdesk/delivery/pkg/validate"
)

// ItemStore is the persistence the item service needs.
type ItemStore interface {
	List(ctx context.Context, typ string) ([]models.Item, error)
	Insert(ctx context.Context, item *models.Item) error
	FindByID(ctx context.Context, id string) (*models.Item, error)
	Update(ctx context.Context, id string, u repositories.ItemUpdate) (*models.Item, error)
	Delete(ctx context.Context, id string) error
}

// Upload is an image file received as a multipart part.
type Upload struct {
	Filename string
	Content  io.Reader
}

// CreateItemInput is the payload for ItemService.Create. Upload takes
// precedence over ImageBase64; with neither the default asset is used.
type CreateItemInput struct {
	Name        string `json:"name"        validate:"required"`
	Type        string `json:"type"        validate:"required"`
	ImageBase64 string `json:"imageBase64" validate:"nullable,base64"`
	Upload      *Upload
}

// ItemPatch is a partial update. Nil or empty fields are left unchanged.
type ItemPatch struct {
	Name        *string `json:"name"`
	Type        *string `json:"type"`
	ImageBase64 *string `json:"imageBase64"`
}

func present(s *string) bool { return s != nil && *s != "" }

var safeExt = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)

// ItemService manages menu items and their image assets.
type ItemService struct {
	store        ItemStore
	disk         storage.Disk
	defaultImage string
	now          func() time.Time
}

// NewItemService builds the service. defaultImage is the asset name used
// for items without a picture; it is never deleted.
func NewItemService(store ItemStore, disk storage.Disk, defaultImage string) *ItemService {
	return &ItemService{
		store:        store,
		disk:         disk,
		defaultImage: defaultImage,
		now:          time.Now,
	}
}

// List returns all items, or only those of typ when it is non-empty.
func (s *ItemService) List(ctx context.Context, typ string) ([]models.Item, error) {
	items, err := s.store.List(ctx, typ)
	if err != nil {
		return nil, storeErr("list items", err)
	}
	return items, nil
}

// Create stores the image (if any) and inserts the item.
func (s *ItemService) Create(ctx context.Context, in CreateItemInput) (*models.Item, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, invalidFields(errs)
	}

	var asset string
	switch {
	case in.Upload != nil:
		asset = s.uploadName(in.Upload.Filename)
		if err := s.writeStream(asset, in.Upload.Content); err != nil {
			return nil, err
		}
	case in.ImageBase64 != "":
		data, err := validate.DecodeBase64(in.ImageBase64)
		if err != nil {
			return nil, invalid("imageBase64 must be valid base64")
		}
		asset = s.base64Name()
		if err := s.write(asset, data); err != nil {
			return nil, err
		}
	}

	item := &models.Item{Name: in.Name, Type: in.Type, Image: s.disk.URL(s.defaultImage)}
	if asset != "" {
		item.Image = s.disk.URL(asset)
	}

	if err := s.store.Insert(ctx, item); err != nil {
		if asset != "" {
			s.discard(ctx, asset)
		}
		return nil, storeErr("insert item", err)
	}
	return item, nil
}

// Update applies patch to the item with id and returns the stored result.
// A replaced image is written before the record changes; the old asset is
// removed afterwards unless it is the default.
func (s *ItemService) Update(ctx context.Context, id string, patch ItemPatch) (*models.Item, error) {
	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("find item", err)
	}

	var data []byte
	if present(patch.ImageBase64) {
		if data, err = validate.DecodeBase64(*patch.ImageBase64); err != nil {
			return nil, invalid("imageBase64 must be valid base64")
		}
	}

	var u repositories.ItemUpdate
	if present(patch.Name) {
		u.Name = patch.Name
	}
	if present(patch.Type) {
		u.Type = patch.Type
	}

	var asset string
	if data != nil {
		asset = s.base64Name()
		if err := s.write(asset, data); err != nil {
			return nil, err
		}
		image := s.disk.URL(asset)
		u.Image = &image
	}
	if u.Empty() {
		return current, nil
	}

	updated, err := s.store.Update(ctx, id, u)
	if err != nil {
		if asset != "" {
			s.discard(ctx, asset)
		}
		return nil, storeErr("update item", err)
	}

	if asset != "" {
		s.discard(ctx, assetName(current.Image))
	}
	return updated, nil
}

// RejectUpdate answers a patch body that could not be decoded: ErrNotFound
// when the item with id does not exist, a ValidationError otherwise.
func (s *ItemService) RejectUpdate(ctx context.Context, id string, cause error) error {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		return storeErr("find item", err)
	}
	return invalid("%s", cause.Error())
}

// Delete removes the item record and then its image asset.
func (s *ItemService) Delete(ctx context.Context, id string) error {
	item, err := s.store.FindByID(ctx, id)
	if err != nil {
		return storeErr("find item", err)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return storeErr("delete item", err)
	}
	s.discard(ctx, assetName(item.Image))
	return nil
}

func (s *ItemService) write(name string, data []byte) error {
	err := s.disk.Put(name, data)
	metrics.RecordAsset("write", err)
	if err != nil {
		return &BackendError{Op: "write image", Err: err}
	}
	metrics.AssetBytes.Add(float64(len(data)))
	return nil
}

func (s *ItemService) writeStream(name string, r io.Reader) error {
	cr := &countingReader{r: r}
	err := s.disk.PutStream(name, cr)
	metrics.RecordAsset("write", err)
	if err != nil {
		return &BackendError{Op: "write image", Err: err}
	}
	metrics.AssetBytes.Add(float64(cr.n))
	return nil
}

// discard deletes a stored asset if it exists. The default asset is kept.
// Failures leave an orphaned file and are only logged.
func (s *ItemService) discard(ctx context.Context, name string) {
	if name == "" || name == "." || name == "/" || name == s.defaultImage {
		return
	}
	if !s.disk.Exists(name) {
		return
	}
	err := s.disk.Delete(name)
	metrics.RecordAsset("delete", err)
	if err != nil {
		logger.WithCtx(ctx).Warn("image delete failed", "file", name, "error", err)
	}
}

func (s *ItemService) base64Name() string {
	return fmt.Sprintf("%d-%s.jpg", s.now().UnixMilli(), uuid.NewString()[:8])
}

func (s *ItemService) uploadName(original string) string {
	ext := strings.ToLower(path.Ext(original))
	if !safeExt.MatchString(ext) {
		ext = ""
	}
	return uuid.NewString() + ext
}

// assetName extracts the stored file name from an image URL.
func assetName(image string) string {
	if u, err := url.Parse(image); err == nil && u.Path != "" {
		image = u.Path
	}
	return path.Base(image)
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
