package controllers

import (
	"net/http"

	"github.com/orderdesk/delivery/app/services"
	"github.com/orderdesk/delivery/pkg/ctx"
)

const itemNotFound = "item not found"

type ItemController struct {
	service *services.ItemService
}

func NewItemController(service *services.ItemService) *ItemController {
	return &ItemController{service: service}
}

// Index handles GET /items?type=
func (ic *ItemController) Index(c *ctx.Context) {
	items, err := ic.service.List(c.Context(), c.Query("type"))
	if err != nil {
		respondError(c, err, itemNotFound)
		return
	}
	c.JSON(http.StatusOK, items)
}

type createItemRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	ImageBase64 string `json:"imageBase64"`
}

// Store handles POST /items. The picture arrives either as the multipart
// file field "image" or as imageBase64.
func (ic *ItemController) Store(c *ctx.Context) {
	var req createItemRequest
	if !c.Bind(&req) {
		return
	}
	in := services.CreateItemInput{
		Name:        req.Name,
		Type:        req.Type,
		ImageBase64: req.ImageBase64,
	}

	if fh := c.File("image"); fh != nil {
		f, err := fh.Open()
		if err != nil {
			c.Error(http.StatusBadRequest, "could not read uploaded image")
			return
		}
		defer f.Close()
		in.Upload = &services.Upload{Filename: fh.Filename, Content: f}
	}

	item, err := ic.service.Create(c.Context(), in)
	if err != nil {
		respondError(c, err, itemNotFound)
		return
	}
	c.Success(map[string]any{"item": item})
}

// Update handles PATCH /items/{id}.
func (ic *ItemController) Update(c *ctx.Context) {
	var patch services.ItemPatch
	if err := c.Decode(&patch); err != nil {
		respondError(c, ic.service.RejectUpdate(c.Context(), c.Param("id"), err), itemNotFound)
		return
	}
	item, err := ic.service.Update(c.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err, itemNotFound)
		return
	}
	c.Success(map[string]any{"item": item})
}

// Destroy handles DELETE /items/{id}.
func (ic *ItemController) Destroy(c *ctx.Context) {
	if err := ic.service.Delete(c.Context(), c.Param("id")); err != nil {
		respondError(c, err, itemNotFound)
		return
	}
	c.Success(nil)
}
