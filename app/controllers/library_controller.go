package controllers

import (
	"io"
	"net/http"
	"path"

	"github.com/shashiranjanraj/inkstore/app/services"
	"github.com/shashiranjanraj/inkstore/pkg/ctx"
	"github.com/shashiranjanraj/inkstore/pkg/storage"
)

// LibraryController serves the customer's owned content: the partitioned
// library listing, delivery links for owned products, and the tokenised
// download endpoint itself.
type LibraryController struct {
	library   *services.LibraryService
	downloads *services.DownloadService
}

func NewLibraryController() *LibraryController {
	return &LibraryController{
		library:   services.NewLibraryService(),
		downloads: services.NewDownloadService(),
	}
}

// Index handles GET /api/library
func (ctl *LibraryController) Index(c *ctx.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	lib, err := ctl.library.Library(p)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(lib)
}

// Link handles POST /api/library/products/{id}/link
func (ctl *LibraryController) Link(c *ctx.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	link, err := ctl.downloads.AccessLink(p, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(link)
}

// Download handles GET /api/downloads/{token}. The token itself carries
// the authorization, so the route is public.
func (ctl *LibraryController) Download(c *ctx.Context) {
	filePath, err := ctl.downloads.Resolve(c.Param("token"))
	if err != nil {
		fail(c, err)
		return
	}

	stream, err := storage.GetStream(filePath)
	if err != nil {
		c.NotFound()
		return
	}
	defer stream.Close()

	c.SetHeader("Content-Disposition", "attachment; filename=\""+path.Base(filePath)+"\"")
	c.SetHeader("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.W, stream)
}
