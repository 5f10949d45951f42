package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
)

// UploadController accepts multipart media uploads from admins.
type UploadController struct {
	uploads *services.UploadService
	scopes  *services.ScopeResolver
}

func NewUploadController(uploads *services.UploadService, scopes *services.ScopeResolver) *UploadController {
	return &UploadController{uploads: uploads, scopes: scopes}
}

// Upload stores one file from the "file" form field and returns its URL.
func (uc *UploadController) Upload(c *ctx.Context) {
	scope, ok := adminScope(c, uc.scopes)
	if !ok {
		return
	}

	if err := c.R.ParseMultipartForm(services.MaxUploadSize); err != nil {
		c.Error(http.StatusBadRequest, "Invalid multipart form")
		return
	}
	_, header, err := c.R.FormFile("file")
	if err != nil {
		c.ValidationError(map[string]string{"file": "file is required"})
		return
	}

	url, err := uc.uploads.Save(scope, header)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(map[string]string{"url": url})
}

// Delete removes an uploaded file by path.
func (uc *UploadController) Delete(c *ctx.Context) {
	scope, ok := adminScope(c, uc.scopes)
	if !ok {
		return
	}
	var in struct {
		Path string `json:"path" validate:"required"`
	}
	if !c.BindJSON(&in) {
		return
	}
	if err := uc.uploads.Delete(scope, in.Path); err != nil {
		c.Fail(err)
		return
	}
	c.Success(map[string]string{"message": "File deleted"})
}
