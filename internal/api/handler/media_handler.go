package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/threekst/storefront-gateway/internal/core/ports"
)

// MediaHandler streams image uploads through to the salon API's media store.
type MediaHandler struct {
	media ports.MediaAPI
}

func NewMediaHandler(media ports.MediaAPI) *MediaHandler {
	return &MediaHandler{media: media}
}

// Upload accepts a multipart file and forwards it upstream.
//
// @Summary      Upload a media asset
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Image file"
// @Success      201   {object}  domain.Media
// @Failure      400   {object}  map[string]string
// @Router       /admin/media [post]
func (h *MediaHandler) Upload(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file field")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	media, err := h.media.Upload(c.Request().Context(), sess, fileHeader.Filename, contentType, src)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, media)
}
