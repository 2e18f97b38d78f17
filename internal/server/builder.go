package server

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	builderdomain "github.com/speedisha/speedisha/internal/builder/domain"
)

func (s *Server) registerBuilderRoutes() {
	grp := s.engine.Group("/api/sessions")
	grp.POST("", s.createSession)
	grp.GET("/:id", s.getSession)
	grp.DELETE("/:id", s.deleteSession)

	grp.PATCH("/:id/header", s.updateHeader)
	grp.PATCH("/:id/billto", s.updateBillTo)
	grp.PATCH("/:id/colors", s.updateColor)
	grp.PATCH("/:id/company", s.updateCompany)
	grp.PATCH("/:id/currency", s.updateCurrency)
	grp.PATCH("/:id/style", s.updateStyle)

	grp.POST("/:id/items", s.addItem)
	grp.PATCH("/:id/items/:index", s.updateItem)
	grp.DELETE("/:id/items/:index", s.removeItem)

	grp.POST("/:id/fields", s.addField)
	grp.POST("/:id/fields/:fieldID/toggle", s.toggleField)
	grp.POST("/:id/fields/reorder", s.reorderFields)

	grp.POST("/:id/logo", s.uploadLogo)
	grp.DELETE("/:id/logo", s.removeLogo)

	grp.POST("/:id/capture", s.storeCapture)
	grp.GET("/:id/preview", s.renderPreview)

	grp.POST("/:id/export/pdf", s.exportPDF)
	grp.POST("/:id/export/docx", s.exportDOCX)
}

func (s *Server) respondSession(c *gin.Context, view builderdomain.SessionView, err error) {
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": view})
}

func (s *Server) createSession(c *gin.Context) {
	view, err := s.builderSvc.CreateSession(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session": view})
}

func (s *Server) getSession(c *gin.Context) {
	view, err := s.builderSvc.GetSession(c.Request.Context(), c.Param("id"))
	s.respondSession(c, view, err)
}

func (s *Server) deleteSession(c *gin.Context) {
	if err := s.builderSvc.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type fieldValueRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (s *Server) updateHeader(c *gin.Context) {
	var req fieldValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	view, err := s.builderSvc.UpdateHeader(c.Request.Context(), c.Param("id"), req.Field, req.Value)
	s.respondSession(c, view, err)
}

func (s *Server) updateBillTo(c *gin.Context) {
	var req fieldValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	view, err := s.builderSvc.UpdateBillTo(c.Request.Context(), c.Param("id"), req.Field, req.Value)
	s.respondSession(c, view, err)
}

func (s *Server) updateColor(c *gin.Context) {
	var req struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	view, err := s.builderSvc.UpdateColor(c.Request.Context(), c.Param("id"), req.Key, req.Value)
	s.respondSession(c, view, err)
}

func (s *Server) updateCompany(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	view, err := s.builderSvc.SetCompanyName(c.Request.Context(), c.Param("id"), req.Name)
	s.respondSession(c, view, err)
}

func (s *Server) updateCurrency(c *gin.Context) {
	var req struct {
		CountryCode string `json:"countryCode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	view, err := s.builderSvc.SetCurrency(c.Request.Context(), c.Param("id"), req.CountryCode)
	s.respondSession(c, view, err)
}

func (s *Server) updateStyle(c *gin.Context) {
	var req struct {
		Style string `json:"style"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	view, err := s.builderSvc.SetStyle(c.Request.Context(), c.Param("id"), req.Style)
	s.respondSession(c, view, err)
}

func (s *Server) addItem(c *gin.Context) {
	view, err := s.builderSvc.AddItem(c.Request.Context(), c.Param("id"))
	s.respondSession(c, view, err)
}

func (s *Server) updateItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	var req struct {
		Field string `json:"field"`
		Value any    `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	view, err := s.builderSvc.UpdateItem(c.Request.Context(), c.Param("id"), index, req.Field, req.Value)
	s.respondSession(c, view, err)
}

func (s *Server) removeItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	view, err := s.builderSvc.RemoveItem(c.Request.Context(), c.Param("id"), index)
	s.respondSession(c, view, err)
}

func (s *Server) addField(c *gin.Context) {
	var req struct {
		Label string `json:"label"`
		Type  string `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	view, err := s.builderSvc.AddField(c.Request.Context(), c.Param("id"), req.Label, req.Type)
	s.respondSession(c, view, err)
}

func (s *Server) toggleField(c *gin.Context) {
	view, err := s.builderSvc.ToggleField(c.Request.Context(), c.Param("id"), c.Param("fieldID"))
	s.respondSession(c, view, err)
}

func (s *Server) reorderFields(c *gin.Context) {
	var req struct {
		Src int `json:"src"`
		Dst int `json:"dst"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	view, err := s.builderSvc.ReorderFields(c.Request.Context(), c.Param("id"), req.Src, req.Dst)
	s.respondSession(c, view, err)
}

func (s *Server) uploadLogo(c *gin.Context) {
	contentType, data, err := readUpload(c, "logo")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	view, err := s.builderSvc.UploadLogo(c.Request.Context(), c.Param("id"), contentType, data)
	s.respondSession(c, view, err)
}

func (s *Server) removeLogo(c *gin.Context) {
	view, err := s.builderSvc.RemoveLogo(c.Request.Context(), c.Param("id"))
	s.respondSession(c, view, err)
}

func (s *Server) storeCapture(c *gin.Context) {
	contentType, data, err := readUpload(c, "capture")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	scale, err := strconv.ParseFloat(c.PostForm("scale"), 64)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if err := s.builderSvc.StoreCapture(c.Request.Context(), c.Param("id"), contentType, scale, data); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "stored"})
}

func (s *Server) renderPreview(c *gin.Context) {
	html, err := s.builderSvc.RenderPreview(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

func (s *Server) exportPDF(c *gin.Context) {
	s.respondExport(c, func() (builderdomain.Export, error) {
		return s.builderSvc.ExportPDF(c.Request.Context(), c.Param("id"))
	})
}

func (s *Server) exportDOCX(c *gin.Context) {
	s.respondExport(c, func() (builderdomain.Export, error) {
		return s.builderSvc.ExportDOCX(c.Request.Context(), c.Param("id"))
	})
}

func (s *Server) respondExport(c *gin.Context, export func() (builderdomain.Export, error)) {
	result, err := export()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// readUpload pulls one multipart file. Size enforcement proper happens
// in the service; the reader is capped just past the limit so oversized
// uploads fail validation without buffering unbounded input.
func readUpload(c *gin.Context, field string) (contentType string, data []byte, err error) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		return "", nil, ErrInvalidRequest
	}
	defer file.Close()

	data, err = io.ReadAll(io.LimitReader(file, builderdomain.MaxUploadSize+1))
	if err != nil {
		return "", nil, ErrInvalidRequest
	}
	return header.Header.Get("Content-Type"), data, nil
}
