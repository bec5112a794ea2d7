package api

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	pdfPkg "pdf_assembler/pdf"
	"pdf_assembler/workspace"
)

type validateRequest struct {
	Pages      string `form:"pages"`
	TotalPages int    `form:"total_pages" binding:"gte=0"`
}

// HandleInspect reports the page count and page sizes of one uploaded PDF
func HandleInspect(c *gin.Context, srv *Server) {
	log := srv.requestLog(c, "inspect")

	files, err := readUploads(c, srv.config.MaxFileSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(files) != 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Exactly one PDF file is required"})
		return
	}

	info, err := pdfPkg.Inspect(srv.provider, files[0])
	if err != nil {
		srv.fail(c, log, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// HandleValidate checks a page selection against a known page count. It does
// no document work and is meant to be called as the user types.
func HandleValidate(c *gin.Context, srv *Server) {
	var req validateRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": MsgBadTotalPages})
		return
	}

	selection, err := pdfPkg.SelectPages(req.Pages, req.TotalPages)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pages": []int(selection)})
}

// HandleMerge combines up to three uploaded PDFs onto uniform pages
func HandleMerge(c *gin.Context, srv *Server) {
	log := srv.requestLog(c, "merge")

	canvas := srv.config.CanvasSize()
	if name := c.PostForm("canvas"); name != "" {
		size, ok := pdfPkg.CanvasByName(name)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": MsgUnknownCanvas})
			return
		}
		canvas = size
	}

	files, err := readUploads(c, srv.config.MaxFileSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := workspace.New(pdfPkg.ModeMerge).WithFiles(files...)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("At most %d PDF files can be merged", state.MaxFiles())})
		return
	}

	if !srv.jobs.TryAcquire(1) {
		c.JSON(http.StatusConflict, gin.H{"error": MsgBusy})
		return
	}
	defer srv.jobs.Release(1)

	state, err = state.Begin()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": MsgNoFile})
		return
	}

	log.WithFields(logrus.Fields{"files": len(state.Files), "canvas": canvas.String()}).Info("Merging documents")

	data, err := pdfPkg.MergeFiles(c.Request.Context(), srv.provider, state.Files, canvas)
	state = state.Finish(err)
	if err != nil {
		srv.fail(c, log, err)
		return
	}

	sendPDF(c, data, state.Mode.Filename())
}

// HandleSplit extracts the pages named in the "pages" field from one uploaded PDF
func HandleSplit(c *gin.Context, srv *Server) {
	log := srv.requestLog(c, "split")

	files, err := readUploads(c, srv.config.MaxFileSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := workspace.New(pdfPkg.ModeSplit).WithFiles(files...)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only one PDF file can be split at a time"})
		return
	}
	if len(state.Files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": MsgNoFile})
		return
	}

	if !srv.jobs.TryAcquire(1) {
		c.JSON(http.StatusConflict, gin.H{"error": MsgBusy})
		return
	}
	defer srv.jobs.Release(1)

	file := state.Files[0]
	doc, err := srv.provider.Load(file.Name, file.Data)
	if err != nil {
		srv.fail(c, log, err)
		return
	}

	state = state.WithTotalPages(doc.PageCount()).WithPagesText(c.PostForm("pages"))
	if state.Error != "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": state.Error})
		return
	}

	state, err = state.Begin()
	if err != nil {
		srv.fail(c, log, err)
		return
	}

	log.WithFields(logrus.Fields{
		"total_pages": state.TotalPages,
		"selection":   state.Selection.String(),
	}).Info("Splitting document")

	data, err := pdfPkg.SplitDocument(srv.provider, doc, state.Selection)
	state = state.Finish(err)
	if err != nil {
		srv.fail(c, log, err)
		return
	}

	sendPDF(c, data, state.Mode.Filename())
}

// fail logs the cause of a fatal error and answers with a generic message
func (srv *Server) fail(c *gin.Context, log logrus.FieldLogger, err error) {
	if errors.Is(err, context.Canceled) {
		log.WithError(err).Warn("PDF operation abandoned by client")
		c.Status(499)
		return
	}

	entry := log.WithError(err)
	var decodeErr *pdfPkg.DecodeError
	var geometryErr *pdfPkg.GeometryError
	var encodeErr *pdfPkg.EncodeError
	switch {
	case errors.As(err, &decodeErr):
		entry = entry.WithField("class", "decode").WithField("document", decodeErr.Name)
	case errors.As(err, &geometryErr):
		entry = entry.WithField("class", "geometry").WithField("document", geometryErr.Document)
	case errors.As(err, &encodeErr):
		entry = entry.WithField("class", "encode")
	}
	entry.Error("PDF operation failed")

	c.JSON(http.StatusInternalServerError, gin.H{"error": MsgOperationFailed})
}

func (srv *Server) requestLog(c *gin.Context, operation string) logrus.FieldLogger {
	return srv.log.WithFields(logrus.Fields{
		"operation":  operation,
		"request_id": generateUniqueID(),
		"client_ip":  c.ClientIP(),
	})
}

func sendPDF(c *gin.Context, data []byte, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// readUploads reads every file in the "pdf" field of a multipart form
func readUploads(c *gin.Context, maxSize int64) ([]pdfPkg.File, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, errors.New(MsgNoFile)
	}
	headers := form.File["pdf"]
	if len(headers) == 0 {
		return nil, errors.New(MsgNoFile)
	}

	files := make([]pdfPkg.File, 0, len(headers))
	for _, header := range headers {
		file, err := readUpload(header, maxSize)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

func readUpload(header *multipart.FileHeader, maxSize int64) (pdfPkg.File, error) {
	file, err := header.Open()
	if err != nil {
		return pdfPkg.File{}, fmt.Errorf("failed to open upload %s", sanitizeFilename(header.Filename))
	}
	defer file.Close()

	if err := validatePDFFile(file, header, maxSize); err != nil {
		return pdfPkg.File{}, err
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return pdfPkg.File{}, fmt.Errorf("failed to read upload %s", sanitizeFilename(header.Filename))
	}
	return pdfPkg.File{Name: sanitizeFilename(header.Filename), Data: data}, nil
}

// sanitizeFilename removes path traversal attempts and dangerous characters
func sanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "..", "")
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")

	filename = filepath.Base(filename)
	filename = strings.TrimSpace(filename)

	if filename == "" || filename == "." {
		filename = "document.pdf"
	}

	return filename
}

// randRead fills request ID entropy
var randRead = rand.Read

// generateUniqueID generates an identifier used to correlate log lines of one
// request. Without entropy the timestamp alone is used.
func generateUniqueID() string {
	timestamp := time.Now().UnixNano()
	b := make([]byte, 8)
	if _, err := randRead(b); err != nil {
		return strconv.FormatInt(timestamp, 10)
	}
	return fmt.Sprintf("%d_%s", timestamp, hex.EncodeToString(b))
}

// validatePDFFile checks the upload size and sniffs its content type
func validatePDFFile(file multipart.File, header *multipart.FileHeader, maxSize int64) error {
	if header.Size > maxSize {
		return fmt.Errorf("file size %d exceeds maximum allowed %d bytes", header.Size, maxSize)
	}

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return fmt.Errorf("failed to read file header: %v", err)
	}
	if !mtype.Is("application/pdf") {
		return errors.New(MsgNotPDF)
	}

	// Seek back to beginning for subsequent reads
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to reset file position: %v", err)
	}

	return nil
}
