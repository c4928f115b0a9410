package server

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/lumenworks/imageproc/codec"
	"github.com/lumenworks/imageproc/pixel"
	"github.com/lumenworks/imageproc/transforms"
)

// indexHTML is the upload form served at the root. It lists every registered
// operation so the page stays honest about what /process accepts.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Image Processing Service</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 800px; margin: 50px auto; padding: 20px; }
        .upload-form { background: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0; }
        button { background: #007bff; color: white; padding: 10px 20px; border: none; border-radius: 4px; cursor: pointer; }
        .info { background: #e7f3ff; padding: 15px; border-radius: 4px; margin: 20px 0; }
        label { display: block; margin: 10px 0 5px 0; }
    </style>
</head>
<body>
    <h1>Image Processing Service</h1>
    <div class="info">
        <h3>Available Operations:</h3>
        <ul>%s</ul>
    </div>
    <div class="upload-form">
        <h3>Upload and Process Image</h3>
        <form action="/process" method="post" enctype="multipart/form-data">
            <label for="image">Select Image:</label>
            <input type="file" name="image" id="image" accept="image/*" required>
            <label for="operation">Operation:</label>
            <select name="operation" id="operation">%s</select>
            <br><br>
            <button type="submit">Process Image</button>
        </form>
    </div>
    <div class="info">
        <h3>Health Check:</h3>
        <p>Visit <a href="/health">/health</a> for service status</p>
    </div>
</body>
</html>`

// handleIndex serves the upload form.
func (s *Server) handleIndex(c *gin.Context) {
	var items, options string
	for _, op := range transforms.Operations() {
		items += fmt.Sprintf("<li><strong>%s</strong></li>", op)
		options += fmt.Sprintf(`<option value=%q>%s</option>`, op, op)
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, fmt.Sprintf(indexHTML, items, options))
}

// handleHealth reports liveness plus the operation timing snapshot.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "image-processor",
		"timestamp": float64(time.Now().UnixNano()) / float64(time.Second),
		"stats":     s.tracker.Snapshot(),
	})
}

// handleProcess runs one transform over one uploaded image.
//
// Request: multipart field "image" with the encoded bytes, form field
// "operation" naming the transform ("blur" when absent). Response: the
// processed image as a JPEG attachment with an X-Processing-Time header.
func (s *Server) handleProcess(c *gin.Context) {
	start := time.Now()

	buf, operation, err := s.parseRequest(c)
	if err != nil {
		c.JSON(StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	done := s.tracker.StartOperation(operation)
	out, err := transforms.Dispatch(operation, buf)
	done()
	if err != nil {
		c.JSON(StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	encoded, err := codec.EncodeBytes(out, s.cfg.Quality)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("X-Processing-Time", fmt.Sprintf("%.3fs", time.Since(start).Seconds()))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="processed_%s.jpg"`, operation))
	c.Data(http.StatusOK, "image/jpeg", encoded)
}

// parseRequest validates the multipart payload and decodes it into a pixel
// buffer. All failures here are client errors.
func (s *Server) parseRequest(c *gin.Context) (buf *pixel.Buffer, operation string, err error) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, "", errors.Wrap(ErrInvalidInput, "no image provided")
	}
	if file.Filename == "" || file.Size == 0 {
		return nil, "", errors.Wrap(ErrInvalidInput, "no image selected")
	}

	operation = c.DefaultPostForm("operation", transforms.OpBlur)
	if !transforms.Known(operation) {
		return nil, "", errors.Wrapf(transforms.ErrUnknownOperation, "invalid operation: %s", operation)
	}

	f, err := file.Open()
	if err != nil {
		return nil, "", errors.Wrap(ErrInvalidInput, err.Error())
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", errors.Wrap(ErrInvalidInput, err.Error())
	}

	decoded, err := codec.Decode(data, codec.DecodeOptions{MaxDimension: s.cfg.MaxDimension})
	if err != nil {
		return nil, "", err
	}
	return decoded, operation, nil
}
