package tools

import (
	"fmt"
	"net/url"

	"github.com/gin-gonic/gin"
)

const (
	ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// SendAttachmentHeaders sets the download headers for a generated file.
func SendAttachmentHeaders(c *gin.Context, displayName, contentType string) {
	escaped := url.QueryEscape(displayName)

	c.Header("Content-Type", contentType)
	c.Header(
		"Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, escaped, escaped),
	)
}
