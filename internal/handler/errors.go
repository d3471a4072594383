package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/satriobayu/authsvc/internal/apperror"
)

// writeError renders err as the single-entry errors envelope. The error is
// attached to the context so RequestLogger can report it.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	status, body := apperror.Render(err)
	c.AbortWithStatusJSON(status, body)
}

func recoverPanic(c *gin.Context, recovered any) {
	writeError(c, apperror.Internal(fmt.Errorf("panic: %v", recovered)))
}
